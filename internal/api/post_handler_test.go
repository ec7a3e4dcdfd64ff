package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/quillapp/quill-api/internal/api/shared"
	"github.com/quillapp/quill-api/internal/domain"
	"github.com/quillapp/quill-api/internal/service"
	"github.com/quillapp/quill-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPostService is a configurable test double for service.PostService.
type mockPostService struct {
	createFn func(ctx context.Context, userID uuid.UUID, title, content string, tagIDs []int64) (*domain.Post, error)
	listFn   func(ctx context.Context, page, limit int) ([]*domain.PostDetails, error)
	getFn    func(ctx context.Context, id int64) (*domain.PostDetails, error)
	updateFn func(ctx context.Context, userID uuid.UUID, postID int64, title, content string, tagIDs []int64) error
	deleteFn func(ctx context.Context, userID uuid.UUID, postID int64) error

	lastPage  int
	lastLimit int
}

func (m *mockPostService) CreatePost(ctx context.Context, userID uuid.UUID, title, content string, tagIDs []int64) (*domain.Post, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, title, content, tagIDs)
	}
	return &domain.Post{ID: 42, Title: title, Content: content, UserID: userID}, nil
}

func (m *mockPostService) GetAllPosts(ctx context.Context, page, limit int) ([]*domain.PostDetails, error) {
	m.lastPage = page
	m.lastLimit = limit
	if m.listFn != nil {
		return m.listFn(ctx, page, limit)
	}
	return []*domain.PostDetails{}, nil
}

func (m *mockPostService) GetPostByID(ctx context.Context, id int64) (*domain.PostDetails, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, store.ErrPostNotFound
}

func (m *mockPostService) UpdatePost(ctx context.Context, userID uuid.UUID, postID int64, title, content string, tagIDs []int64) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, postID, title, content, tagIDs)
	}
	return nil
}

func (m *mockPostService) DeletePost(ctx context.Context, userID uuid.UUID, postID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, postID)
	}
	return nil
}

var _ service.PostService = (*mockPostService)(nil)

// newPostTestRouter mounts the handler behind the routes it serves in
// production, with a stub identity middleware standing in for JWT auth.
func newPostTestRouter(svc service.PostService, userID uuid.UUID) http.Handler {
	h := NewPostHandler(svc, slog.Default())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if userID != uuid.Nil {
				ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
				req = req.WithContext(ctx)
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Post("/api/posts", h.Create)
	r.Get("/api/posts", h.List)
	r.Get("/api/posts/{id}", h.GetByID)
	r.Put("/api/posts/{id}", h.Update)
	r.Delete("/api/posts/{id}", h.Delete)
	return r
}

func doRequest(t *testing.T, router http.Handler, method, target string, body any) (*httptest.ResponseRecorder, shared.Response) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope shared.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestPostCreate_Success(t *testing.T) {
	t.Parallel()

	router := newPostTestRouter(&mockPostService{}, uuid.New())

	rec, envelope := doRequest(t, router, http.MethodPost, "/api/posts", PostRequest{
		Title:   "A fine title",
		Content: "Worth the read.",
		TagIDs:  []int64{1, 2},
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Post created successfully", envelope.Message)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), data["postId"])
	assert.Equal(t, "A fine title", data["title"])
}

func TestPostCreate_Unauthenticated(t *testing.T) {
	t.Parallel()

	router := newPostTestRouter(&mockPostService{}, uuid.Nil)

	rec, envelope := doRequest(t, router, http.MethodPost, "/api/posts", PostRequest{
		Title:   "A fine title",
		Content: "Worth the read.",
		TagIDs:  []int64{1},
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, envelope.Success)
}

func TestPostCreate_TagMismatch(t *testing.T) {
	t.Parallel()

	svc := &mockPostService{
		createFn: func(ctx context.Context, userID uuid.UUID, title, content string, tagIDs []int64) (*domain.Post, error) {
			return nil, service.ErrTagMismatch
		},
	}
	router := newPostTestRouter(svc, uuid.New())

	rec, envelope := doRequest(t, router, http.MethodPost, "/api/posts", PostRequest{
		Title:   "A fine title",
		Content: "Worth the read.",
		TagIDs:  []int64{1, 99},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Tags mismatch, Please check tags", envelope.Message)
}

func TestPostCreate_Validation(t *testing.T) {
	t.Parallel()

	router := newPostTestRouter(&mockPostService{}, uuid.New())

	tests := []struct {
		name    string
		payload PostRequest
	}{
		{"short title", PostRequest{Title: "ab", Content: "Worth the read.", TagIDs: []int64{1}}},
		{"short content", PostRequest{Title: "A fine title", Content: "ab", TagIDs: []int64{1}}},
		{"missing tags", PostRequest{Title: "A fine title", Content: "Worth the read."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, envelope := doRequest(t, router, http.MethodPost, "/api/posts", tt.payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, envelope.Success)
		})
	}
}

func TestPostList_WindowDefaultsAndPassthrough(t *testing.T) {
	t.Parallel()

	svc := &mockPostService{}
	router := newPostTestRouter(svc, uuid.New())

	rec, envelope := doRequest(t, router, http.MethodGet, "/api/posts", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Successfully fetched Posts", envelope.Message)
	assert.Equal(t, 1, svc.lastPage)
	assert.Equal(t, 10, svc.lastLimit)

	_, _ = doRequest(t, router, http.MethodGet, "/api/posts?page=3&limit=5", nil)
	assert.Equal(t, 3, svc.lastPage)
	assert.Equal(t, 5, svc.lastLimit)

	// Unparseable values fall back to the defaults; negatives pass through
	_, _ = doRequest(t, router, http.MethodGet, "/api/posts?page=abc&limit=-5", nil)
	assert.Equal(t, 1, svc.lastPage)
	assert.Equal(t, -5, svc.lastLimit)
}

func TestPostGetByID(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	svc := &mockPostService{
		getFn: func(ctx context.Context, id int64) (*domain.PostDetails, error) {
			if id == 7 {
				return &domain.PostDetails{
					Post:     domain.Post{ID: 7, Title: "A fine title", UserID: owner},
					Username: "writer",
					Tags:     []string{"technology"},
				}, nil
			}
			return nil, store.ErrPostNotFound
		},
	}
	router := newPostTestRouter(svc, uuid.New())

	rec, envelope := doRequest(t, router, http.MethodGet, "/api/posts/7", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Successfully fetched Post", envelope.Message)

	rec, envelope = doRequest(t, router, http.MethodGet, "/api/posts/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post not found", envelope.Message)

	rec, _ = doRequest(t, router, http.MethodGet, "/api/posts/notanumber", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostUpdate_Success(t *testing.T) {
	t.Parallel()

	var gotTagIDs []int64
	svc := &mockPostService{
		updateFn: func(ctx context.Context, userID uuid.UUID, postID int64, title, content string, tagIDs []int64) error {
			gotTagIDs = tagIDs
			return nil
		},
	}
	router := newPostTestRouter(svc, uuid.New())

	rec, envelope := doRequest(t, router, http.MethodPut, "/api/posts/7", PostRequest{
		Title:   "New title",
		Content: "New content here.",
		TagIDs:  []int64{3},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Post updated successfully", envelope.Message)
	assert.Equal(t, []int64{3}, gotTagIDs)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(7), data["postId"])
}

func TestPostUpdate_NotOwned(t *testing.T) {
	t.Parallel()

	svc := &mockPostService{
		updateFn: func(ctx context.Context, userID uuid.UUID, postID int64, title, content string, tagIDs []int64) error {
			return store.ErrPostNotFound
		},
	}
	router := newPostTestRouter(svc, uuid.New())

	rec, envelope := doRequest(t, router, http.MethodPut, "/api/posts/7", PostRequest{
		Title:   "New title",
		Content: "New content here.",
		TagIDs:  []int64{1},
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post not found or you do not have permission", envelope.Message)
}

func TestPostDelete_Success(t *testing.T) {
	t.Parallel()

	router := newPostTestRouter(&mockPostService{}, uuid.New())

	rec, envelope := doRequest(t, router, http.MethodDelete, "/api/posts/7", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Post deleted successfully", envelope.Message)
	assert.Nil(t, envelope.Data)
}

func TestPostDelete_NotOwned(t *testing.T) {
	t.Parallel()

	svc := &mockPostService{
		deleteFn: func(ctx context.Context, userID uuid.UUID, postID int64) error {
			return store.ErrPostNotFound
		},
	}
	router := newPostTestRouter(svc, uuid.New())

	rec, envelope := doRequest(t, router, http.MethodDelete, "/api/posts/7", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post not found or you do not have permission", envelope.Message)
}

func TestPostDelete_TaglessPost(t *testing.T) {
	t.Parallel()

	svc := &mockPostService{
		deleteFn: func(ctx context.Context, userID uuid.UUID, postID int64) error {
			return service.ErrPostTagsDeleteFailed
		},
	}
	router := newPostTestRouter(svc, uuid.New())

	rec, envelope := doRequest(t, router, http.MethodDelete, "/api/posts/7", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to delete post tags", envelope.Message)
}
