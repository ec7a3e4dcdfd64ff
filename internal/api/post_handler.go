package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/quillapp/quill-api/internal/api/shared"
	"github.com/quillapp/quill-api/internal/platform/logger"
	"github.com/quillapp/quill-api/internal/service"
	"github.com/quillapp/quill-api/internal/store"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ownershipFailureMessage deliberately covers both "no such post" and
// "someone else's post" so guarded mutations leak nothing about other
// users' posts.
const ownershipFailureMessage = "Post not found or you do not have permission"

// PostHandler handles post CRUD requests.
type PostHandler struct {
	postService service.PostService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService service.PostService, logger *slog.Logger) *PostHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PostHandler")
	}

	return &PostHandler{
		postService: postService,
		validator:   validator.New(),
		logger:      logger.With(slog.String("component", "post_handler")),
	}
}

// Create handles POST /api/posts requests.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req PostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	post, err := h.postService.CreatePost(r.Context(), userID, req.Title, req.Content, req.TagIDs)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("post created",
		slog.Int64("post_id", post.ID),
		slog.String("user_id", userID.String()))
	shared.RespondWithData(w, r, http.StatusCreated, "Post created successfully", PostMutationResponse{
		PostID:  post.ID,
		Title:   post.Title,
		Content: post.Content,
		TagIDs:  req.TagIDs,
	})
}

// List handles GET /api/posts requests. Page and limit come from the query
// string and are forwarded as parsed; out-of-range values surface as an
// empty result rather than an error.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryIntOrDefault(r, "page", defaultPage)
	limit := queryIntOrDefault(r, "limit", defaultLimit)

	posts, err := h.postService.GetAllPosts(r.Context(), page, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Internal Server Error in Get All Post")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Successfully fetched Posts", posts)
}

// GetByID handles GET /api/posts/{id} requests.
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	postID, err := getPathID(r, "id")
	if err != nil {
		log.Warn("invalid post ID in path", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	post, err := h.postService.GetPostByID(r.Context(), postID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Successfully fetched Post", post)
}

// Update handles PUT /api/posts/{id} requests.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, postID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	var req PostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	err := h.postService.UpdatePost(r.Context(), userID, postID, req.Title, req.Content, req.TagIDs)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, ownershipFailureMessage, err)
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("post updated",
		slog.Int64("post_id", postID),
		slog.String("user_id", userID.String()))
	shared.RespondWithData(w, r, http.StatusOK, "Post updated successfully", PostMutationResponse{
		PostID:  postID,
		Title:   req.Title,
		Content: req.Content,
		TagIDs:  req.TagIDs,
	})
}

// Delete handles DELETE /api/posts/{id} requests.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, postID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	err := h.postService.DeletePost(r.Context(), userID, postID)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, ownershipFailureMessage, err)
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("post deleted",
		slog.Int64("post_id", postID),
		slog.String("user_id", userID.String()))
	shared.RespondWithMessage(w, r, http.StatusOK, "Post deleted successfully")
}
