package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quillapp/quill-api/internal/domain"
	"github.com/quillapp/quill-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTagService struct {
	tags []*domain.Tag
	err  error
}

func (m *mockTagService) ListAllTags(ctx context.Context) ([]*domain.Tag, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tags, nil
}

var _ service.TagService = (*mockTagService)(nil)

func TestTagList(t *testing.T) {
	t.Parallel()

	h := NewTagHandler(&mockTagService{tags: []*domain.Tag{
		{ID: 1, Name: "technology"},
		{ID: 2, Name: "programming"},
	}}, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success bool         `json:"success"`
		Message string       `json:"message"`
		Data    []domain.Tag `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.Equal(t, "Successfully fetched all tags", envelope.Message)
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "technology", envelope.Data[0].Name)
}

func TestTagList_ServiceError(t *testing.T) {
	t.Parallel()

	h := NewTagHandler(&mockTagService{err: errors.New("connection reset")}, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
