package api

import (
	"log/slog"
	"net/http"

	"github.com/quillapp/quill-api/internal/api/shared"
	"github.com/quillapp/quill-api/internal/service"
)

// TagHandler handles tag lookup requests.
type TagHandler struct {
	tagService service.TagService
	logger     *slog.Logger
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService service.TagService, logger *slog.Logger) *TagHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TagHandler")
	}

	return &TagHandler{
		tagService: tagService,
		logger:     logger.With(slog.String("component", "tag_handler")),
	}
}

// List handles GET /api/tags requests.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.ListAllTags(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Internal Server Error in Get All Tags")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Successfully fetched all tags", tags)
}
