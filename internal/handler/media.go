package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"portfolio/internal/config"
	models "portfolio/internal/domain/models/portfolio"
	"portfolio/internal/httputil"
	"portfolio/internal/service/admin"
	"portfolio/internal/service/media"
)

// multipart memory before spilling to temp files
const uploadMemory = 32 << 20

// MediaHandler drives a sub-item's media widget
type MediaHandler struct {
	registry *admin.Registry
	storage  media.Storage
	folder   string
	logger   *slog.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(registry *admin.Registry, storage media.Storage, folder string, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		registry: registry,
		storage:  storage,
		folder:   folder,
		logger:   logger,
	}
}

type mediaResponse struct {
	MediaItems []models.MediaItem `json:"media_items"`
	Warning    string             `json:"warning,omitempty"`
	State      admin.State        `json:"state"`
}

type youtubeRequest struct {
	URL string `json:"url"`
}

// Upload adds image files from the multipart "files" field
// POST /api/admin/sub-items/{id}/media
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, int64(config.MaxMediaFiles)*config.MaxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(uploadMemory); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "No files provided")
		return
	}

	files := make([]media.File, 0, len(headers))
	for _, fh := range headers {
		files = append(files, media.File{
			Name: fh.Filename,
			Size: fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}

	h.run(w, r, id, func(ctx context.Context, widget *media.Widget) error {
		return widget.AddFiles(ctx, files)
	})
}

// AddYoutube appends a video link
// POST /api/admin/sub-items/{id}/media/youtube
func (h *MediaHandler) AddYoutube(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req youtubeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.run(w, r, id, func(ctx context.Context, widget *media.Widget) error {
		return widget.AddYoutubeLink(req.URL)
	})
}

// Remove drops the media item at index
// DELETE /api/admin/sub-items/{id}/media/{index}
func (h *MediaHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid index")
		return
	}

	h.run(w, r, id, func(ctx context.Context, widget *media.Widget) error {
		return widget.RemoveItem(ctx, index)
	})
}

// run applies op to the sub-item's media through the session's controller
func (h *MediaHandler) run(w http.ResponseWriter, r *http.Request, id string, op admin.MediaOp) {
	ctx := r.Context()
	c := h.registry.Get(httputil.SessionFromContext(ctx))

	res, err := c.EditMedia(ctx, h.storage, h.folder, id, op)
	if err != nil {
		handleError(w, err)
		return
	}
	if err := res.Err(); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, mediaResponse{
		MediaItems: res.Items,
		Warning:    res.Warning,
		State:      c.Snapshot(),
	})
}
