package gallery

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"djazair-backend/internal/httpx"
	"djazair-backend/internal/middleware"
	"djazair-backend/internal/transport"

	"github.com/go-chi/chi/v5"
)

const imageCacheControl = "public, max-age=31536000, immutable"

type Handler struct {
	service *Service
	log     *slog.Logger
}

func NewHandler(service *Service, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.service.List(ctx)
	if err != nil {
		log.Error("gallery list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "failed to list images", nil)
		return
	}

	log.Info("gallery list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
	})
}

func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	rawID := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		log.Warn("gallery image: invalid id", slog.String("id", rawID))
		transport.WriteError(w, http.StatusBadRequest, "invalid id", nil)
		return
	}
	// any other integer is a well-formed id that no row can carry
	if err != nil || id <= 0 || id > math.MaxUint32 {
		log.Warn("gallery image: not found", slog.String("id", rawID))
		transport.WriteError(w, http.StatusNotFound, "image not found", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	blob, err := h.service.Fetch(ctx, uint(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("gallery image: not found", slog.Int64("image_id", id))
			transport.WriteError(w, http.StatusNotFound, "image not found", nil)
			return
		}
		log.Error("gallery image: load error", slog.Int64("image_id", id), slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "failed to load image", nil)
		return
	}

	w.Header().Set("Content-Type", blob.Mime)
	w.Header().Set("Cache-Control", imageCacheControl)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeContent(w, r, "", blob.CreatedAt, bytes.NewReader(blob.Data))
}

func (h *Handler) AdminUpload(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		if httpx.IsBodyTooLarge(err) {
			log.Warn("admin gallery upload: body too large")
			transport.WriteError(w, http.StatusRequestEntityTooLarge, "file too large", nil)
			return
		}
		log.Warn("admin gallery upload: invalid form", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, "file required", nil)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Warn("admin gallery upload: missing file")
		transport.WriteError(w, http.StatusBadRequest, "file required", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes+1))
	if err != nil {
		log.Error("admin gallery upload: read error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "upload failed", nil)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || NormalizeMime(mimeType) == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, Upload{
		Data:      data,
		Mime:      mimeType,
		TitleFr:   r.FormValue("title_fr"),
		CaptionFr: r.FormValue("caption_fr"),
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedMime):
			log.Warn("admin gallery upload: unsupported type", slog.String("mime", mimeType))
			transport.WriteError(w, http.StatusUnsupportedMediaType, "only jpg, png and webp images are allowed", nil)
		case errors.Is(err, ErrTooLarge):
			log.Warn("admin gallery upload: file too large", slog.Int("bytes", len(data)))
			transport.WriteError(w, http.StatusRequestEntityTooLarge, "file too large", nil)
		case errors.Is(err, ErrEmptyFile):
			log.Warn("admin gallery upload: empty file")
			transport.WriteError(w, http.StatusBadRequest, "file required", nil)
		default:
			log.Error("admin gallery upload: store error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "upload failed", nil)
		}
		return
	}

	log.Info("admin gallery upload: ok", slog.String("image_id", item.PublicID), slog.Int64("bytes", item.Bytes))
	transport.WriteJSON(w, http.StatusOK, UploadResponse{
		PublicID:  item.PublicID,
		SecureURL: item.SecureURL,
		CaptionFr: item.CaptionFr,
	})
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req UpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		h.writeDecodeError(w, log, "admin gallery update", err)
		return
	}
	if req.PublicID == 0 {
		log.Warn("admin gallery update: missing public_id")
		transport.WriteError(w, http.StatusBadRequest, "public_id required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.service.UpdateMetadata(ctx, uint(req.PublicID), MetadataPatch{
		TitleFr:   req.TitleFr,
		CaptionFr: req.CaptionFr,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("admin gallery update: not found", slog.String("image_id", req.PublicID.String()))
			transport.WriteError(w, http.StatusNotFound, "image not found", nil)
			return
		}
		log.Error("admin gallery update: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "failed to update caption", nil)
		return
	}

	log.Info("admin gallery update: ok", slog.String("image_id", req.PublicID.String()))
	transport.WriteOK(w)
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req DeleteRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		h.writeDecodeError(w, log, "admin gallery delete", err)
		return
	}
	if req.PublicID == 0 {
		log.Warn("admin gallery delete: missing public_id")
		transport.WriteError(w, http.StatusBadRequest, "public_id required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, uint(req.PublicID)); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("admin gallery delete: not found", slog.String("image_id", req.PublicID.String()))
			transport.WriteError(w, http.StatusNotFound, "image not found", nil)
			return
		}
		log.Error("admin gallery delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "failed to delete", nil)
		return
	}

	log.Info("admin gallery delete: ok", slog.String("image_id", req.PublicID.String()))
	transport.WriteOK(w)
}

func (h *Handler) writeDecodeError(w http.ResponseWriter, log *slog.Logger, area string, err error) {
	switch {
	case errors.Is(err, ErrInvalidPublicID):
		log.Warn(area + ": invalid public_id")
		transport.WriteError(w, http.StatusBadRequest, "public_id required", nil)
	case httpx.IsBodyTooLarge(err):
		log.Warn(area + ": body too large")
		transport.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large", nil)
	default:
		log.Warn(area + ": invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
	}
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
