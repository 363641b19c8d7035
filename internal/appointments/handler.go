package appointments

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"djazair-backend/internal/httpx"
	"djazair-backend/internal/middleware"
	"djazair-backend/internal/schedule"
	"djazair-backend/internal/transport"
	"djazair-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		val:     val,
		log:     log,
	}
}

func (h *Handler) PublicCreate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		switch {
		case errors.Is(err, ErrInvalidFirstTime):
			log.Warn("appointments create: invalid firstTime")
			transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"firstTime": "oui_non"})
		case httpx.IsBodyTooLarge(err):
			log.Warn("appointments create: body too large")
			transport.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large", nil)
		default:
			log.Warn("appointments create: invalid json")
			transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		}
		return
	}

	req.Normalize()
	if err := h.val.Struct(req); err != nil {
		log.Warn("appointments create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	appointment, err := h.service.Create(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrPastDate):
			log.Warn("appointments create: past date", slog.String("date", req.AppointmentDate))
			transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"appointmentDate": "past"})
		case errors.Is(err, schedule.ErrClosedDay):
			log.Warn("appointments create: closed day", slog.String("date", req.AppointmentDate))
			transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"appointmentDate": "closed"})
		case errors.Is(err, ErrInvalidDate):
			log.Warn("appointments create: invalid date", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusBadRequest, "validation error", nil)
		default:
			log.Error("appointments create: database error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "failed to create appointment", nil)
		}
		return
	}

	log.Info("appointments create: ok",
		slog.Uint64("appointment_id", uint64(appointment.ID)),
		slog.String("date", appointment.AppointmentDate.Format(dateLayout)),
	)
	transport.WriteJSON(w, http.StatusOK, CreateResponse{ID: appointment.ID})
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	rows, err := h.service.List(ctx)
	if err != nil {
		log.Error("admin appointments list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "failed to list appointments", nil)
		return
	}

	items := make([]View, 0, len(rows))
	for _, row := range rows {
		items = append(items, NewView(row))
	}

	log.Info("admin appointments list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
	})
}

func (h *Handler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	rawID := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil || id == 0 {
		log.Warn("admin appointments status: invalid id", slog.String("id", rawID))
		transport.WriteError(w, http.StatusBadRequest, "invalid id", nil)
		return
	}

	var req StatusRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin appointments status: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.UpdateStatus(ctx, uint(id), req.Status); err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			log.Warn("admin appointments status: invalid status", slog.String("status", req.Status))
			transport.WriteError(w, http.StatusBadRequest, "invalid status", nil)
		case errors.Is(err, ErrNotFound):
			log.Warn("admin appointments status: not found", slog.Uint64("appointment_id", id))
			transport.WriteError(w, http.StatusNotFound, "appointment not found", nil)
		default:
			log.Error("admin appointments status: database error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "failed to update appointment", nil)
		}
		return
	}

	log.Info("admin appointments status: ok", slog.Uint64("appointment_id", id), slog.String("status", req.Status))
	transport.WriteOK(w)
}

func (h *Handler) AdminExport(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var buf bytes.Buffer
	if err := h.service.Export(ctx, &buf); err != nil {
		log.Error("admin appointments export: error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "failed to export appointments", nil)
		return
	}

	w.Header().Set("Content-Type", ExportContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn("admin appointments export: write error", slog.String("error", err.Error()))
		return
	}
	log.Info("admin appointments export: ok")
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
