// Package http exposes the guest ledger as a JSON API.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/guestdesk/guestdesk/internal/ledger"
	"github.com/guestdesk/guestdesk/internal/ledger/export"
	"github.com/guestdesk/guestdesk/internal/platform/httpx"
)

// Handler serves the guest ledger API.
type Handler struct {
	logger   *slog.Logger
	service  *ledger.Service
	validate *validator.Validate
}

// NewHandler constructs a ledger API handler.
func NewHandler(logger *slog.Logger, service *ledger.Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// MountRoutes attaches the ledger routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Delete("/", h.clear)
	r.Get("/stats", h.stats)
	r.Get("/next-number", h.nextNumber)
	r.Get("/export/csv", h.exportCSV)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

// draftRequest is the inbound shape of a new entry. The 10-character
// display limit on names stays a front-end concern; the API only rejects
// what the ledger could never render sensibly.
type draftRequest struct {
	Name        string `json:"name" validate:"required"`
	Amount      int64  `json:"amount" validate:"gte=0"`
	MealTickets int    `json:"mealTickets" validate:"gte=0"`
	Message     string `json:"message"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{"guests": h.service.List()})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	entry, err := h.service.Add(r.Context(), ledger.Draft{
		Name:        req.Name,
		Amount:      req.Amount,
		MealTickets: req.MealTickets,
		Message:     req.Message,
	})
	if err != nil {
		h.logger.Error("add guest failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "failed to save entry", "the ledger store rejected the write")
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "entry not found", "")
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var patch ledger.Patch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if patch.Name != nil && *patch.Name == "" {
		httpx.Problem(w, http.StatusBadRequest, "validation failed", "name cannot be cleared")
		return
	}
	if (patch.Amount != nil && *patch.Amount < 0) || (patch.MealTickets != nil && *patch.MealTickets < 0) {
		httpx.Problem(w, http.StatusBadRequest, "validation failed", "amounts must be non-negative")
		return
	}

	entry, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "entry not found", "")
			return
		}
		h.logger.Error("update guest failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "failed to save entry", "the ledger store rejected the write")
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "entry not found", "")
			return
		}
		h.logger.Error("remove guest failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "failed to save entry", "the ledger store rejected the write")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		h.logger.Error("clear ledger failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "failed to save entry", "the ledger store rejected the write")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Stats())
}

func (h *Handler) nextNumber(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]int{"envelopeNumber": h.service.NextNumber()})
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	filename := "guests-" + time.Now().Format("20060102-1504") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename=`+filename)
	if err := export.WriteCSV(w, h.service.List()); err != nil {
		// Headers are gone; all we can do is log.
		h.logger.Error("csv export failed", slog.Any("error", err))
	}
}
