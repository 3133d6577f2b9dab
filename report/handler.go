package report

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/guestdesk/guestdesk/internal/ledger"
)

// Handler serves the printable register.
type Handler struct {
	service *ledger.Service
	client  *Client
	title   string
	logger  *slog.Logger
}

// NewHandler creates a register handler. The Gotenberg client may be
// nil, in which case only the HTML variant is served.
func NewHandler(service *ledger.Service, client *Client, title string, logger *slog.Logger) *Handler {
	return &Handler{service: service, client: client, title: title, logger: logger}
}

// MountRoutes registers register routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.html)
	r.Get("/pdf", h.pdf)
}

func (h *Handler) html(w http.ResponseWriter, r *http.Request) {
	doc := BuildRegister(h.title, h.service.List(), time.Now())
	html, err := RenderHTML(doc)
	if err != nil {
		h.logger.Error("render register", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (h *Handler) pdf(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		http.Error(w, "pdf rendering not configured", http.StatusServiceUnavailable)
		return
	}
	doc := BuildRegister(h.title, h.service.List(), time.Now())
	html, err := RenderHTML(doc)
	if err != nil {
		h.logger.Error("render register", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	pdf, err := h.client.RenderHTML(r.Context(), html)
	if err != nil {
		h.logger.Error("render register pdf", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline; filename=register.pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
