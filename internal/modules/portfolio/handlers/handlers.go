// Package handlers provides HTTP handlers for portfolio management.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Triple-dylan/realglobal-engine/internal/domain"
	"github.com/Triple-dylan/realglobal-engine/internal/modules/portfolio"
)

// Handler handles portfolio HTTP requests.
type Handler struct {
	service *portfolio.Service
	log     zerolog.Logger
}

// NewHandler creates a new portfolio handler.
func NewHandler(service *portfolio.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

// Routes mounts all portfolio and workspace routes on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/portfolio", func(r chi.Router) {
		r.Get("/", h.HandleGetPortfolio)
		r.Post("/", h.HandleAddToPortfolio)
		r.Post("/promote", h.HandlePromote)
		r.Get("/stats", h.HandleGetStats)
		r.Get("/pillars", h.HandleGetPillars)
		r.Get("/recommendations", h.HandleGetRecommendations)
		r.Get("/report", h.HandleGetReport)
		r.Patch("/{id}", h.HandleUpdateItem)
		r.Delete("/{id}", h.HandleRemoveFromPortfolio)
		r.Post("/{id}/workspace", h.HandleMoveToWorkspace)
	})
	r.Route("/workspace", func(r chi.Router) {
		r.Get("/", h.HandleGetWorkspace)
		r.Post("/", h.HandleAddToWorkspace)
		r.Delete("/{id}", h.HandleRemoveFromWorkspace)
	})
}

// HandleGetPortfolio returns the current portfolio items.
func (h *Handler) HandleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Store().PortfolioItems())
}

// HandleAddToPortfolio inserts a fully-specified item into the portfolio.
func (h *Handler) HandleAddToPortfolio(w http.ResponseWriter, r *http.Request) {
	var item domain.PortfolioItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid item payload")
		return
	}
	if item.ID == "" {
		h.writeError(w, http.StatusBadRequest, "item id is required")
		return
	}
	h.writeJSON(w, http.StatusOK, h.service.Store().AddToPortfolio(item))
}

// HandlePromote promotes a tracked candidate into the portfolio, synthesizing
// acquisition date, purchase price and an income estimate.
func (h *Handler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	var tracked domain.TrackedItem
	if err := json.NewDecoder(r.Body).Decode(&tracked); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid item payload")
		return
	}
	if tracked.ID == "" {
		h.writeError(w, http.StatusBadRequest, "item id is required")
		return
	}
	h.writeJSON(w, http.StatusOK, h.service.PromoteToPortfolio(tracked))
}

// HandleUpdateItem applies a partial update to a portfolio item. Unknown ids
// are a no-op, matching store semantics.
func (h *Handler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch struct {
		Title           *string              `json:"title"`
		PortfolioStatus *domain.Status       `json:"portfolio_status"`
		Type            *domain.PropertyType `json:"type"`
		Location        *domain.Location     `json:"location"`
		PurchasePrice   *float64             `json:"purchase_price"`
		CurrentValue    *float64             `json:"current_value"`
		MonthlyIncome   *float64             `json:"monthly_income"`
		Expenses        *float64             `json:"expenses"`
		MarketData      *domain.MarketData   `json:"market_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid patch payload")
		return
	}

	items := h.service.Store().UpdatePortfolioItem(id, portfolio.ItemPatch{
		Title:           patch.Title,
		PortfolioStatus: patch.PortfolioStatus,
		Type:            patch.Type,
		Location:        patch.Location,
		PurchasePrice:   patch.PurchasePrice,
		CurrentValue:    patch.CurrentValue,
		MonthlyIncome:   patch.MonthlyIncome,
		Expenses:        patch.Expenses,
		MarketData:      patch.MarketData,
	})
	h.writeJSON(w, http.StatusOK, items)
}

// HandleRemoveFromPortfolio removes an item by id.
func (h *Handler) HandleRemoveFromPortfolio(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.writeJSON(w, http.StatusOK, h.service.Store().RemoveFromPortfolio(id))
}

// HandleMoveToWorkspace demotes a portfolio item to workspace candidate.
func (h *Handler) HandleMoveToWorkspace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.writeJSON(w, http.StatusOK, h.service.Store().MoveToWorkspace(id))
}

// HandleGetWorkspace returns the current workspace candidates.
func (h *Handler) HandleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Store().WorkspaceItems())
}

// HandleAddToWorkspace inserts a candidate; idempotent by id.
func (h *Handler) HandleAddToWorkspace(w http.ResponseWriter, r *http.Request) {
	var item domain.PortfolioItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid item payload")
		return
	}
	if item.ID == "" {
		h.writeError(w, http.StatusBadRequest, "item id is required")
		return
	}
	h.writeJSON(w, http.StatusOK, h.service.Store().AddToWorkspace(item))
}

// HandleRemoveFromWorkspace removes a candidate by id.
func (h *Handler) HandleRemoveFromWorkspace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.writeJSON(w, http.StatusOK, h.service.Store().RemoveFromWorkspace(id))
}

// HandleGetStats recomputes and returns the full stats bundle.
func (h *Handler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.GetStats())
}

// HandleGetPillars returns the geospatial visualization pillars.
func (h *Handler) HandleGetPillars(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.GetPortfolioPillars())
}

// HandleGetRecommendations evaluates the advisory rules.
func (h *Handler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.GetRecommendations())
}

// HandleGetReport renders the text report.
func (h *Handler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(h.service.GenerateReport())); err != nil {
		h.log.Error().Err(err).Msg("Failed to write report response")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
