package ledger

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/http/middleware"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) DebtRoutes(r chi.Router) {
	r.Get("/", h.listDebts)
	r.Post("/", h.createDebt)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.getDebt)
	r.Delete("/{id}", h.deleteDebt)
	r.Patch("/{id}/paid", h.setPaid)
}

func (h *Handler) PeopleRoutes(r chi.Router) {
	r.Get("/", h.listPeople)
	r.Post("/", h.createPerson)
	r.Get("/{id}", h.getPerson)
	r.Get("/{id}/debts", h.personDebts)
	r.Get("/{id}/history", h.history)
}

func (h *Handler) listDebts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	debts, err := h.svc.ListDebts(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toDebtResponseList(debts)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createDebtRequest struct {
	PersonID    uuid.UUID       `json:"person_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

func (h *Handler) createDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.PersonID == uuid.Nil {
		http.Error(w, "person_id is required", http.StatusBadRequest)
		return
	}

	if req.Amount.IsZero() {
		http.Error(w, "amount is required", http.StatusBadRequest)
		return
	}

	d, err := h.svc.CreateDebt(r.Context(), ledger.CreateDebtParams{
		UserID:      userID,
		PersonID:    req.PersonID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrPersonNotFound) {
			http.Error(w, "person not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toDebtResponse(d)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type summaryResponse struct {
	Outstanding decimal.Decimal `json:"outstanding"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	total, err := h.svc.Outstanding(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(summaryResponse{Outstanding: total}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) getDebt(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	d, err := h.svc.GetDebt(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrDebtNotFound) {
			http.Error(w, "debt not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toDebtResponse(d)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deleteDebt(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteDebt(r.Context(), id); err != nil {
		if errors.Is(err, ledger.ErrDebtNotFound) || errors.Is(err, ledger.ErrPersonNotFound) {
			http.Error(w, "debt not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type setPaidRequest struct {
	Paid bool `json:"paid"`
}

func (h *Handler) setPaid(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req setPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !req.Paid {
		if err := h.svc.MarkUnpaid(r.Context(), id); err != nil {
			if errors.Is(err, ledger.ErrDebtNotFound) {
				http.Error(w, "debt not found", http.StatusNotFound)
				return
			}

			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		w.WriteHeader(http.StatusNoContent)

		return
	}

	d, err := h.svc.MarkPaid(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrDebtNotFound) {
			http.Error(w, "debt not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toDebtResponse(d)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listPeople(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	people, err := h.svc.ListPeople(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toPersonResponseList(people)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createPersonRequest struct {
	Name string `json:"name"`
}

func (h *Handler) createPerson(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createPersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	p, err := h.svc.AddPerson(r.Context(), userID, req.Name)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toPersonResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) getPerson(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.GetPerson(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrPersonNotFound) {
			http.Error(w, "person not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toPersonResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) personDebts(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	debts, err := h.svc.DebtsForPerson(r.Context(), id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toDebtResponseList(debts)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	points, err := h.svc.History(r.Context(), id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toHistoryResponse(points)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
