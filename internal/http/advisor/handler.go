package advisor

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JosephSijo/finhub/internal/advisor"
)

type Handler struct {
	svc *advisor.Service
}

func NewHandler(svc *advisor.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/forecast", h.forecast)
	r.Get("/stress", h.stress)
	r.Get("/goals", h.goals)
	r.Get("/subscriptions", h.subscriptions)
	r.Get("/architect", h.architect)
	r.Get("/bundle", h.bundle)
	r.Get("/loan", h.loan)
}

func (h *Handler) forecast(w http.ResponseWriter, r *http.Request) {
	days := 0

	if s := r.URL.Query().Get("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "days must be an integer", http.StatusBadRequest)
			return
		}

		days = n
	}

	res, err := h.svc.Forecast(r.Context(), days)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toForecastResponse(*res))
}

func (h *Handler) stress(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Stress(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toStressResponse(*res))
}

func (h *Handler) goals(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Goals(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toGoalResponseList(res))
}

func (h *Handler) subscriptions(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Subscriptions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toSubscriptionResponseList(res))
}

func (h *Handler) architect(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Architect(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toArchitectResponse(*res))
}

func (h *Handler) bundle(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Bundle(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toBundleResponse(res))
}

// loan amortizes from principal plus any two of rate, tenure_months and
// emi; the missing one is solved for.
func (h *Handler) loan(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	principal, err := strconv.ParseFloat(q.Get("principal"), 64)
	if err != nil || principal <= 0 {
		http.Error(w, "principal must be a positive number", http.StatusBadRequest)
		return
	}

	rate, hasRate := parseFloat(q.Get("rate"))
	tenure, hasTenure := parseInt(q.Get("tenure_months"))
	emi, hasEMI := parseFloat(q.Get("emi"))

	switch {
	case hasRate && hasTenure:
	case hasEMI && hasTenure:
		rate = h.svc.LoanRate(principal, emi, tenure)
	case hasEMI && hasRate:
		tenure = h.svc.LoanTenure(principal, emi, rate)
	default:
		http.Error(w, "provide two of rate, tenure_months and emi", http.StatusBadRequest)
		return
	}

	if rate < 0 || tenure <= 0 {
		http.Error(w, "inputs describe no amortizable loan", http.StatusBadRequest)
		return
	}

	var startDate time.Time

	if s := q.Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		startDate = t
	}

	res := h.svc.Loan(principal, rate, tenure, startDate)

	writeJSON(w, toLoanResponse(res, rate, tenure))
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)

	return v, err == nil
}

func parseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	v, err := strconv.Atoi(s)

	return v, err == nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
