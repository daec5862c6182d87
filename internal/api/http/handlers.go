package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"foros-bot/internal/domain"
	"foros-bot/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Ranking service.RankingInterface
}

func NewHandler(ranking service.RankingInterface) *Handler {
	return &Handler{Ranking: ranking}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")
	r.HandleFunc("/api/staff/top", h.getTopStaff).Methods("GET")
}

func (h *Handler) getTopStaff(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", service.DefaultTopLimit)
	minReviews := queryInt(r, "min_reviews", service.DefaultMinReviews)

	top, err := h.Ranking.TopStaff(minReviews, limit)
	if err != nil {
		http.Error(w, "Failed to build leaderboard", http.StatusInternalServerError)
		return
	}
	if top == nil {
		top = []domain.RankEntry{}
	}
	json.NewEncoder(w).Encode(top)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
