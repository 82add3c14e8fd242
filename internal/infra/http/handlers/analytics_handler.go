package handlers

import (
	"net/http"

	"github.com/xavierca1/landing-leads/internal/usecase"
)

type AnalyticsHandler struct {
	Service *usecase.AnalyticsService
}

func NewAnalyticsHandler(service *usecase.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{Service: service}
}

func (h *AnalyticsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("action") {
	case "track":
		if allowMethod(w, r, http.MethodPost) {
			h.track(w, r)
		}
	case "summary":
		if allowMethod(w, r, http.MethodGet) {
			writeJSON(w, http.StatusOK, h.Service.EventCounts(r.Context()))
		}
	default:
		writeFailure(w, http.StatusBadRequest, msgUnknownAction)
	}
}

func (h *AnalyticsHandler) track(w http.ResponseWriter, r *http.Request) {
	var input usecase.TrackEventInput
	if !decodeJSON(w, r, &input) {
		return
	}

	writeResult(w, http.StatusOK, h.Service.TrackEvent(r.Context(), input, requestMeta(r)))
}
