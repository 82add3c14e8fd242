package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/xavierca1/landing-leads/internal/infra/http/middleware"
	"github.com/xavierca1/landing-leads/internal/usecase"
)

const (
	msgTooManyRequests = "Muitas requisições. Tente novamente em instantes."
	msgLeadIDRequired  = "ID do lead é obrigatório"
	msgEmailRequired   = "E-mail é obrigatório"
)

type LeadHandler struct {
	Service     *usecase.LeadService
	rateLimiter *RateLimiter
	now         func() time.Time
}

// NewLeadHandler limits captures to captureLimit per minute per client address.
func NewLeadHandler(service *usecase.LeadService, captureLimit int) *LeadHandler {
	return &LeadHandler{
		Service:     service,
		rateLimiter: NewRateLimiter(captureLimit, time.Minute),
		now:         time.Now,
	}
}

// Close stops the limiter's background cleanup.
func (h *LeadHandler) Close() {
	h.rateLimiter.Stop()
}

type processLeadRequest struct {
	ID    flexibleID `json:"id"`
	Notes *string    `json:"notes"`
}

type leadIDRequest struct {
	ID flexibleID `json:"id"`
}

// Handle dispatches on the action query parameter.
func (h *LeadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("action") {
	case "list":
		if allowMethod(w, r, http.MethodGet) {
			h.list(w, r)
		}
	case "stats":
		if allowMethod(w, r, http.MethodGet) {
			h.stats(w, r)
		}
	case "export":
		if allowMethod(w, r, http.MethodGet) {
			h.export(w, r)
		}
	case "get":
		if allowMethod(w, r, http.MethodGet) {
			h.get(w, r)
		}
	case "by_email":
		if allowMethod(w, r, http.MethodGet) {
			h.byEmail(w, r)
		}
	case "capture":
		if allowMethod(w, r, http.MethodPost) {
			h.capture(w, r)
		}
	case "process":
		if allowMethod(w, r, http.MethodPost) {
			h.process(w, r)
		}
	case "unprocess":
		if allowMethod(w, r, http.MethodPost) {
			h.unprocess(w, r)
		}
	case "update":
		if allowMethod(w, r, http.MethodPost) {
			h.update(w, r)
		}
	case "delete":
		if allowMethod(w, r, http.MethodPost) {
			h.remove(w, r)
		}
	default:
		writeFailure(w, http.StatusBadRequest, msgUnknownAction)
	}
}

func (h *LeadHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := parseQueryInt(q.Get("limit"), usecase.DefaultListLimit)
	offset := parseQueryInt(q.Get("offset"), 0)

	writeJSON(w, http.StatusOK, h.Service.GetAllLeads(r.Context(), limit, offset))
}

func (h *LeadHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats := h.Service.GetLeadStats(r.Context())
	if stats == nil {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *LeadHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id <= 0 {
		writeFailure(w, http.StatusBadRequest, msgLeadIDRequired)
		return
	}

	lead := h.Service.GetLeadByID(r.Context(), id)
	if lead == nil {
		writeJSON(w, http.StatusNotFound, nil)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) byEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeFailure(w, http.StatusBadRequest, msgEmailRequired)
		return
	}

	writeJSON(w, http.StatusOK, h.Service.GetLeadsByEmail(r.Context(), email))
}

func (h *LeadHandler) capture(w http.ResponseWriter, r *http.Request) {
	// Proxy headers are client-controlled, so the limit is keyed on the connection.
	if !h.rateLimiter.Allow(remoteHost(r.RemoteAddr)) {
		middleware.RecordCaptureRateLimited()
		writeFailure(w, http.StatusTooManyRequests, msgTooManyRequests)
		return
	}

	var input usecase.CaptureLeadInput
	if !decodeJSON(w, r, &input) {
		middleware.RecordLeadCapture(usecase.CodeValidation)
		return
	}

	res := h.Service.CaptureLead(r.Context(), input, requestMeta(r))
	middleware.RecordLeadCapture(outcome(res))
	writeResult(w, http.StatusCreated, res)
}

func (h *LeadHandler) process(w http.ResponseWriter, r *http.Request) {
	var req processLeadRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ID <= 0 {
		writeFailure(w, http.StatusBadRequest, msgLeadIDRequired)
		return
	}

	notes := ""
	if req.Notes != nil {
		notes = *req.Notes
	}

	writeResult(w, http.StatusOK, h.Service.MarkAsProcessed(r.Context(), int64(req.ID), notes))
}

func (h *LeadHandler) unprocess(w http.ResponseWriter, r *http.Request) {
	var req leadIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ID <= 0 {
		writeFailure(w, http.StatusBadRequest, msgLeadIDRequired)
		return
	}

	writeResult(w, http.StatusOK, h.Service.MarkAsUnprocessed(r.Context(), int64(req.ID)))
}

func (h *LeadHandler) remove(w http.ResponseWriter, r *http.Request) {
	var req leadIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ID <= 0 {
		writeFailure(w, http.StatusBadRequest, msgLeadIDRequired)
		return
	}

	writeResult(w, http.StatusOK, h.Service.DeleteLead(r.Context(), int64(req.ID)))
}

// update takes a flat body: the id plus the fields to change.
func (h *LeadHandler) update(w http.ResponseWriter, r *http.Request) {
	var raw map[string]json.RawMessage
	if !decodeJSON(w, r, &raw) {
		return
	}

	var id flexibleID
	if v, ok := raw["id"]; ok {
		if err := json.Unmarshal(v, &id); err != nil {
			writeFailure(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}
	}
	if id <= 0 {
		writeFailure(w, http.StatusBadRequest, msgLeadIDRequired)
		return
	}
	delete(raw, "id")

	fields := make(map[string]any, len(raw))
	for key, value := range raw {
		dec := json.NewDecoder(bytes.NewReader(value))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			writeFailure(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}
		fields[key] = v
	}

	writeResult(w, http.StatusOK, h.Service.UpdateLead(r.Context(), int64(id), fields))
}

func (h *LeadHandler) export(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Service.ExportLeads(r.Context())
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "Erro ao exportar: "+err.Error())
		return
	}

	writeLeadsCSV(w, usecase.ExportFilename(h.now()), leads)
}

func outcome(res *usecase.Result) string {
	if res.Success {
		return "success"
	}
	return res.Code
}
