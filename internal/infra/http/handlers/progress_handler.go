package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/xavierca1/landing-leads/internal/usecase"
)

const msgUserIDRequired = "Usuário não informado"

type ProgressHandler struct {
	Service *usecase.ProgressService
}

func NewProgressHandler(service *usecase.ProgressService) *ProgressHandler {
	return &ProgressHandler{Service: service}
}

func (h *ProgressHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("action") {
	case "update":
		if allowMethod(w, r, http.MethodPost) {
			h.update(w, r)
		}
	case "get":
		if allowMethod(w, r, http.MethodGet) {
			h.get(w, r)
		}
	default:
		writeFailure(w, http.StatusBadRequest, msgUnknownAction)
	}
}

// update merges the body into the user's document. The user comes from the
// userId query parameter, the X-User-Id header, or a userId key in the body,
// which is not stored. Pages posting the bare document (progress.js
// sendToServer) must add one of these, taken from the logged-in user, or the
// call is rejected with "Usuário não informado".
func (h *ProgressHandler) update(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if !decodeJSON(w, r, &body) {
		return
	}

	userID, ok := requestUserID(r)
	if raw, found := body["userId"]; found {
		var id flexibleID
		if err := json.Unmarshal(raw, &id); err != nil {
			writeFailure(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}
		if !ok {
			userID = int64(id)
		}
		delete(body, "userId")
	}

	data, err := json.Marshal(body)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	writeResult(w, http.StatusOK, h.Service.SaveProgress(r.Context(), userID, data))
}

func (h *ProgressHandler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		writeFailure(w, http.StatusBadRequest, msgUserIDRequired)
		return
	}

	writeJSON(w, http.StatusOK, h.Service.GetProgress(r.Context(), userID))
}

// UserIDHeader lets the member area identify the user without changing the body.
const UserIDHeader = "X-User-Id"

func requestUserID(r *http.Request) (int64, bool) {
	for _, raw := range []string{r.URL.Query().Get("userId"), r.Header.Get(UserIDHeader)} {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err == nil && id > 0 {
			return id, true
		}
	}
	return 0, false
}
