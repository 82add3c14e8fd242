package handlers

import (
	"net/http"

	"github.com/xavierca1/landing-leads/internal/infra/http/middleware"
	"github.com/xavierca1/landing-leads/internal/usecase"
)

type UserHandler struct {
	Service *usecase.UserService
}

func NewUserHandler(service *usecase.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// Handle answers register and login. The auth forms may be served from another
// origin, so the CORS headers are always written here.
func (h *UserHandler) Handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	switch r.URL.Query().Get("action") {
	case "register":
		if allowMethod(w, r, http.MethodPost) {
			h.register(w, r)
		}
	case "login":
		if allowMethod(w, r, http.MethodPost) {
			h.login(w, r)
		}
	default:
		writeFailure(w, http.StatusBadRequest, msgUnknownAction)
	}
}

func (h *UserHandler) register(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterUserInput
	if !decodeJSON(w, r, &input) {
		return
	}

	res := h.Service.RegisterUser(r.Context(), input)
	middleware.RecordUserAuth("register", outcome(res))
	writeResult(w, http.StatusCreated, res)
}

func (h *UserHandler) login(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginUserInput
	if !decodeJSON(w, r, &input) {
		return
	}

	res := h.Service.LoginUser(r.Context(), input)
	middleware.RecordUserAuth("login", outcome(res))
	writeResult(w, http.StatusOK, res)
}
