package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/xavierca1/landing-leads/internal/usecase"
)

const (
	msgUnknownAction    = "Ação não especificada"
	msgMethodNotAllowed = "Método não permitido"
	msgInvalidJSON      = "JSON inválido"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Erro ao serializar resposta: %v", err)
	}
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, usecase.Result{Success: false, Message: message})
}

// writeResult answers with the envelope and a status derived from its code.
func writeResult(w http.ResponseWriter, okStatus int, res *usecase.Result) {
	writeJSON(w, statusFor(res, okStatus), res)
}

func statusFor(res *usecase.Result, okStatus int) int {
	if res.Success {
		return okStatus
	}

	switch res.Code {
	case usecase.CodeValidation, usecase.CodeNoValidFields:
		return http.StatusBadRequest
	case usecase.CodeDuplicateEmail:
		return http.StatusConflict
	case usecase.CodeEmailNotFound:
		return http.StatusNotFound
	case usecase.CodeInvalidPassword:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// allowMethod writes a 405 envelope when r.Method is not one of methods.
func allowMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}

	for _, m := range methods {
		w.Header().Add("Allow", m)
	}
	writeFailure(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	return false
}

// decodeJSON reads the body into v, answering "JSON inválido" on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeFailure(w, http.StatusBadRequest, msgInvalidJSON)
		return false
	}
	return true
}

func requestMeta(r *http.Request) usecase.RequestMeta {
	return usecase.RequestMeta{
		UserAgent: r.UserAgent(),
		IPAddress: ClientIP(r),
	}
}
