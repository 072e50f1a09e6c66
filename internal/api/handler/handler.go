package handler

import (
	"countryfx/internal/adapters"
	"encoding/json"
	"net/http"
)

type Handler struct {
	repo adapters.CountryRepository
}

func NewCountryHandler(repo adapters.CountryRepository) *Handler {
	return &Handler{repo: repo}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}
