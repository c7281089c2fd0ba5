package http

import (
	"net/http"

	"loan-sip-planner/domain"
	"loan-sip-planner/service"
)

type LoanHandler struct {
	service *service.LoanService
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {

	var input domain.LoanInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.CalculateLoan(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, result)
}

func (h *LoanHandler) Amortize(w http.ResponseWriter, r *http.Request) {

	var terms domain.LoanTerms
	if !decodeJSON(w, r, &terms) {
		return
	}

	result, err := h.service.Schedule(r.Context(), terms)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, result)
}
