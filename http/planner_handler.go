package http

import (
	"net/http"

	"loan-sip-planner/domain"
	"loan-sip-planner/service"
)

type PlannerHandler struct {
	service *service.PlannerService
}

func NewPlannerHandler(service *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{service: service}
}

// SIPRequest is the body of POST /api/v1/sip/project.
type SIPRequest struct {
	MonthlyContribution float64                   `json:"monthlyContribution"`
	AnnualRate          float64                   `json:"annualRate"`
	HorizonMonths       int                       `json:"horizonMonths"`
	Timing              domain.ContributionTiming `json:"timing,omitempty"`
}

func (h *PlannerHandler) Plan(w http.ResponseWriter, r *http.Request) {

	input := domain.DefaultPlannerInput()
	input.Policy = domain.ProjectionPolicy{}
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.Plan(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, result)
}

func (h *PlannerHandler) Compare(w http.ResponseWriter, r *http.Request) {

	input := domain.DefaultPlannerInput()
	input.Policy = domain.ProjectionPolicy{}
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.Compare(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, result)
}

func (h *PlannerHandler) Strategies(w http.ResponseWriter, r *http.Request) {
	writeData(w, service.Strategies())
}

func (h *PlannerHandler) ProjectSIP(w http.ResponseWriter, r *http.Request) {

	var req SIPRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Timing == "" {
		req.Timing = domain.ContributionAtEnd
	}

	result, err := service.ProjectSIP(domain.InvestmentTerms{
		MonthlyContribution: req.MonthlyContribution,
		AnnualRate:          req.AnnualRate,
		HorizonMonths:       req.HorizonMonths,
	}, req.Timing)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, result)
}
