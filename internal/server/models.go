package server

import (
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failure
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PlanRequest is the body of POST /api/v1/plan
type PlanRequest struct {
	domain.PlanSettings
	CompoundIndex bool `json:"compoundIndex,omitempty"`
}

// PlanResponse returns the dense plan, plus the chained payments when
// compound indexing was requested
type PlanResponse struct {
	domain.YearlyPlan
	IndexedPayments map[int]string `json:"indexedPayments,omitempty"`
}

// NetValuesRequest is the body of POST /api/v1/net-values
type NetValuesRequest struct {
	Track       domain.Track     `json:"track"`
	IsCorporate bool             `json:"isCorporate"`
	Rows        []domain.YearRow `json:"rows"`
}

// NetValuesResponse holds the netted rows
type NetValuesResponse struct {
	Track   domain.Track    `json:"track"`
	NetRows []domain.NetRow `json:"netRows"`
}
