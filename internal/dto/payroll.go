package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
)

// PayrollLineRequest is one employee's precomputed amounts for a payroll run.
type PayrollLineRequest struct {
	EmployeeName    string          `json:"employeeName" binding:"required"`
	Gross           decimal.Decimal `json:"gross" binding:"required"`
	EmployerCharges decimal.Decimal `json:"employerCharges"`
	Net             decimal.Decimal `json:"net" binding:"required"`
}

// CreatePayrollRunRequest defines the payload for posting a monthly payroll run.
type CreatePayrollRunRequest struct {
	Period  string               `json:"period" binding:"required"` // YYYY-MM
	RunDate time.Time            `json:"runDate" binding:"required"`
	Lines   []PayrollLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// PayrollRunResponse is the API representation of a payroll run.
type PayrollRunResponse struct {
	RunID                string          `json:"runID"`
	Period               string          `json:"period"`
	RunDate              time.Time       `json:"runDate"`
	TotalGross           decimal.Decimal `json:"totalGross"`
	TotalEmployerCharges decimal.Decimal `json:"totalEmployerCharges"`
	TotalNet             decimal.Decimal `json:"totalNet"`
	Status               string          `json:"status"`
}

// ToPayrollRunResponse converts a domain payroll run.
func ToPayrollRunResponse(r *domain.PayrollRun) PayrollRunResponse {
	return PayrollRunResponse{
		RunID:                r.RunID,
		Period:               r.Period,
		RunDate:              r.RunDate,
		TotalGross:           r.TotalGross,
		TotalEmployerCharges: r.TotalEmployerCharges,
		TotalNet:             r.TotalNet,
		Status:               string(r.Status),
	}
}

// ToPayrollRunResponses converts a slice of domain payroll runs.
func ToPayrollRunResponses(runs []domain.PayrollRun) []PayrollRunResponse {
	resp := make([]PayrollRunResponse, len(runs))
	for i := range runs {
		resp[i] = ToPayrollRunResponse(&runs[i])
	}
	return resp
}
