package dto

import (
	"time"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
)

// CreateFiscalYearRequest defines the payload for opening a fiscal year.
type CreateFiscalYearRequest struct {
	Label     string    `json:"label" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// FiscalYearResponse is the API representation of a fiscal year.
type FiscalYearResponse struct {
	FiscalYearID string    `json:"fiscalYearID"`
	Label        string    `json:"label"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	IsClosed     bool      `json:"isClosed"`
}

// ToFiscalYearResponse converts a domain fiscal year to its API representation.
func ToFiscalYearResponse(fy *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		FiscalYearID: fy.FiscalYearID,
		Label:        fy.Label,
		StartDate:    fy.StartDate,
		EndDate:      fy.EndDate,
		IsClosed:     fy.IsClosed,
	}
}

// ToFiscalYearResponses converts a slice of domain fiscal years.
func ToFiscalYearResponses(years []domain.FiscalYear) []FiscalYearResponse {
	resp := make([]FiscalYearResponse, len(years))
	for i := range years {
		resp[i] = ToFiscalYearResponse(&years[i])
	}
	return resp
}
