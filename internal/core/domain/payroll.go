package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRunStatus is the state of a monthly payroll run.
type PayrollRunStatus string

const (
	PayrollPosted PayrollRunStatus = "POSTED"
)

// PayrollRun aggregates one month of payroll for a company. At most one run may exist
// per (company, period); a second run for the same period is a conflict. Gross-to-net
// arithmetic happens upstream: line amounts arrive precomputed.
type PayrollRun struct {
	RunID                string           `json:"runID"`  // Primary key (UUID)
	CompanyID            string           `json:"companyID"`
	Period               string           `json:"period"` // YYYY-MM
	RunDate              time.Time        `json:"runDate"`
	TotalGross           decimal.Decimal  `json:"totalGross"`
	TotalEmployerCharges decimal.Decimal  `json:"totalEmployerCharges"`
	TotalNet             decimal.Decimal  `json:"totalNet"`
	Status               PayrollRunStatus `json:"status"`
	Lines                []PayrollLine
	AuditFields
}

// PayrollLine is one employee's amounts within a payroll run.
type PayrollLine struct {
	LineID          string          `json:"lineID"` // Primary key (UUID)
	RunID           string          `json:"runID"`
	EmployeeName    string          `json:"employeeName"`
	Gross           decimal.Decimal `json:"gross"`
	EmployerCharges decimal.Decimal `json:"employerCharges"`
	Net             decimal.Decimal `json:"net"`
}
