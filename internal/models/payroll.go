package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRun maps to the payroll_runs table.
type PayrollRun struct {
	RunID                string
	CompanyID            string
	Period               string
	RunDate              time.Time
	TotalGross           decimal.Decimal
	TotalEmployerCharges decimal.Decimal
	TotalNet             decimal.Decimal
	Status               string
	AuditFields
}

// PayrollLine maps to the payroll_lines table.
type PayrollLine struct {
	LineID          string
	RunID           string
	EmployeeName    string
	Gross           decimal.Decimal
	EmployerCharges decimal.Decimal
	Net             decimal.Decimal
}
