package domain

import "time"

// FiscalYear is a company accounting period. Postings must fall inside an open one.
// Open fiscal years of the same company must never overlap; the service checks on
// creation and the schema carries an exclusion constraint as a backstop.
type FiscalYear struct {
	FiscalYearID string    `json:"fiscalYearID"` // Primary key (UUID)
	CompanyID    string    `json:"companyID"`
	Label        string    `json:"label"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	IsClosed     bool      `json:"isClosed"`
	AuditFields
}

// Contains reports whether the given date falls within the fiscal year range,
// boundaries included. Comparison is on calendar dates, not instants.
func (fy FiscalYear) Contains(date time.Time) bool {
	d := toDateOnly(date)
	return !d.Before(toDateOnly(fy.StartDate)) && !d.After(toDateOnly(fy.EndDate))
}

// Overlaps reports whether two fiscal year ranges share at least one day.
func (fy FiscalYear) Overlaps(other FiscalYear) bool {
	return !toDateOnly(fy.EndDate).Before(toDateOnly(other.StartDate)) &&
		!toDateOnly(other.EndDate).Before(toDateOnly(fy.StartDate))
}

func toDateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
