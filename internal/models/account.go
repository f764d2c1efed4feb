package models

// AccountType mirrors domain.AccountType for DB storage.
type AccountType string

// Account maps to the accounts table.
type Account struct {
	AccountID string
	CompanyID string
	Code      string
	Label     string
	Type      AccountType
	IsActive  bool
	AuditFields
}

// AccountRoleSetting maps to the company_account_settings table: one row per
// (company, role) override of the default posting account codes.
type AccountRoleSetting struct {
	CompanyID   string
	Role        string
	AccountCode string
}
