package domain

// AccountType defines the fundamental accounting classification of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is one entry of a company's chart of accounts. The code is unique within a
// company and follows the plan-comptable numbering (e.g. "411000"). Accounts referenced
// by posted journal lines are treated as immutable.
type Account struct {
	AccountID string      `json:"accountID"` // Primary key (UUID)
	CompanyID string      `json:"companyID"` // FK -> companies.company_id
	Code      string      `json:"code"`      // Unique per company
	Label     string      `json:"label"`
	Type      AccountType `json:"type"`
	IsActive  bool        `json:"isActive"`
	AuditFields
}

// AccountRole names the bookkeeping purpose an account serves in automated postings.
// Each role maps to an account code, configurable per company with these defaults.
type AccountRole string

const (
	RoleClientReceivable AccountRole = "CLIENT_RECEIVABLE"
	RoleSupplierPayable  AccountRole = "SUPPLIER_PAYABLE"
	RoleSales            AccountRole = "SALES"
	RoleVATCollected     AccountRole = "VAT_COLLECTED"
	RoleBankTreasury     AccountRole = "BANK_TREASURY"
	RoleCashTreasury     AccountRole = "CASH_TREASURY"
	RoleGrossSalaries    AccountRole = "GROSS_SALARIES"
	RoleEmployerCharges  AccountRole = "EMPLOYER_CHARGES"
	RoleNetPayable       AccountRole = "NET_PAYABLE"
	RoleSocialBodies     AccountRole = "SOCIAL_BODIES"
)

// DefaultAccountCodes is the fallback role-to-code mapping used when a company has not
// overridden a role in its settings.
var DefaultAccountCodes = map[AccountRole]string{
	RoleClientReceivable: "411000",
	RoleSupplierPayable:  "401100",
	RoleSales:            "701000",
	RoleVATCollected:     "443100",
	RoleBankTreasury:     "512000",
	RoleCashTreasury:     "531000",
	RoleGrossSalaries:    "641000",
	RoleEmployerCharges:  "645000",
	RoleNetPayable:       "421000",
	RoleSocialBodies:     "431000",
}
