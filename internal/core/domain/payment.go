package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how money changed hands. It drives the treasury account and the
// journal an entry is recorded in (CASH/MOBILE_MONEY -> cash, everything else -> bank).
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCheck        PaymentMethod = "CHECK"
	MethodCard         PaymentMethod = "CARD"
	MethodMobileMoney  PaymentMethod = "MOBILE_MONEY"
)

// IsCashLike reports whether the method settles through the cash treasury account.
func (m PaymentMethod) IsCashLike() bool {
	return m == MethodCash || m == MethodMobileMoney
}

// TreasuryRole returns the account role the payment settles through.
func (m PaymentMethod) TreasuryRole() AccountRole {
	if m.IsCashLike() {
		return RoleCashTreasury
	}
	return RoleBankTreasury
}

// JournalType returns the journal a payment with this method is recorded in.
func (m PaymentMethod) JournalType() JournalType {
	if m.IsCashLike() {
		return JournalCash
	}
	return JournalBank
}

// Payment is one payment applied to a client invoice. Payments are created exactly once
// per accepted payment action and are never mutated or deleted.
type Payment struct {
	PaymentID   string          `json:"paymentID"` // Primary key (UUID)
	CompanyID   string          `json:"companyID"`
	InvoiceID   string          `json:"invoiceID"`
	Amount      decimal.Decimal `json:"amount"` // Always positive
	PaymentDate time.Time       `json:"paymentDate"`
	Method      PaymentMethod   `json:"method"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
	AuditFields
}

// SupplierPayment is one payment applied to a supplier invoice.
type SupplierPayment struct {
	PaymentID   string          `json:"paymentID"` // Primary key (UUID)
	CompanyID   string          `json:"companyID"`
	InvoiceID   string          `json:"invoiceID"` // FK -> supplier_invoices
	Amount      decimal.Decimal `json:"amount"`    // Always positive
	PaymentDate time.Time       `json:"paymentDate"`
	Method      PaymentMethod   `json:"method"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
	AuditFields
}
