package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingEvent describes a business event to be recorded as one balanced journal
// entry. Lines reference accounts by role; the poster resolves roles to the company's
// account codes before building the entry.
type PostingEvent struct {
	CompanyID   string
	Date        time.Time
	Reference   string
	Description string
	JournalType JournalType
	Lines       []PostingEventLine
}

// PostingEventLine is one side of a posting event. Exactly one of Debit/Credit must be
// positive. Zero-amount lines are dropped by the poster (e.g. a VAT line on a VAT-free
// invoice).
type PostingEventLine struct {
	Role   AccountRole
	Label  string
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// InvoiceEmissionEvent builds the posting for sending a client invoice: receivable is
// debited for the tax-inclusive total against sales and collected VAT.
func InvoiceEmissionEvent(inv Invoice) PostingEvent {
	label := "Facture " + inv.Number
	return PostingEvent{
		CompanyID:   inv.CompanyID,
		Date:        inv.IssueDate,
		Reference:   inv.Number,
		Description: "Emission facture " + inv.Number + " - " + inv.ClientName,
		JournalType: JournalSales,
		Lines: []PostingEventLine{
			{Role: RoleClientReceivable, Label: label, Debit: inv.TotalTTC},
			{Role: RoleSales, Label: label, Credit: inv.TotalHT},
			{Role: RoleVATCollected, Label: label, Credit: inv.TotalTVA},
		},
	}
}

// ClientPaymentEvent builds the posting for a payment received on a client invoice:
// treasury is debited against the receivable.
func ClientPaymentEvent(inv Invoice, p Payment) PostingEvent {
	label := "Reglement facture " + inv.Number
	return PostingEvent{
		CompanyID:   inv.CompanyID,
		Date:        p.PaymentDate,
		Reference:   p.Reference,
		Description: label + " - " + inv.ClientName,
		JournalType: p.Method.JournalType(),
		Lines: []PostingEventLine{
			{Role: p.Method.TreasuryRole(), Label: label, Debit: p.Amount},
			{Role: RoleClientReceivable, Label: label, Credit: p.Amount},
		},
	}
}

// SupplierPaymentEvent builds the posting for paying a supplier invoice: the payable is
// debited against treasury.
func SupplierPaymentEvent(inv SupplierInvoice, p SupplierPayment) PostingEvent {
	label := "Reglement fournisseur " + inv.Number
	return PostingEvent{
		CompanyID:   inv.CompanyID,
		Date:        p.PaymentDate,
		Reference:   p.Reference,
		Description: label + " - " + inv.SupplierName,
		JournalType: p.Method.JournalType(),
		Lines: []PostingEventLine{
			{Role: RoleSupplierPayable, Label: label, Debit: p.Amount},
			{Role: p.Method.TreasuryRole(), Label: label, Credit: p.Amount},
		},
	}
}

// PayrollRunEvent builds the posting for a monthly payroll run: salary expense and
// employer charges against net pay owed to employees and amounts owed to social bodies
// (employee withholdings plus employer charges).
func PayrollRunEvent(run PayrollRun) PostingEvent {
	label := "Paie " + run.Period
	withheld := run.TotalGross.Sub(run.TotalNet)
	return PostingEvent{
		CompanyID:   run.CompanyID,
		Date:        run.RunDate,
		Reference:   run.Period,
		Description: label,
		JournalType: JournalGeneral,
		Lines: []PostingEventLine{
			{Role: RoleGrossSalaries, Label: label, Debit: run.TotalGross},
			{Role: RoleEmployerCharges, Label: label, Debit: run.TotalEmployerCharges},
			{Role: RoleNetPayable, Label: label, Credit: run.TotalNet},
			{Role: RoleSocialBodies, Label: label, Credit: withheld.Add(run.TotalEmployerCharges)},
		},
	}
}
