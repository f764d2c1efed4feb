package services

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
)

// ruleMatches reports whether every set condition of the rule holds for the
// transaction. Unset conditions always hold; a rule with no conditions matches
// everything.
func ruleMatches(rule domain.BankMatchingRule, label string, amount decimal.Decimal) bool {
	if rule.LabelContains != nil {
		if !strings.Contains(strings.ToLower(label), strings.ToLower(*rule.LabelContains)) {
			return false
		}
	}
	if rule.AmountEquals != nil && !amount.Equal(*rule.AmountEquals) {
		return false
	}
	if rule.AmountMin != nil && amount.LessThan(*rule.AmountMin) {
		return false
	}
	if rule.AmountMax != nil && amount.GreaterThan(*rule.AmountMax) {
		return false
	}
	return true
}

// firstMatchingRule returns the highest-priority active rule matching the
// transaction, or nil when none does. Ties on priority keep the input order,
// which the repository guarantees is creation order.
func firstMatchingRule(rules []domain.BankMatchingRule, label string, amount decimal.Decimal) *domain.BankMatchingRule {
	sorted := make([]domain.BankMatchingRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})

	for i := range sorted {
		if !sorted[i].IsActive {
			continue
		}
		if ruleMatches(sorted[i], label, amount) {
			return &sorted[i]
		}
	}
	return nil
}

// invoiceMatch is a soft-match candidate found for a bank transaction.
type invoiceMatch struct {
	InvoiceID string
	Side      domain.MatchSide
}

// matchOpenInvoice looks for the open invoice a bank transaction settles: inflows
// search client invoices, outflows supplier invoices, among candidates whose
// tax-inclusive total equals the transaction amount. A candidate whose number appears
// in the transaction label wins; otherwise a sole candidate wins. Anything ambiguous
// stays unmatched and is left for a human.
func matchOpenInvoice(label string, amount decimal.Decimal, clients []domain.Invoice, suppliers []domain.SupplierInvoice) *invoiceMatch {
	if amount.IsZero() {
		return nil
	}

	if amount.IsPositive() {
		numbers := make([]string, len(clients))
		for i := range clients {
			numbers[i] = clients[i].Number
		}
		if idx, ok := pickCandidate(label, numbers); ok {
			return &invoiceMatch{InvoiceID: clients[idx].InvoiceID, Side: domain.MatchClient}
		}
		return nil
	}

	numbers := make([]string, len(suppliers))
	for i := range suppliers {
		numbers[i] = suppliers[i].Number
	}
	if idx, ok := pickCandidate(label, numbers); ok {
		return &invoiceMatch{InvoiceID: suppliers[idx].InvoiceID, Side: domain.MatchSupplier}
	}
	return nil
}

// pickCandidate selects among equal-total candidates by invoice number: the candidate
// whose number appears in the label (case-insensitive) wins, unless several do. With
// no label hit, a sole candidate wins.
func pickCandidate(label string, numbers []string) (int, bool) {
	lowerLabel := strings.ToLower(label)
	hit := -1
	for i, number := range numbers {
		if number == "" || !strings.Contains(lowerLabel, strings.ToLower(number)) {
			continue
		}
		if hit >= 0 {
			return 0, false
		}
		hit = i
	}
	if hit >= 0 {
		return hit, true
	}
	if len(numbers) == 1 {
		return 0, true
	}
	return 0, false
}
