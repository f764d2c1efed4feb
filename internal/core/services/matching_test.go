package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaffasoft/sunucompta/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestRuleMatches(t *testing.T) {
	tests := []struct {
		name   string
		rule   domain.BankMatchingRule
		label  string
		amount decimal.Decimal
		want   bool
	}{
		{
			name:   "no conditions matches everything",
			rule:   domain.BankMatchingRule{},
			label:  "anything",
			amount: decimal.NewFromInt(-500),
			want:   true,
		},
		{
			name:   "label substring is case insensitive",
			rule:   domain.BankMatchingRule{LabelContains: strPtr("SENELEC")},
			label:  "Prelevement senelec mars",
			amount: decimal.NewFromInt(-45000),
			want:   true,
		},
		{
			name:   "label substring absent",
			rule:   domain.BankMatchingRule{LabelContains: strPtr("orange")},
			label:  "Prelevement senelec mars",
			amount: decimal.NewFromInt(-45000),
			want:   false,
		},
		{
			name:   "amount equals",
			rule:   domain.BankMatchingRule{AmountEquals: decPtr(-45000)},
			label:  "x",
			amount: decimal.NewFromInt(-45000),
			want:   true,
		},
		{
			name:   "amount equals mismatch",
			rule:   domain.BankMatchingRule{AmountEquals: decPtr(-45000)},
			label:  "x",
			amount: decimal.NewFromInt(-45001),
			want:   false,
		},
		{
			name:   "amount inside min max range",
			rule:   domain.BankMatchingRule{AmountMin: decPtr(-50000), AmountMax: decPtr(-40000)},
			label:  "x",
			amount: decimal.NewFromInt(-45000),
			want:   true,
		},
		{
			name:   "amount below min",
			rule:   domain.BankMatchingRule{AmountMin: decPtr(-50000)},
			label:  "x",
			amount: decimal.NewFromInt(-60000),
			want:   false,
		},
		{
			name: "all set conditions must hold",
			rule: domain.BankMatchingRule{
				LabelContains: strPtr("loyer"),
				AmountEquals:  decPtr(-250000),
			},
			label:  "Virement loyer juin",
			amount: decimal.NewFromInt(-200000),
			want:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ruleMatches(tt.rule, tt.label, tt.amount))
		})
	}
}

func TestFirstMatchingRule_PriorityOrder(t *testing.T) {
	low := domain.BankMatchingRule{RuleID: "low", Priority: 1, IsActive: true, LabelContains: strPtr("senelec")}
	high := domain.BankMatchingRule{RuleID: "high", Priority: 10, IsActive: true, LabelContains: strPtr("senelec")}
	inactive := domain.BankMatchingRule{RuleID: "inactive", Priority: 100, IsActive: false, LabelContains: strPtr("senelec")}

	got := firstMatchingRule([]domain.BankMatchingRule{low, inactive, high}, "Prelevement Senelec", decimal.NewFromInt(-45000))

	require.NotNil(t, got)
	assert.Equal(t, "high", got.RuleID)
}

func TestFirstMatchingRule_NoMatch(t *testing.T) {
	rules := []domain.BankMatchingRule{
		{RuleID: "a", Priority: 5, IsActive: true, LabelContains: strPtr("orange")},
	}

	assert.Nil(t, firstMatchingRule(rules, "Prelevement Senelec", decimal.NewFromInt(-45000)))
	assert.Nil(t, firstMatchingRule(nil, "anything", decimal.NewFromInt(100)))
}

func TestFirstMatchingRule_StableOnEqualPriority(t *testing.T) {
	first := domain.BankMatchingRule{RuleID: "first", Priority: 5, IsActive: true}
	second := domain.BankMatchingRule{RuleID: "second", Priority: 5, IsActive: true}

	got := firstMatchingRule([]domain.BankMatchingRule{first, second}, "x", decimal.NewFromInt(1))

	require.NotNil(t, got)
	assert.Equal(t, "first", got.RuleID)
}

func TestMatchOpenInvoice(t *testing.T) {
	client := domain.Invoice{InvoiceID: "inv-1", Number: "FAC-2026-0001"}
	otherClient := domain.Invoice{InvoiceID: "inv-2", Number: "FAC-2026-0002"}
	supplier := domain.SupplierInvoice{InvoiceID: "sup-1", Number: "SEN-7781"}
	otherSupplier := domain.SupplierInvoice{InvoiceID: "sup-2", Number: "SEN-7790"}

	t.Run("single client candidate on inflow", func(t *testing.T) {
		got := matchOpenInvoice("VIR RECU", decimal.NewFromInt(118000), []domain.Invoice{client}, nil)
		require.NotNil(t, got)
		assert.Equal(t, "inv-1", got.InvoiceID)
		assert.Equal(t, domain.MatchClient, got.Side)
	})

	t.Run("single supplier candidate on outflow", func(t *testing.T) {
		got := matchOpenInvoice("PRLV", decimal.NewFromInt(-45000), nil, []domain.SupplierInvoice{supplier})
		require.NotNil(t, got)
		assert.Equal(t, "sup-1", got.InvoiceID)
		assert.Equal(t, domain.MatchSupplier, got.Side)
	})

	t.Run("label naming an invoice number disambiguates equal totals", func(t *testing.T) {
		got := matchOpenInvoice("VIR RECU FAC-2026-0002 BOULANGERIE", decimal.NewFromInt(50000),
			[]domain.Invoice{client, otherClient}, nil)
		require.NotNil(t, got)
		assert.Equal(t, "inv-2", got.InvoiceID)
		assert.Equal(t, domain.MatchClient, got.Side)
	})

	t.Run("label hit is case-insensitive", func(t *testing.T) {
		got := matchOpenInvoice("vir recu fac-2026-0002", decimal.NewFromInt(50000),
			[]domain.Invoice{client, otherClient}, nil)
		require.NotNil(t, got)
		assert.Equal(t, "inv-2", got.InvoiceID)
	})

	t.Run("label hit beats sole-candidate fallback on supplier side", func(t *testing.T) {
		got := matchOpenInvoice("PRLV SENELEC SEN-7790", decimal.NewFromInt(-45000),
			nil, []domain.SupplierInvoice{supplier, otherSupplier})
		require.NotNil(t, got)
		assert.Equal(t, "sup-2", got.InvoiceID)
		assert.Equal(t, domain.MatchSupplier, got.Side)
	})

	t.Run("label naming several candidates stays unmatched", func(t *testing.T) {
		assert.Nil(t, matchOpenInvoice("REGUL FAC-2026-0001 FAC-2026-0002", decimal.NewFromInt(50000),
			[]domain.Invoice{client, otherClient}, nil))
	})

	t.Run("ambiguous candidates without a label hit stay unmatched", func(t *testing.T) {
		assert.Nil(t, matchOpenInvoice("VIR RECU", decimal.NewFromInt(118000),
			[]domain.Invoice{client, otherClient}, nil))
	})

	t.Run("no candidates", func(t *testing.T) {
		assert.Nil(t, matchOpenInvoice("VIR RECU FAC-2026-0001", decimal.NewFromInt(118000), nil, nil))
	})

	t.Run("zero amount never matches", func(t *testing.T) {
		assert.Nil(t, matchOpenInvoice("VIR RECU", decimal.Zero, []domain.Invoice{client}, []domain.SupplierInvoice{supplier}))
	})
}
