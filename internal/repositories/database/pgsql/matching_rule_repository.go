package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yaffasoft/sunucompta/internal/apperrors"
	"github.com/yaffasoft/sunucompta/internal/core/domain"
	portsrepo "github.com/yaffasoft/sunucompta/internal/core/ports/repositories"
	"github.com/yaffasoft/sunucompta/internal/models"
)

type PgxMatchingRuleRepository struct {
	pool *pgxpool.Pool
}

// newPgxMatchingRuleRepository creates a new repository for bank matching rules.
func newPgxMatchingRuleRepository(pool *pgxpool.Pool) portsrepo.MatchingRuleRepositoryFacade {
	return &PgxMatchingRuleRepository{pool: pool}
}

var _ portsrepo.MatchingRuleRepositoryFacade = (*PgxMatchingRuleRepository)(nil)

func toDomainMatchingRule(m models.BankMatchingRule) domain.BankMatchingRule {
	return domain.BankMatchingRule{
		RuleID:          m.RuleID,
		CompanyID:       m.CompanyID,
		Name:            m.Name,
		Priority:        m.Priority,
		LabelContains:   m.LabelContains,
		AmountMin:       m.AmountMin,
		AmountMax:       m.AmountMax,
		AmountEquals:    m.AmountEquals,
		AssignAccountID: m.AssignAccountID,
		AutoReconcile:   m.AutoReconcile,
		IsActive:        m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// SaveMatchingRule inserts a new matching rule.
func (r *PgxMatchingRuleRepository) SaveMatchingRule(ctx context.Context, rule domain.BankMatchingRule) error {
	query := `
		INSERT INTO bank_matching_rules (rule_id, company_id, name, priority, label_contains, amount_min, amount_max, amount_equals, assign_account_id, auto_reconcile, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.pool.Exec(ctx, query,
		rule.RuleID,
		rule.CompanyID,
		rule.Name,
		rule.Priority,
		rule.LabelContains,
		rule.AmountMin,
		rule.AmountMax,
		rule.AmountEquals,
		rule.AssignAccountID,
		rule.AutoReconcile,
		rule.IsActive,
		rule.CreatedAt,
		rule.CreatedBy,
		rule.LastUpdatedAt,
		rule.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: matching rule %s already exists", apperrors.ErrDuplicate, rule.RuleID)
		}
		return fmt.Errorf("failed to save matching rule %s: %w", rule.RuleID, err)
	}
	return nil
}

// ListActiveRulesByCompany returns active rules ordered by priority descending then
// creation time ascending, which is the evaluation order of the import matcher.
func (r *PgxMatchingRuleRepository) ListActiveRulesByCompany(ctx context.Context, companyID string) ([]domain.BankMatchingRule, error) {
	query := `
		SELECT rule_id, company_id, name, priority, label_contains, amount_min, amount_max, amount_equals, assign_account_id, auto_reconcile, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM bank_matching_rules
		WHERE company_id = $1 AND is_active = TRUE
		ORDER BY priority DESC, created_at ASC;
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matching rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.BankMatchingRule
	for rows.Next() {
		var m models.BankMatchingRule
		if err := rows.Scan(
			&m.RuleID,
			&m.CompanyID,
			&m.Name,
			&m.Priority,
			&m.LabelContains,
			&m.AmountMin,
			&m.AmountMax,
			&m.AmountEquals,
			&m.AssignAccountID,
			&m.AutoReconcile,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan matching rule row: %w", err)
		}
		rules = append(rules, toDomainMatchingRule(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matching rule rows: %w", err)
	}
	return rules, nil
}
