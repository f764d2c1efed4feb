package dto

import (
	"github.com/yaffasoft/sunucompta/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating a chart-of-accounts entry.
type CreateAccountRequest struct {
	Code  string             `json:"code" binding:"required,numeric,min=3,max=8"`
	Label string             `json:"label" binding:"required"`
	Type  domain.AccountType `json:"type" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
}

// SetRoleOverrideRequest maps a posting role to a company-specific account code.
type SetRoleOverrideRequest struct {
	Role domain.AccountRole `json:"role" binding:"required"`
	Code string             `json:"code" binding:"required,numeric"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID string             `json:"accountID"`
	Code      string             `json:"code"`
	Label     string             `json:"label"`
	Type      domain.AccountType `json:"type"`
	IsActive  bool               `json:"isActive"`
}

// ToAccountResponse converts a domain account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: a.AccountID,
		Code:      a.Code,
		Label:     a.Label,
		Type:      a.Type,
		IsActive:  a.IsActive,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	resp := make([]AccountResponse, len(accounts))
	for i := range accounts {
		resp[i] = ToAccountResponse(&accounts[i])
	}
	return resp
}
