package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/yaffasoft/sunucompta/internal/apperrors"
	"github.com/yaffasoft/sunucompta/internal/core/domain"
	portssvc "github.com/yaffasoft/sunucompta/internal/core/ports/services"
	"github.com/yaffasoft/sunucompta/internal/core/services"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountSvc  *MockAccountService
	mockFiscalSvc   *MockFiscalYearService
	service         portssvc.LedgerSvcFacade

	companyID  string
	userID     string
	fiscalYear domain.FiscalYear
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockAccountSvc = new(MockAccountService)
	s.mockFiscalSvc = new(MockFiscalYearService)
	s.service = services.NewLedgerService(s.mockJournalRepo, s.mockAccountSvc, s.mockFiscalSvc)

	s.companyID = uuid.NewString()
	s.userID = uuid.NewString()
	s.fiscalYear = domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    s.companyID,
		Label:        "Exercice 2026",
		StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func (s *LedgerServiceTestSuite) accountFor(role domain.AccountRole) *domain.Account {
	return &domain.Account{
		AccountID: uuid.NewString(),
		CompanyID: s.companyID,
		Code:      domain.DefaultAccountCodes[role],
		IsActive:  true,
	}
}

func (s *LedgerServiceTestSuite) TestPostInTx_InvoiceEmission() {
	ctx := context.Background()
	invoice := domain.Invoice{
		InvoiceID:  uuid.NewString(),
		CompanyID:  s.companyID,
		Number:     "FAC-2026-001",
		ClientName: "Boulangerie Toure",
		IssueDate:  time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		TotalHT:    decimal.NewFromInt(100000),
		TotalTVA:   decimal.NewFromInt(18000),
		TotalTTC:   decimal.NewFromInt(118000),
	}
	event := domain.InvoiceEmissionEvent(invoice)

	s.mockFiscalSvc.On("ResolveForDate", ctx, s.companyID, invoice.IssueDate).Return(&s.fiscalYear, nil).Once()
	s.mockAccountSvc.On("ResolveRole", ctx, s.companyID, domain.RoleClientReceivable).Return(s.accountFor(domain.RoleClientReceivable), nil).Once()
	s.mockAccountSvc.On("ResolveRole", ctx, s.companyID, domain.RoleSales).Return(s.accountFor(domain.RoleSales), nil).Once()
	s.mockAccountSvc.On("ResolveRole", ctx, s.companyID, domain.RoleVATCollected).Return(s.accountFor(domain.RoleVATCollected), nil).Once()

	var saved domain.JournalEntry
	s.mockJournalRepo.On("SaveEntryInTx", ctx, nil, mock.AnythingOfType("domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			saved = args.Get(2).(domain.JournalEntry)
		}).Return(nil).Once()

	entry, err := s.service.PostInTx(ctx, nil, event, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.True(entry.IsBalanced())
	s.Len(entry.Lines, 3)
	s.Equal(s.fiscalYear.FiscalYearID, entry.FiscalYearID)
	s.Equal(domain.JournalSales, entry.JournalType)
	s.True(entry.TotalDebit().Equal(decimal.NewFromInt(118000)))
	s.Equal(entry.EntryID, saved.EntryID)
	for _, line := range saved.Lines {
		s.Equal(entry.EntryID, line.EntryID)
	}

	s.mockFiscalSvc.AssertExpectations(s.T())
	s.mockAccountSvc.AssertExpectations(s.T())
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestPostInTx_ZeroVATLineDropped() {
	ctx := context.Background()
	invoice := domain.Invoice{
		InvoiceID:  uuid.NewString(),
		CompanyID:  s.companyID,
		Number:     "FAC-2026-002",
		ClientName: "Atelier Ndiaye",
		IssueDate:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		TotalHT:    decimal.NewFromInt(50000),
		TotalTVA:   decimal.Zero,
		TotalTTC:   decimal.NewFromInt(50000),
	}
	event := domain.InvoiceEmissionEvent(invoice)

	s.mockFiscalSvc.On("ResolveForDate", ctx, s.companyID, invoice.IssueDate).Return(&s.fiscalYear, nil).Once()
	s.mockAccountSvc.On("ResolveRole", ctx, s.companyID, domain.RoleClientReceivable).Return(s.accountFor(domain.RoleClientReceivable), nil).Once()
	s.mockAccountSvc.On("ResolveRole", ctx, s.companyID, domain.RoleSales).Return(s.accountFor(domain.RoleSales), nil).Once()
	s.mockJournalRepo.On("SaveEntryInTx", ctx, nil, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	entry, err := s.service.PostInTx(ctx, nil, event, s.userID)

	s.Require().NoError(err)
	s.Len(entry.Lines, 2)
	s.True(entry.IsBalanced())

	// The VAT role must never be resolved for a VAT-free invoice.
	s.mockAccountSvc.AssertNotCalled(s.T(), "ResolveRole", ctx, s.companyID, domain.RoleVATCollected)
}

func (s *LedgerServiceTestSuite) TestPostInTx_NoOpenFiscalYear() {
	ctx := context.Background()
	run := domain.PayrollRun{
		CompanyID:            s.companyID,
		Period:               "2026-02",
		RunDate:              time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		TotalGross:           decimal.NewFromInt(800000),
		TotalEmployerCharges: decimal.NewFromInt(120000),
		TotalNet:             decimal.NewFromInt(640000),
	}
	event := domain.PayrollRunEvent(run)

	s.mockFiscalSvc.On("ResolveForDate", ctx, s.companyID, run.RunDate).Return(nil, apperrors.ErrPostingSkipped).Once()

	entry, err := s.service.PostInTx(ctx, nil, event, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrPostingSkipped)
	s.Nil(entry)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestPostInTx_MissingAccountAborts() {
	ctx := context.Background()
	invoice := domain.Invoice{
		CompanyID:  s.companyID,
		Number:     "FAC-2026-003",
		ClientName: "SARL Diop",
		IssueDate:  time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		TotalHT:    decimal.NewFromInt(20000),
		TotalTVA:   decimal.NewFromInt(3600),
		TotalTTC:   decimal.NewFromInt(23600),
	}
	event := domain.InvoiceEmissionEvent(invoice)

	s.mockFiscalSvc.On("ResolveForDate", ctx, s.companyID, invoice.IssueDate).Return(&s.fiscalYear, nil).Once()
	s.mockAccountSvc.On("ResolveRole", ctx, s.companyID, domain.RoleClientReceivable).Return(nil, apperrors.ErrPostingSkipped).Once()

	entry, err := s.service.PostInTx(ctx, nil, event, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrPostingSkipped)
	s.Nil(entry)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestGetEntryByID_WrongCompany() {
	ctx := context.Background()
	entry := &domain.JournalEntry{EntryID: uuid.NewString(), CompanyID: uuid.NewString()}
	s.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	found, err := s.service.GetEntryByID(ctx, s.companyID, entry.EntryID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(found)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
