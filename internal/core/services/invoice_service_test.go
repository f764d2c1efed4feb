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
	"github.com/yaffasoft/sunucompta/internal/dto"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockPoster      *MockLedgerPoster
	service         portssvc.InvoiceSvcFacade

	companyID string
	userID    string
}

func (s *InvoiceServiceTestSuite) SetupTest() {
	s.mockInvoiceRepo = new(MockInvoiceRepository)
	s.mockPoster = new(MockLedgerPoster)
	s.service = services.NewInvoiceService(&stubTxManager{}, s.mockInvoiceRepo, s.mockPoster)

	s.companyID = uuid.NewString()
	s.userID = uuid.NewString()
}

func (s *InvoiceServiceTestSuite) createRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		Number:     "FAC-2026-001",
		ClientName: "Boulangerie Toure",
		IssueDate:  time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		TotalHT:    decimal.NewFromInt(100000),
		TotalTVA:   decimal.NewFromInt(18000),
		TotalTTC:   decimal.NewFromInt(118000),
	}
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_Success() {
	ctx := context.Background()
	s.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	invoice, err := s.service.CreateInvoice(ctx, s.companyID, s.createRequest(), s.userID)

	s.Require().NoError(err)
	s.Equal(domain.InvoiceDraft, invoice.Status)
	s.True(invoice.AmountPaid.IsZero())
	s.Equal(s.companyID, invoice.CompanyID)
	s.Equal(s.userID, invoice.CreatedBy)
	s.mockInvoiceRepo.AssertExpectations(s.T())
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_TotalsMustAddUp() {
	ctx := context.Background()
	req := s.createRequest()
	req.TotalTTC = decimal.NewFromInt(120000)

	invoice, err := s.service.CreateInvoice(ctx, s.companyID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(invoice)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_NegativeTVARejected() {
	ctx := context.Background()
	req := s.createRequest()
	req.TotalTVA = decimal.NewFromInt(-1)
	req.TotalTTC = req.TotalHT.Add(req.TotalTVA)

	_, err := s.service.CreateInvoice(ctx, s.companyID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *InvoiceServiceTestSuite) TestSendInvoice_PostsEmissionEntry() {
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
		Status:     domain.InvoiceDraft,
	}

	s.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoice.InvoiceID).Return(&invoice, nil).Once()
	s.mockInvoiceRepo.On("UpdateInvoiceStatusInTx", ctx, nil, invoice.InvoiceID, domain.InvoiceSent, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	var postedEvent domain.PostingEvent
	s.mockPoster.On("PostInTx", ctx, nil, mock.AnythingOfType("domain.PostingEvent"), s.userID).
		Run(func(args mock.Arguments) {
			postedEvent = args.Get(2).(domain.PostingEvent)
		}).Return(&domain.JournalEntry{}, nil).Once()

	sent, err := s.service.SendInvoice(ctx, s.companyID, invoice.InvoiceID, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.InvoiceSent, sent.Status)
	s.Equal(domain.JournalSales, postedEvent.JournalType)
	s.Equal(invoice.Number, postedEvent.Reference)
	s.mockInvoiceRepo.AssertExpectations(s.T())
	s.mockPoster.AssertExpectations(s.T())
}

func (s *InvoiceServiceTestSuite) TestSendInvoice_NonDraftConflicts() {
	ctx := context.Background()
	invoice := domain.Invoice{
		InvoiceID: uuid.NewString(),
		CompanyID: s.companyID,
		Number:    "FAC-2026-002",
		Status:    domain.InvoiceSent,
	}

	s.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoice.InvoiceID).Return(&invoice, nil).Once()

	sent, err := s.service.SendInvoice(ctx, s.companyID, invoice.InvoiceID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Nil(sent)
	s.mockPoster.AssertNotCalled(s.T(), "PostInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestSendInvoice_PostingFailureAbortsTransition() {
	ctx := context.Background()
	invoice := domain.Invoice{
		InvoiceID: uuid.NewString(),
		CompanyID: s.companyID,
		Number:    "FAC-2026-003",
		IssueDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		TotalHT:   decimal.NewFromInt(100),
		TotalTTC:  decimal.NewFromInt(100),
		Status:    domain.InvoiceDraft,
	}

	s.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoice.InvoiceID).Return(&invoice, nil).Once()
	s.mockInvoiceRepo.On("UpdateInvoiceStatusInTx", ctx, nil, invoice.InvoiceID, domain.InvoiceSent, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockPoster.On("PostInTx", ctx, nil, mock.AnythingOfType("domain.PostingEvent"), s.userID).Return(nil, apperrors.ErrPostingSkipped).Once()

	sent, err := s.service.SendInvoice(ctx, s.companyID, invoice.InvoiceID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrPostingSkipped)
	s.Nil(sent)
}

func (s *InvoiceServiceTestSuite) TestCancelInvoice_WithPaymentsConflicts() {
	ctx := context.Background()
	invoice := domain.Invoice{
		InvoiceID:  uuid.NewString(),
		CompanyID:  s.companyID,
		Number:     "FAC-2026-004",
		TotalTTC:   decimal.NewFromInt(100000),
		AmountPaid: decimal.NewFromInt(30000),
		Status:     domain.InvoicePartiallyPaid,
	}

	s.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoice.InvoiceID).Return(&invoice, nil).Once()

	err := s.service.CancelInvoice(ctx, s.companyID, invoice.InvoiceID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "UpdateInvoiceStatusInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestCancelInvoice_Success() {
	ctx := context.Background()
	invoice := domain.Invoice{
		InvoiceID: uuid.NewString(),
		CompanyID: s.companyID,
		Number:    "FAC-2026-005",
		Status:    domain.InvoiceSent,
	}

	s.mockInvoiceRepo.On("FindInvoiceByIDForUpdate", ctx, nil, invoice.InvoiceID).Return(&invoice, nil).Once()
	s.mockInvoiceRepo.On("UpdateInvoiceStatusInTx", ctx, nil, invoice.InvoiceID, domain.InvoiceCancelled, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := s.service.CancelInvoice(ctx, s.companyID, invoice.InvoiceID, s.userID)

	s.Require().NoError(err)
	s.mockInvoiceRepo.AssertExpectations(s.T())
}

func (s *InvoiceServiceTestSuite) TestGetInvoiceByID_WrongCompany() {
	ctx := context.Background()
	invoice := domain.Invoice{InvoiceID: uuid.NewString(), CompanyID: uuid.NewString()}

	s.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()

	found, err := s.service.GetInvoiceByID(ctx, s.companyID, invoice.InvoiceID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(found)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}

type SupplierInvoiceServiceTestSuite struct {
	suite.Suite
	mockSupplierRepo *MockSupplierInvoiceRepository
	service          portssvc.SupplierInvoiceSvcFacade

	companyID string
	userID    string
}

func (s *SupplierInvoiceServiceTestSuite) SetupTest() {
	s.mockSupplierRepo = new(MockSupplierInvoiceRepository)
	s.service = services.NewSupplierInvoiceService(s.mockSupplierRepo)
	s.companyID = uuid.NewString()
	s.userID = uuid.NewString()
}

func (s *SupplierInvoiceServiceTestSuite) TestCreateSupplierInvoice_RegisteredAsPending() {
	ctx := context.Background()
	s.mockSupplierRepo.On("SaveSupplierInvoice", ctx, mock.AnythingOfType("domain.SupplierInvoice")).Return(nil).Once()

	invoice, err := s.service.CreateSupplierInvoice(ctx, s.companyID, dto.CreateSupplierInvoiceRequest{
		Number:       "FRS-2026-001",
		SupplierName: "Senelec",
		IssueDate:    time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		DueDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalHT:      decimal.NewFromInt(38136),
		TotalTVA:     decimal.NewFromInt(6864),
		TotalTTC:     decimal.NewFromInt(45000),
	}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.InvoicePending, invoice.Status)
	s.mockSupplierRepo.AssertExpectations(s.T())
}

func (s *SupplierInvoiceServiceTestSuite) TestCreateSupplierInvoice_TotalsMustAddUp() {
	ctx := context.Background()

	_, err := s.service.CreateSupplierInvoice(ctx, s.companyID, dto.CreateSupplierInvoiceRequest{
		Number:       "FRS-2026-002",
		SupplierName: "Sonatel",
		IssueDate:    time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		DueDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalHT:      decimal.NewFromInt(10000),
		TotalTVA:     decimal.NewFromInt(1800),
		TotalTTC:     decimal.NewFromInt(12000),
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockSupplierRepo.AssertNotCalled(s.T(), "SaveSupplierInvoice", mock.Anything, mock.Anything)
}

func TestSupplierInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SupplierInvoiceServiceTestSuite))
}
