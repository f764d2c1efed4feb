package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/yaffasoft/sunucompta/internal/apperrors"
	"github.com/yaffasoft/sunucompta/internal/core/domain"
	portssvc "github.com/yaffasoft/sunucompta/internal/core/ports/services"
	"github.com/yaffasoft/sunucompta/internal/core/services"
	"github.com/yaffasoft/sunucompta/internal/dto"
)

type FiscalYearServiceTestSuite struct {
	suite.Suite
	mockFiscalYearRepo *MockFiscalYearRepository
	service            portssvc.FiscalYearSvcFacade

	companyID string
	userID    string
}

func (s *FiscalYearServiceTestSuite) SetupTest() {
	s.mockFiscalYearRepo = new(MockFiscalYearRepository)
	s.service = services.NewFiscalYearService(s.mockFiscalYearRepo)

	s.companyID = uuid.NewString()
	s.userID = uuid.NewString()
}

func (s *FiscalYearServiceTestSuite) TestCreateFiscalYear_Success() {
	ctx := context.Background()
	req := dto.CreateFiscalYearRequest{
		Label:     "Exercice 2026",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	s.mockFiscalYearRepo.On("ListOverlappingYears", ctx, s.companyID, req.StartDate, req.EndDate).
		Return([]domain.FiscalYear{}, nil).Once()
	s.mockFiscalYearRepo.On("SaveFiscalYear", ctx, mock.AnythingOfType("domain.FiscalYear")).Return(nil).Once()

	year, err := s.service.CreateFiscalYear(ctx, s.companyID, req, s.userID)

	s.Require().NoError(err)
	s.Equal("Exercice 2026", year.Label)
	s.False(year.IsClosed)
	s.Equal(s.userID, year.CreatedBy)
	s.mockFiscalYearRepo.AssertExpectations(s.T())
}

func (s *FiscalYearServiceTestSuite) TestCreateFiscalYear_InvertedRange() {
	ctx := context.Background()
	req := dto.CreateFiscalYearRequest{
		Label:     "Exercice 2026",
		StartDate: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	year, err := s.service.CreateFiscalYear(ctx, s.companyID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrYearRangeInvalid)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(year)
	s.mockFiscalYearRepo.AssertNotCalled(s.T(), "SaveFiscalYear", mock.Anything, mock.Anything)
}

func (s *FiscalYearServiceTestSuite) TestCreateFiscalYear_OverlapConflicts() {
	ctx := context.Background()
	req := dto.CreateFiscalYearRequest{
		Label:     "Exercice 2026 bis",
		StartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	existing := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    s.companyID,
		Label:        "Exercice 2026",
	}

	s.mockFiscalYearRepo.On("ListOverlappingYears", ctx, s.companyID, req.StartDate, req.EndDate).
		Return([]domain.FiscalYear{existing}, nil).Once()

	year, err := s.service.CreateFiscalYear(ctx, s.companyID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Contains(err.Error(), "Exercice 2026")
	s.Nil(year)
	s.mockFiscalYearRepo.AssertNotCalled(s.T(), "SaveFiscalYear", mock.Anything, mock.Anything)
}

func (s *FiscalYearServiceTestSuite) TestCreateFiscalYear_ConcurrentInsertConflicts() {
	ctx := context.Background()
	req := dto.CreateFiscalYearRequest{
		Label:     "Exercice 2026",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	s.mockFiscalYearRepo.On("ListOverlappingYears", ctx, s.companyID, req.StartDate, req.EndDate).
		Return([]domain.FiscalYear{}, nil).Once()
	s.mockFiscalYearRepo.On("SaveFiscalYear", ctx, mock.AnythingOfType("domain.FiscalYear")).
		Return(apperrors.ErrConflict).Once()

	year, err := s.service.CreateFiscalYear(ctx, s.companyID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Nil(year)
}

func (s *FiscalYearServiceTestSuite) TestResolveForDate_Found() {
	ctx := context.Background()
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	year := &domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    s.companyID,
		Label:        "Exercice 2026",
	}

	s.mockFiscalYearRepo.On("FindOpenYearForDate", ctx, s.companyID, date).Return(year, nil).Once()

	found, err := s.service.ResolveForDate(ctx, s.companyID, date)

	s.Require().NoError(err)
	s.Equal(year.FiscalYearID, found.FiscalYearID)
}

func (s *FiscalYearServiceTestSuite) TestResolveForDate_NoOpenYearSkipsPosting() {
	ctx := context.Background()
	date := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	s.mockFiscalYearRepo.On("FindOpenYearForDate", ctx, s.companyID, date).
		Return(nil, apperrors.ErrNotFound).Once()

	found, err := s.service.ResolveForDate(ctx, s.companyID, date)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrPostingSkipped)
	s.Contains(err.Error(), "2030-01-01")
	s.Nil(found)
}

func (s *FiscalYearServiceTestSuite) TestResolveForDate_RepoFailureIsNotSkip() {
	ctx := context.Background()
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	s.mockFiscalYearRepo.On("FindOpenYearForDate", ctx, s.companyID, date).
		Return(nil, errors.New("connection reset")).Once()

	found, err := s.service.ResolveForDate(ctx, s.companyID, date)

	s.Require().Error(err)
	s.False(errors.Is(err, apperrors.ErrPostingSkipped))
	s.Nil(found)
}

func (s *FiscalYearServiceTestSuite) TestCloseFiscalYear_Success() {
	ctx := context.Background()
	year := &domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    s.companyID,
		Label:        "Exercice 2025",
		IsClosed:     false,
	}

	s.mockFiscalYearRepo.On("FindFiscalYearByID", ctx, year.FiscalYearID).Return(year, nil).Once()
	s.mockFiscalYearRepo.On("CloseFiscalYear", ctx, year.FiscalYearID, s.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := s.service.CloseFiscalYear(ctx, s.companyID, year.FiscalYearID, s.userID)

	s.Require().NoError(err)
	s.mockFiscalYearRepo.AssertExpectations(s.T())
}

func (s *FiscalYearServiceTestSuite) TestCloseFiscalYear_AlreadyClosed() {
	ctx := context.Background()
	year := &domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    s.companyID,
		Label:        "Exercice 2024",
		IsClosed:     true,
	}

	s.mockFiscalYearRepo.On("FindFiscalYearByID", ctx, year.FiscalYearID).Return(year, nil).Once()

	err := s.service.CloseFiscalYear(ctx, s.companyID, year.FiscalYearID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockFiscalYearRepo.AssertNotCalled(s.T(), "CloseFiscalYear", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *FiscalYearServiceTestSuite) TestCloseFiscalYear_WrongCompany() {
	ctx := context.Background()
	year := &domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    uuid.NewString(),
	}

	s.mockFiscalYearRepo.On("FindFiscalYearByID", ctx, year.FiscalYearID).Return(year, nil).Once()

	err := s.service.CloseFiscalYear(ctx, s.companyID, year.FiscalYearID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestFiscalYearServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FiscalYearServiceTestSuite))
}
