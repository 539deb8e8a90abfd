package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vitalis-hms/clinic_ledger_app/internal/apperrors"
	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
	portsrepo "github.com/vitalis-hms/clinic_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/vitalis-hms/clinic_ledger_app/internal/core/ports/services"
	"github.com/vitalis-hms/clinic_ledger_app/internal/core/services"
	"github.com/vitalis-hms/clinic_ledger_app/internal/dto"
)

// MockCashRegisterRepository is a mock type for the CashRegisterRepositoryFacade interface
type MockCashRegisterRepository struct {
	mock.Mock
}

func (m *MockCashRegisterRepository) SaveCashRegister(ctx context.Context, register *domain.CashRegister) error {
	args := m.Called(ctx, register)
	return args.Error(0)
}

func (m *MockCashRegisterRepository) UpdateCashRegister(ctx context.Context, register *domain.CashRegister) error {
	args := m.Called(ctx, register)
	return args.Error(0)
}

func (m *MockCashRegisterRepository) DeleteCashRegister(ctx context.Context, registerID string) error {
	args := m.Called(ctx, registerID)
	return args.Error(0)
}

func (m *MockCashRegisterRepository) FindCashRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error) {
	args := m.Called(ctx, registerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashRegister), args.Error(1)
}

func (m *MockCashRegisterRepository) FindCashRegistersByClinic(ctx context.Context, clinicID string, filters portsrepo.CashRegisterFilters) ([]*domain.CashRegister, error) {
	args := m.Called(ctx, clinicID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CashRegister), args.Error(1)
}

func (m *MockCashRegisterRepository) FindOpenRegister(ctx context.Context, clinicID string) (*domain.CashRegister, error) {
	args := m.Called(ctx, clinicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashRegister), args.Error(1)
}

func (m *MockCashRegisterRepository) GetLastClosedRegister(ctx context.Context, clinicID string) (*domain.CashRegister, error) {
	args := m.Called(ctx, clinicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashRegister), args.Error(1)
}

// --- Test Suite Setup ---

type CashRegisterServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCashRegisterRepository
	service  portssvc.CashRegisterSvcFacade
	clinicID string
	userID   string
}

func (suite *CashRegisterServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCashRegisterRepository)
	suite.service = services.NewCashRegisterService(suite.mockRepo,
		services.WithRegisterDefaultCurrency("BRL"))
	suite.clinicID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *CashRegisterServiceTestSuite) openRegister() *domain.CashRegister {
	suite.T().Helper()
	initial, err := domain.NewMoneyFromFloat(200, "BRL")
	require.NoError(suite.T(), err)
	register, err := domain.NewCashRegister(uuid.NewString(), suite.clinicID, suite.userID, initial, "", time.Now().UTC())
	require.NoError(suite.T(), err)
	return register
}

func notFoundErr(what string) error {
	return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
}

func amountPtr(v float64) *float64 { return &v }

// --- Test Cases ---

func (suite *CashRegisterServiceTestSuite) TestOpenCashRegister_Success() {
	ctx := context.Background()
	req := dto.OpenCashRegisterRequest{InitialAmount: amountPtr(200)}

	suite.mockRepo.On("FindOpenRegister", ctx, suite.clinicID).Return(nil, notFoundErr("no open register")).Once()
	suite.mockRepo.On("SaveCashRegister", ctx, mock.AnythingOfType("*domain.CashRegister")).Return(nil).Once()

	register, err := suite.service.OpenCashRegister(ctx, suite.clinicID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(register)
	suite.Equal(domain.RegisterOpen, register.Status())
	suite.Equal(suite.clinicID, register.ClinicID())
	suite.Equal(suite.userID, register.OpenedBy())
	suite.Equal("200.00", register.InitialAmount().Amount().StringFixed(2))
	suite.Equal("BRL", register.InitialAmount().Currency())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CashRegisterServiceTestSuite) TestOpenCashRegister_AlreadyOpen() {
	ctx := context.Background()
	existing := suite.openRegister()

	suite.mockRepo.On("FindOpenRegister", ctx, suite.clinicID).Return(existing, nil).Once()

	_, err := suite.service.OpenCashRegister(ctx, suite.clinicID,
		dto.OpenCashRegisterRequest{InitialAmount: amountPtr(100)}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrRegisterAlreadyOpen)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCashRegister")
}

func (suite *CashRegisterServiceTestSuite) TestOpenCashRegister_RaceCaughtByStorage() {
	ctx := context.Background()

	// The pre-check sees nothing, but another request wins the insert and the
	// partial unique index rejects ours.
	suite.mockRepo.On("FindOpenRegister", ctx, suite.clinicID).Return(nil, notFoundErr("no open register")).Once()
	suite.mockRepo.On("SaveCashRegister", ctx, mock.AnythingOfType("*domain.CashRegister")).
		Return(fmt.Errorf("clinic %s: %w", suite.clinicID, apperrors.ErrRegisterAlreadyOpen)).Once()

	_, err := suite.service.OpenCashRegister(ctx, suite.clinicID,
		dto.OpenCashRegisterRequest{InitialAmount: amountPtr(100)}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrRegisterAlreadyOpen)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CashRegisterServiceTestSuite) TestCloseCashRegister_Success() {
	ctx := context.Background()
	register := suite.openRegister()
	closer := uuid.NewString()
	req := dto.CloseCashRegisterRequest{
		FinalAmount:    amountPtr(980),
		ExpectedAmount: amountPtr(1000),
		Notes:          "fechamento",
	}

	suite.mockRepo.On("FindCashRegisterByID", ctx, register.ID()).Return(register, nil).Once()
	suite.mockRepo.On("UpdateCashRegister", ctx, register).Return(nil).Once()

	closed, err := suite.service.CloseCashRegister(ctx, suite.clinicID, register.ID(), req, closer)

	suite.Require().NoError(err)
	suite.Equal(domain.RegisterClosed, closed.Status())
	suite.Equal(closer, closed.ClosedBy())
	suite.Require().NotNil(closed.Difference())
	suite.Equal("-20.00", closed.Difference().StringFixed(2))
	suite.True(closed.HasDifference())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CashRegisterServiceTestSuite) TestCloseCashRegister_AlreadyClosed() {
	ctx := context.Background()
	register := suite.openRegister()
	now := time.Now().UTC()
	final, _ := domain.NewMoneyFromFloat(100, "BRL")
	suite.Require().NoError(register.Close(suite.userID, final, final, "", now))

	suite.mockRepo.On("FindCashRegisterByID", ctx, register.ID()).Return(register, nil).Once()

	_, err := suite.service.CloseCashRegister(ctx, suite.clinicID, register.ID(),
		dto.CloseCashRegisterRequest{FinalAmount: amountPtr(100), ExpectedAmount: amountPtr(100)}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrAlreadyClosed)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCashRegister")
}

func (suite *CashRegisterServiceTestSuite) TestCloseCashRegister_WrongClinic() {
	ctx := context.Background()
	register := suite.openRegister()

	suite.mockRepo.On("FindCashRegisterByID", ctx, register.ID()).Return(register, nil).Once()

	_, err := suite.service.CloseCashRegister(ctx, uuid.NewString(), register.ID(),
		dto.CloseCashRegisterRequest{FinalAmount: amountPtr(100), ExpectedAmount: amountPtr(100)}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCashRegister")
}

func (suite *CashRegisterServiceTestSuite) TestGetOpenRegister_None() {
	ctx := context.Background()

	suite.mockRepo.On("FindOpenRegister", ctx, suite.clinicID).Return(nil, notFoundErr("no open register")).Once()

	_, err := suite.service.GetOpenRegister(ctx, suite.clinicID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CashRegisterServiceTestSuite) TestGetLastClosedRegister_Success() {
	ctx := context.Background()
	register := suite.openRegister()
	now := time.Now().UTC()
	final, _ := domain.NewMoneyFromFloat(150, "BRL")
	suite.Require().NoError(register.Close(suite.userID, final, final, "", now))

	suite.mockRepo.On("GetLastClosedRegister", ctx, suite.clinicID).Return(register, nil).Once()

	got, err := suite.service.GetLastClosedRegister(ctx, suite.clinicID)

	suite.Require().NoError(err)
	suite.Equal(register.ID(), got.ID())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CashRegisterServiceTestSuite) TestListCashRegisters_Success() {
	ctx := context.Background()
	registers := []*domain.CashRegister{suite.openRegister()}

	suite.mockRepo.On("FindCashRegistersByClinic", ctx, suite.clinicID,
		mock.AnythingOfType("repositories.CashRegisterFilters")).Return(registers, nil).Once()

	listed, err := suite.service.ListCashRegisters(ctx, suite.clinicID, dto.ListCashRegistersParams{})

	suite.Require().NoError(err)
	suite.Len(listed, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestCashRegisterServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CashRegisterServiceTestSuite))
}
