package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vitalis-hms/clinic_ledger_app/internal/apperrors"
	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
	portssvc "github.com/vitalis-hms/clinic_ledger_app/internal/core/ports/services"
	"github.com/vitalis-hms/clinic_ledger_app/internal/dto"
	"github.com/vitalis-hms/clinic_ledger_app/internal/handlers"
	"github.com/vitalis-hms/clinic_ledger_app/internal/platform/config"
	"github.com/vitalis-hms/clinic_ledger_app/internal/utils"
)

// --- Mock TransactionService ---

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, clinicID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, clinicID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetTransactionByID(ctx context.Context, clinicID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, clinicID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, clinicID string, params dto.ListTransactionsParams) ([]*domain.Transaction, error) {
	args := m.Called(ctx, clinicID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetOverdueTransactions(ctx context.Context, clinicID string) ([]*domain.Transaction, error) {
	args := m.Called(ctx, clinicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) PayTransaction(ctx context.Context, clinicID string, transactionID string, req dto.PayTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, clinicID, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) CancelTransaction(ctx context.Context, clinicID string, transactionID string, req dto.CancelTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, clinicID, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, clinicID string, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, clinicID, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, clinicID string, transactionID string, userID string) error {
	args := m.Called(ctx, clinicID, transactionID, userID)
	return args.Error(0)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---

type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTransactionService
	jwtSecret   string
	clinicID    string
	staffID     string
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.clinicID = uuid.NewString()
	suite.staffID = uuid.NewString()
	suite.mockService = new(MockTransactionService)

	cfg := &config.Config{
		JWTSecret:     suite.jwtSecret,
		AuthRateLimit: "10-M",
		IsProduction:  true, // keeps swagger out of the test router
	}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Transaction: suite.mockService,
	})
}

func (suite *TransactionHandlerTestSuite) authHeader() string {
	token, _, err := utils.CreateJWT(suite.staffID, suite.clinicID, suite.jwtSecret, "test", time.Hour, time.Now().UTC())
	suite.Require().NoError(err)
	return "Bearer " + token
}

func (suite *TransactionHandlerTestSuite) doRequest(method, path string, body any) *httptest.ResponseRecorder {
	suite.T().Helper()
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", suite.authHeader())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) sampleTransaction() *domain.Transaction {
	suite.T().Helper()
	amount, err := domain.NewMoneyFromFloat(150, "BRL")
	suite.Require().NoError(err)
	txn, err := domain.NewTransaction(domain.NewTransactionParams{
		TransactionID: uuid.NewString(),
		ClinicID:      suite.clinicID,
		Type:          domain.Receita,
		Amount:        amount,
		Description:   "Consulta",
		DueDate:       time.Now().UTC().AddDate(0, 0, 7),
		CreatedBy:     suite.staffID,
		Now:           time.Now().UTC(),
	})
	suite.Require().NoError(err)
	return txn
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	txn := suite.sampleTransaction()

	suite.mockService.On("CreateTransaction", mock.Anything, suite.clinicID,
		mock.AnythingOfType("dto.CreateTransactionRequest"), suite.staffID).Return(txn, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions/", gin.H{
		"type":        "RECEITA",
		"amount":      150.0,
		"description": "Consulta",
		"dueDate":     time.Now().UTC().AddDate(0, 0, 7).Format(time.RFC3339),
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(txn.ID(), resp.TransactionID)
	suite.Equal("150.00", resp.Amount)
	suite.Equal(domain.TransactionPending, resp.Status)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_BadBody() {
	w := suite.doRequest(http.MethodPost, "/api/v1/transactions/", gin.H{
		"type": "TRANSFER", // not a valid type
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateTransaction")
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	missingID := uuid.NewString()

	suite.mockService.On("GetTransactionByID", mock.Anything, suite.clinicID, missingID).
		Return(nil, fmt.Errorf("transaction %s: %w", missingID, apperrors.ErrNotFound)).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions/"+missingID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestPayTransaction_Conflict() {
	txnID := uuid.NewString()

	suite.mockService.On("PayTransaction", mock.Anything, suite.clinicID, txnID,
		mock.AnythingOfType("dto.PayTransactionRequest"), suite.staffID).
		Return(nil, fmt.Errorf("cannot pay transaction in status PAGO: %w", apperrors.ErrIllegalTransition)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions/"+txnID+"/pay", gin.H{
		"paidDate":      time.Now().UTC().Format(time.RFC3339),
		"paymentMethod": "PIX",
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestMissingToken_Unauthorized() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListTransactions")
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_NoContent() {
	txnID := uuid.NewString()

	suite.mockService.On("DeleteTransaction", mock.Anything, suite.clinicID, txnID, suite.staffID).
		Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/transactions/"+txnID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
