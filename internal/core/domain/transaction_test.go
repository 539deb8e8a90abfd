package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalis-hms/clinic_ledger_app/internal/apperrors"
	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
)

func validTransactionParams(t *testing.T, now time.Time) domain.NewTransactionParams {
	t.Helper()
	return domain.NewTransactionParams{
		TransactionID: uuid.NewString(),
		ClinicID:      uuid.NewString(),
		Type:          domain.Receita,
		Amount:        mustMoney(t, 150, "BRL"),
		Description:   "Consulta dermatológica",
		DueDate:       now.AddDate(0, 0, 7),
		CreatedBy:     uuid.NewString(),
		Now:           now,
	}
}

func newPendingTransaction(t *testing.T, now time.Time) *domain.Transaction {
	t.Helper()
	txn, err := domain.NewTransaction(validTransactionParams(t, now))
	require.NoError(t, err)
	return txn
}

func TestNewTransaction(t *testing.T) {
	now := time.Now().UTC()
	p := validTransactionParams(t, now)

	txn, err := domain.NewTransaction(p)
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionPending, txn.Status())
	assert.Equal(t, p.ClinicID, txn.ClinicID())
	assert.Equal(t, p.CreatedBy, txn.CreatedBy())
	assert.Nil(t, txn.PaidDate())
	assert.Equal(t, now, txn.CreatedAt())
	assert.Equal(t, now, txn.UpdatedAt())
}

func TestNewTransaction_Validation(t *testing.T) {
	now := time.Now().UTC()
	tests := []struct {
		name   string
		mutate func(*domain.NewTransactionParams)
	}{
		{"missing ID", func(p *domain.NewTransactionParams) { p.TransactionID = "" }},
		{"missing clinic", func(p *domain.NewTransactionParams) { p.ClinicID = "" }},
		{"missing creator", func(p *domain.NewTransactionParams) { p.CreatedBy = "" }},
		{"bad type", func(p *domain.NewTransactionParams) { p.Type = "TRANSFER" }},
		{"blank description", func(p *domain.NewTransactionParams) { p.Description = "   " }},
		{"zero amount", func(p *domain.NewTransactionParams) { p.Amount = domain.ZeroMoney("BRL") }},
		{"missing due date", func(p *domain.NewTransactionParams) { p.DueDate = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validTransactionParams(t, now)
			tt.mutate(&p)
			_, err := domain.NewTransaction(p)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestTransaction_MarkAsPaid(t *testing.T) {
	now := time.Now().UTC()
	txn := newPendingTransaction(t, now)
	paidDate := now.AddDate(0, 0, -1)

	err := txn.MarkAsPaid(paidDate, domain.PaymentPix, now)
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionPaid, txn.Status())
	require.NotNil(t, txn.PaidDate())
	assert.True(t, txn.PaidDate().Equal(paidDate))
	assert.Equal(t, domain.PaymentPix, txn.PaymentMethod())
}

func TestTransaction_MarkAsPaid_FutureDate(t *testing.T) {
	now := time.Now().UTC()
	txn := newPendingTransaction(t, now)

	err := txn.MarkAsPaid(now.AddDate(0, 0, 1), domain.PaymentCash, now)
	assert.ErrorIs(t, err, apperrors.ErrFuturePaymentDate)
	assert.Equal(t, domain.TransactionPending, txn.Status())
}

func TestTransaction_MarkAsPaid_IllegalFromTerminalStatus(t *testing.T) {
	now := time.Now().UTC()

	paid := newPendingTransaction(t, now)
	require.NoError(t, paid.MarkAsPaid(now, domain.PaymentCash, now))
	err := paid.MarkAsPaid(now, domain.PaymentCash, now)
	assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)

	cancelled := newPendingTransaction(t, now)
	require.NoError(t, cancelled.Cancel("", now))
	err = cancelled.MarkAsPaid(now, domain.PaymentCash, now)
	assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)
}

func TestTransaction_MarkAsPaid_FromOverdue(t *testing.T) {
	now := time.Now().UTC()
	// Hydrate an ATRASADO row the way the sweep leaves it
	s := newPendingTransaction(t, now).Snapshot()
	s.Status = domain.TransactionOverdue
	txn := domain.HydrateTransaction(s)

	err := txn.MarkAsPaid(now, domain.PaymentBoleto, now)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionPaid, txn.Status())
}

func TestTransaction_Cancel(t *testing.T) {
	now := time.Now().UTC()
	txn := newPendingTransaction(t, now)

	err := txn.Cancel("paciente desistiu", now)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionCancelled, txn.Status())
	assert.Contains(t, txn.Notes(), "Cancelado: paciente desistiu")
}

func TestTransaction_Cancel_Illegal(t *testing.T) {
	now := time.Now().UTC()

	paid := newPendingTransaction(t, now)
	require.NoError(t, paid.MarkAsPaid(now, domain.PaymentCash, now))
	assert.ErrorIs(t, paid.Cancel("", now), apperrors.ErrIllegalTransition)

	cancelled := newPendingTransaction(t, now)
	require.NoError(t, cancelled.Cancel("", now))
	assert.ErrorIs(t, cancelled.Cancel("", now), apperrors.ErrIllegalTransition)
}

func TestTransaction_EditsRejectedOncePaid(t *testing.T) {
	now := time.Now().UTC()
	txn := newPendingTransaction(t, now)
	require.NoError(t, txn.MarkAsPaid(now, domain.PaymentCash, now))

	assert.ErrorIs(t, txn.UpdateDescription("nova descrição", now), apperrors.ErrIllegalTransition)
	assert.ErrorIs(t, txn.UpdateDueDate(now.AddDate(0, 1, 0), now), apperrors.ErrIllegalTransition)
	assert.ErrorIs(t, txn.UpdateAmount(mustMoney(t, 200, "BRL"), now), apperrors.ErrIllegalTransition)
}

func TestTransaction_AuditEditsAlwaysAllowed(t *testing.T) {
	now := time.Now().UTC()
	txn := newPendingTransaction(t, now)
	require.NoError(t, txn.MarkAsPaid(now, domain.PaymentCash, now))

	txn.UpdateCategory("cat-77", now)
	txn.AddAttachment("recibo-123.pdf", now)
	txn.AddNotes("recibo anexado", now)

	assert.Equal(t, "cat-77", txn.CategoryID())
	assert.Equal(t, "recibo-123.pdf", txn.AttachmentRef())
	assert.Contains(t, txn.Notes(), "recibo anexado")
}

func TestTransaction_UpdatesWhilePending(t *testing.T) {
	now := time.Now().UTC()
	txn := newPendingTransaction(t, now)
	newDue := now.AddDate(0, 1, 0)

	require.NoError(t, txn.UpdateDescription("Retorno", now))
	require.NoError(t, txn.UpdateDueDate(newDue, now))
	require.NoError(t, txn.UpdateAmount(mustMoney(t, 99.90, "BRL"), now))

	assert.Equal(t, "Retorno", txn.Description())
	assert.True(t, txn.DueDate().Equal(newDue))
	assert.Equal(t, "99.90", txn.Amount().Amount().StringFixed(2))

	assert.ErrorIs(t, txn.UpdateDescription("  ", now), apperrors.ErrValidation)
	assert.ErrorIs(t, txn.UpdateAmount(domain.ZeroMoney("BRL"), now), apperrors.ErrValidation)
}

func TestTransaction_IsOverdue(t *testing.T) {
	now := time.Now().UTC()
	p := validTransactionParams(t, now)
	p.DueDate = now.AddDate(0, 0, -3)
	txn, err := domain.NewTransaction(p)
	require.NoError(t, err)

	assert.True(t, txn.IsOverdue(now))

	// Settling clears overdue-ness
	require.NoError(t, txn.MarkAsPaid(now, domain.PaymentCash, now))
	assert.False(t, txn.IsOverdue(now))
}

func TestTransaction_SnapshotRoundTrip(t *testing.T) {
	now := time.Now().UTC()
	txn := newPendingTransaction(t, now)
	require.NoError(t, txn.MarkAsPaid(now.AddDate(0, 0, -1), domain.PaymentPix, now))

	restored := domain.HydrateTransaction(txn.Snapshot())

	assert.Equal(t, txn.ID(), restored.ID())
	assert.Equal(t, txn.Status(), restored.Status())
	assert.Equal(t, txn.PaymentMethod(), restored.PaymentMethod())
	require.NotNil(t, restored.PaidDate())
	assert.True(t, restored.PaidDate().Equal(*txn.PaidDate()))
}
