package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/vitalis-hms/clinic_ledger_app/internal/apperrors"
)

// TransactionType indicates whether a line item is a receivable or a payable.
type TransactionType string

const (
	Receita TransactionType = "RECEITA" // receivable / income
	Despesa TransactionType = "DESPESA" // payable / expense
)

// IsValid reports whether the type is one of the known values.
func (t TransactionType) IsValid() bool {
	return t == Receita || t == Despesa
}

// TransactionStatus indicates the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDENTE"
	TransactionPaid      TransactionStatus = "PAGO"
	TransactionOverdue   TransactionStatus = "ATRASADO" // written by an external sweep, never assigned here
	TransactionCancelled TransactionStatus = "CANCELADO"
)

// PaymentMethod indicates how a transaction was settled.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "DINHEIRO"
	PaymentCreditCard   PaymentMethod = "CARTAO_CREDITO"
	PaymentDebitCard    PaymentMethod = "CARTAO_DEBITO"
	PaymentPix          PaymentMethod = "PIX"
	PaymentBankTransfer PaymentMethod = "TRANSFERENCIA"
	PaymentBoleto       PaymentMethod = "BOLETO"
)

// Transaction is a single receivable or payable line item scoped to a clinic.
// State is encapsulated: all mutation goes through transition methods that
// enforce the lifecycle guards, so a Transaction can never hold an illegal
// combination of status and financial facts.
type Transaction struct {
	transactionID     string
	clinicID          string
	txnType           TransactionType
	amount            Money
	description       string
	categoryID        string
	dueDate           time.Time
	paidDate          *time.Time
	status            TransactionStatus
	paymentMethod     PaymentMethod
	notes             string
	attachmentRef     string
	relatedEntityType string
	relatedEntityID   string
	createdBy         string
	createdAt         time.Time
	updatedAt         time.Time
}

// NewTransactionParams carries the validated input for creating a transaction.
type NewTransactionParams struct {
	TransactionID     string
	ClinicID          string
	Type              TransactionType
	Amount            Money
	Description       string
	CategoryID        string
	DueDate           time.Time
	RelatedEntityType string
	RelatedEntityID   string
	Notes             string
	CreatedBy         string
	Now               time.Time
}

// NewTransaction creates a transaction in PENDENTE status, validating every
// creation invariant before anything can be persisted.
func NewTransaction(p NewTransactionParams) (*Transaction, error) {
	if p.TransactionID == "" {
		return nil, fmt.Errorf("transaction ID is required: %w", apperrors.ErrValidation)
	}
	if p.ClinicID == "" {
		return nil, fmt.Errorf("clinic ID is required: %w", apperrors.ErrValidation)
	}
	if p.CreatedBy == "" {
		return nil, fmt.Errorf("created-by staff ID is required: %w", apperrors.ErrValidation)
	}
	if !p.Type.IsValid() {
		return nil, fmt.Errorf("transaction type %q is not valid: %w", p.Type, apperrors.ErrValidation)
	}
	if strings.TrimSpace(p.Description) == "" {
		return nil, fmt.Errorf("description must not be empty: %w", apperrors.ErrValidation)
	}
	if p.Amount.IsZero() {
		return nil, fmt.Errorf("amount must not be zero: %w", apperrors.ErrValidation)
	}
	if p.DueDate.IsZero() {
		return nil, fmt.Errorf("due date is required: %w", apperrors.ErrValidation)
	}
	return &Transaction{
		transactionID:     p.TransactionID,
		clinicID:          p.ClinicID,
		txnType:           p.Type,
		amount:            p.Amount,
		description:       strings.TrimSpace(p.Description),
		categoryID:        p.CategoryID,
		dueDate:           p.DueDate,
		status:            TransactionPending,
		notes:             p.Notes,
		relatedEntityType: p.RelatedEntityType,
		relatedEntityID:   p.RelatedEntityID,
		createdBy:         p.CreatedBy,
		createdAt:         p.Now,
		updatedAt:         p.Now,
	}, nil
}

// Accessors.

func (t *Transaction) ID() string                   { return t.transactionID }
func (t *Transaction) ClinicID() string             { return t.clinicID }
func (t *Transaction) Type() TransactionType        { return t.txnType }
func (t *Transaction) Amount() Money                { return t.amount }
func (t *Transaction) Description() string          { return t.description }
func (t *Transaction) CategoryID() string           { return t.categoryID }
func (t *Transaction) DueDate() time.Time           { return t.dueDate }
func (t *Transaction) Status() TransactionStatus    { return t.status }
func (t *Transaction) PaymentMethod() PaymentMethod { return t.paymentMethod }
func (t *Transaction) Notes() string                { return t.notes }
func (t *Transaction) AttachmentRef() string        { return t.attachmentRef }
func (t *Transaction) RelatedEntityType() string    { return t.relatedEntityType }
func (t *Transaction) RelatedEntityID() string      { return t.relatedEntityID }
func (t *Transaction) CreatedBy() string            { return t.createdBy }
func (t *Transaction) CreatedAt() time.Time         { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time         { return t.updatedAt }

// PaidDate returns a copy of the paid date, or nil while unpaid.
func (t *Transaction) PaidDate() *time.Time {
	if t.paidDate == nil {
		return nil
	}
	d := *t.paidDate
	return &d
}

// IsOverdue reports whether the transaction is pending past its due date.
// Overdue-ness is derived at read time; ATRASADO as a stored status only
// appears when an external sweep writes it.
func (t *Transaction) IsOverdue(now time.Time) bool {
	return t.status == TransactionPending && t.dueDate.Before(now)
}

// MarkAsPaid settles the transaction. Legal only from PENDENTE or ATRASADO;
// the paid date must not be in the future.
func (t *Transaction) MarkAsPaid(paidDate time.Time, method PaymentMethod, now time.Time) error {
	if t.status != TransactionPending && t.status != TransactionOverdue {
		return fmt.Errorf("cannot pay transaction in status %s: %w", t.status, apperrors.ErrIllegalTransition)
	}
	if paidDate.After(now) {
		return fmt.Errorf("paid date %s is in the future: %w", paidDate.Format(time.RFC3339), apperrors.ErrFuturePaymentDate)
	}
	t.status = TransactionPaid
	t.paidDate = &paidDate
	t.paymentMethod = method
	t.updatedAt = now
	return nil
}

// Cancel voids the transaction. Legal from any non-terminal status; the
// optional reason is appended to the notes for the audit trail.
func (t *Transaction) Cancel(reason string, now time.Time) error {
	if t.status == TransactionPaid || t.status == TransactionCancelled {
		return fmt.Errorf("cannot cancel transaction in status %s: %w", t.status, apperrors.ErrIllegalTransition)
	}
	if reason != "" {
		t.appendNotes("Cancelado: " + reason)
	}
	t.status = TransactionCancelled
	t.updatedAt = now
	return nil
}

// UpdateDescription changes the description. Rejected once paid.
func (t *Transaction) UpdateDescription(description string, now time.Time) error {
	if t.status == TransactionPaid {
		return fmt.Errorf("cannot edit description of a paid transaction: %w", apperrors.ErrIllegalTransition)
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("description must not be empty: %w", apperrors.ErrValidation)
	}
	t.description = strings.TrimSpace(description)
	t.updatedAt = now
	return nil
}

// UpdateDueDate changes the due date. Rejected once paid.
func (t *Transaction) UpdateDueDate(dueDate time.Time, now time.Time) error {
	if t.status == TransactionPaid {
		return fmt.Errorf("cannot edit due date of a paid transaction: %w", apperrors.ErrIllegalTransition)
	}
	if dueDate.IsZero() {
		return fmt.Errorf("due date is required: %w", apperrors.ErrValidation)
	}
	t.dueDate = dueDate
	t.updatedAt = now
	return nil
}

// UpdateAmount changes the amount. Rejected once paid.
func (t *Transaction) UpdateAmount(amount Money, now time.Time) error {
	if t.status == TransactionPaid {
		return fmt.Errorf("cannot edit amount of a paid transaction: %w", apperrors.ErrIllegalTransition)
	}
	if amount.IsZero() {
		return fmt.Errorf("amount must not be zero: %w", apperrors.ErrValidation)
	}
	t.amount = amount
	t.updatedAt = now
	return nil
}

// UpdateCategory changes the category. Allowed in any status: categorisation
// is an audit-trail concern, not a financial fact.
func (t *Transaction) UpdateCategory(categoryID string, now time.Time) {
	t.categoryID = categoryID
	t.updatedAt = now
}

// AddAttachment records a receipt or document reference. Allowed in any status.
func (t *Transaction) AddAttachment(ref string, now time.Time) {
	t.attachmentRef = ref
	t.updatedAt = now
}

// AddNotes appends free-form notes. Allowed in any status.
func (t *Transaction) AddNotes(notes string, now time.Time) {
	if notes == "" {
		return
	}
	t.appendNotes(notes)
	t.updatedAt = now
}

func (t *Transaction) appendNotes(notes string) {
	if t.notes == "" {
		t.notes = notes
		return
	}
	t.notes = t.notes + "\n" + notes
}

// TransactionSnapshot is the exported flat view of a Transaction, used by
// persistence adapters and DTO mappers. It carries no guard logic.
type TransactionSnapshot struct {
	TransactionID     string
	ClinicID          string
	Type              TransactionType
	Amount            Money
	Description       string
	CategoryID        string
	DueDate           time.Time
	PaidDate          *time.Time
	Status            TransactionStatus
	PaymentMethod     PaymentMethod
	Notes             string
	AttachmentRef     string
	RelatedEntityType string
	RelatedEntityID   string
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Snapshot returns the flat view of the transaction.
func (t *Transaction) Snapshot() TransactionSnapshot {
	return TransactionSnapshot{
		TransactionID:     t.transactionID,
		ClinicID:          t.clinicID,
		Type:              t.txnType,
		Amount:            t.amount,
		Description:       t.description,
		CategoryID:        t.categoryID,
		DueDate:           t.dueDate,
		PaidDate:          t.PaidDate(),
		Status:            t.status,
		PaymentMethod:     t.paymentMethod,
		Notes:             t.notes,
		AttachmentRef:     t.attachmentRef,
		RelatedEntityType: t.relatedEntityType,
		RelatedEntityID:   t.relatedEntityID,
		CreatedBy:         t.createdBy,
		CreatedAt:         t.createdAt,
		UpdatedAt:         t.updatedAt,
	}
}

// HydrateTransaction restores a transaction from persisted state without
// re-running creation validation. For repository use only.
func HydrateTransaction(s TransactionSnapshot) *Transaction {
	return &Transaction{
		transactionID:     s.TransactionID,
		clinicID:          s.ClinicID,
		txnType:           s.Type,
		amount:            s.Amount,
		description:       s.Description,
		categoryID:        s.CategoryID,
		dueDate:           s.DueDate,
		paidDate:          s.PaidDate,
		status:            s.Status,
		paymentMethod:     s.PaymentMethod,
		notes:             s.Notes,
		attachmentRef:     s.AttachmentRef,
		relatedEntityType: s.RelatedEntityType,
		relatedEntityID:   s.RelatedEntityID,
		createdBy:         s.CreatedBy,
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
	}
}
