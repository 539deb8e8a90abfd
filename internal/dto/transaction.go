package dto

import (
	"time"

	"github.com/vitalis-hms/clinic_ledger_app/internal/core/domain"
)

// CreateTransactionRequest defines the data needed to create a transaction.
type CreateTransactionRequest struct {
	Type              domain.TransactionType `json:"type" binding:"required,oneof=RECEITA DESPESA"`
	Amount            float64                `json:"amount" binding:"required"`
	Currency          string                 `json:"currency"` // Optional, defaults to the configured clinic currency
	Description       string                 `json:"description" binding:"required"`
	CategoryID        *string                `json:"categoryID"`
	DueDate           time.Time              `json:"dueDate" binding:"required"`
	RelatedEntityType *string                `json:"relatedEntityType"`
	RelatedEntityID   *string                `json:"relatedEntityID"`
	Notes             string                 `json:"notes"`
}

// PayTransactionRequest defines the data needed to settle a transaction.
type PayTransactionRequest struct {
	PaidDate      time.Time            `json:"paidDate" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=DINHEIRO CARTAO_CREDITO CARTAO_DEBITO PIX TRANSFERENCIA BOLETO"`
}

// CancelTransactionRequest defines the optional cancellation reason.
type CancelTransactionRequest struct {
	Reason string `json:"reason"`
}

// UpdateTransactionRequest defines the editable fields of a transaction.
// Pointers distinguish "not provided" from zero values.
type UpdateTransactionRequest struct {
	Description   *string    `json:"description"`
	DueDate       *time.Time `json:"dueDate"`
	Amount        *float64   `json:"amount"`
	CategoryID    *string    `json:"categoryID"`
	AttachmentRef *string    `json:"attachmentRef"`
	Notes         *string    `json:"notes"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Type              *domain.TransactionType   `form:"type" binding:"omitempty,oneof=RECEITA DESPESA"`
	Status            *domain.TransactionStatus `form:"status" binding:"omitempty,oneof=PENDENTE PAGO ATRASADO CANCELADO"`
	CategoryID        *string                   `form:"categoryID"`
	RelatedEntityType *string                   `form:"relatedEntityType"`
	RelatedEntityID   *string                   `form:"relatedEntityID"`
	From              *time.Time                `form:"from" time_format:"2006-01-02"`
	To                *time.Time                `form:"to" time_format:"2006-01-02"`
	Limit             int                       `form:"limit,default=20"`
	Offset            int                       `form:"offset,default=0"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID     string                   `json:"transactionID"`
	ClinicID          string                   `json:"clinicID"`
	Type              domain.TransactionType   `json:"type"`
	Amount            string                   `json:"amount"`
	Currency          string                   `json:"currency"`
	Description       string                   `json:"description"`
	CategoryID        string                   `json:"categoryID,omitempty"`
	DueDate           time.Time                `json:"dueDate"`
	PaidDate          *time.Time               `json:"paidDate,omitempty"`
	Status            domain.TransactionStatus `json:"status"`
	PaymentMethod     domain.PaymentMethod     `json:"paymentMethod,omitempty"`
	Notes             string                   `json:"notes,omitempty"`
	AttachmentRef     string                   `json:"attachmentRef,omitempty"`
	RelatedEntityType string                   `json:"relatedEntityType,omitempty"`
	RelatedEntityID   string                   `json:"relatedEntityID,omitempty"`
	IsOverdue         bool                     `json:"isOverdue"`
	CreatedBy         string                   `json:"createdBy"`
	CreatedAt         time.Time                `json:"createdAt"`
	UpdatedAt         time.Time                `json:"updatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	s := txn.Snapshot()
	return TransactionResponse{
		TransactionID:     s.TransactionID,
		ClinicID:          s.ClinicID,
		Type:              s.Type,
		Amount:            s.Amount.Amount().StringFixed(2),
		Currency:          s.Amount.Currency(),
		Description:       s.Description,
		CategoryID:        s.CategoryID,
		DueDate:           s.DueDate,
		PaidDate:          s.PaidDate,
		Status:            s.Status,
		PaymentMethod:     s.PaymentMethod,
		Notes:             s.Notes,
		AttachmentRef:     s.AttachmentRef,
		RelatedEntityType: s.RelatedEntityType,
		RelatedEntityID:   s.RelatedEntityID,
		IsOverdue:         txn.IsOverdue(time.Now().UTC()),
		CreatedBy:         s.CreatedBy,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// ToListTransactionResponse converts a slice of transactions to response DTOs.
func ToListTransactionResponse(txns []*domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(txn)
	}
	return res
}
