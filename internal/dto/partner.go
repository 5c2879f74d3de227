package dto

import (
	"time"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartnerRequest defines the data needed to create a customer/supplier.
type CreatePartnerRequest struct {
	Name  string             `json:"name" binding:"required"`
	Kind  domain.PartnerKind `json:"kind" binding:"required,oneof=CUSTOMER SUPPLIER BOTH"`
	Phone string             `json:"phone"`
	Email string             `json:"email" binding:"omitempty,email"`
}

// UpdatePartnerRequest defines the data allowed for updating a partner.
type UpdatePartnerRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" binding:"omitempty,email"`
	IsActive *bool   `json:"isActive"`
}

// PartnerResponse defines the data returned for a partner.
type PartnerResponse struct {
	PartnerID string             `json:"partnerID"`
	Name      string             `json:"name"`
	Kind      domain.PartnerKind `json:"kind"`
	Phone     string             `json:"phone"`
	Email     string             `json:"email"`
	IsActive  bool               `json:"isActive"`
	Balance   decimal.Decimal    `json:"balance"`
	CreatedAt time.Time          `json:"createdAt"`
	CreatedBy string             `json:"createdBy"`
}

// ToPartnerResponse converts a domain.Partner to PartnerResponse DTO
func ToPartnerResponse(p *domain.Partner) PartnerResponse {
	return PartnerResponse{
		PartnerID: p.PartnerID,
		Name:      p.Name,
		Kind:      p.Kind,
		Phone:     p.Phone,
		Email:     p.Email,
		IsActive:  p.IsActive,
		Balance:   p.Balance,
		CreatedAt: p.CreatedAt,
		CreatedBy: p.CreatedBy,
	}
}

// ToListPartnerResponse converts a slice of domain.Partner to response DTOs
func ToListPartnerResponse(partners []domain.Partner) []PartnerResponse {
	res := make([]PartnerResponse, len(partners))
	for i, p := range partners {
		res[i] = ToPartnerResponse(&p)
	}
	return res
}

// ListPartnersParams defines query parameters for listing partners.
type ListPartnersParams struct {
	Kind   *domain.PartnerKind `form:"kind" binding:"omitempty,oneof=CUSTOMER SUPPLIER BOTH"`
	Limit  int                 `form:"limit,default=50"`
	Offset int                 `form:"offset,default=0"`
}

// ListPartnersResponse wraps the list of partners.
type ListPartnersResponse struct {
	Partners []PartnerResponse `json:"partners"`
}

// CreatePartnerTransactionRequest defines a manual partner ledger adjustment.
type CreatePartnerTransactionRequest struct {
	Date            *time.Time                    `json:"date"` // Defaults to today
	TransactionType domain.PartnerTransactionType `json:"transactionType" binding:"required,oneof=sales_invoice purchase_invoice sales_return purchase_return payment adjustment"`
	Direction       domain.Direction              `json:"direction" binding:"required,oneof=debit credit"`
	Amount          decimal.Decimal               `json:"amount" binding:"required"`
	ReferenceType   domain.ReferenceType          `json:"referenceType"`
	ReferenceID     string                        `json:"referenceID"`
	Description     string                        `json:"description"`
}

// PartnerTransactionResponse defines the data returned for a ledger row.
type PartnerTransactionResponse struct {
	TransactionID     string                        `json:"transactionID"`
	TransactionNumber string                        `json:"transactionNumber"`
	Date              time.Time                     `json:"date"`
	PartnerID         string                        `json:"partnerID"`
	TransactionType   domain.PartnerTransactionType `json:"transactionType"`
	Direction         domain.Direction              `json:"direction"`
	Amount            decimal.Decimal               `json:"amount"`
	ReferenceType     string                        `json:"referenceType,omitempty"`
	ReferenceID       string                        `json:"referenceID,omitempty"`
	Description       string                        `json:"description"`
	BalanceAfter      decimal.Decimal               `json:"balanceAfter"`
	CreatedAt         time.Time                     `json:"createdAt"`
}

// ToPartnerTransactionResponse converts a domain transaction to its DTO
func ToPartnerTransactionResponse(t *domain.PartnerTransaction) PartnerTransactionResponse {
	return PartnerTransactionResponse{
		TransactionID:     t.TransactionID,
		TransactionNumber: t.TransactionNumber,
		Date:              t.Date,
		PartnerID:         t.PartnerID,
		TransactionType:   t.TransactionType,
		Direction:         t.Direction,
		Amount:            t.Amount,
		ReferenceType:     string(t.ReferenceType),
		ReferenceID:       t.ReferenceID,
		Description:       t.Description,
		BalanceAfter:      t.BalanceAfter,
		CreatedAt:         t.CreatedAt,
	}
}

// ToPartnerTransactionResponses converts a slice of ledger rows to DTOs
func ToPartnerTransactionResponses(txns []domain.PartnerTransaction) []PartnerTransactionResponse {
	responses := make([]PartnerTransactionResponse, len(txns))
	for i, t := range txns {
		responses[i] = ToPartnerTransactionResponse(&t)
	}
	return responses
}

// ListPartnerTransactionsParams defines query parameters for a partner's ledger.
type ListPartnerTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListPartnerTransactionsResponse wraps a page of ledger rows.
type ListPartnerTransactionsResponse struct {
	Transactions []PartnerTransactionResponse `json:"transactions"`
	NextToken    *string                      `json:"nextToken,omitempty"`
}
