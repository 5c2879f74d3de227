package dto

import (
	"time"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentItemRequest is one stock line on an invoice or return.
type DocumentItemRequest struct {
	ProductID string          `json:"productID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

func toDomainItems(items []DocumentItemRequest) []domain.DocumentItem {
	out := make([]domain.DocumentItem, len(items))
	for i, it := range items {
		out[i] = domain.DocumentItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return out
}

// InvoiceRequest carries the shared shape of invoices and returns. The
// document identifier is the caller's reference_id; posting the same
// identifier twice is rejected.
type InvoiceRequest struct {
	DocumentID  string               `json:"documentID" binding:"required"`
	Date        time.Time            `json:"date" binding:"required"`
	PartnerID   string               `json:"partnerID"`
	PartnerName string               `json:"partnerName"`
	Subtotal    decimal.Decimal      `json:"subtotal" binding:"required"`
	TaxAmount   decimal.Decimal      `json:"taxAmount"`
	TotalAmount decimal.Decimal      `json:"totalAmount" binding:"required"`
	IsCash      bool                 `json:"isCash"`
	Items       []DocumentItemRequest `json:"items" binding:"omitempty,dive"`
}

// ToSalesInvoice converts the request to its domain payload.
func (r InvoiceRequest) ToSalesInvoice() domain.SalesInvoice {
	return domain.SalesInvoice{
		InvoiceID:   r.DocumentID,
		Date:        r.Date,
		PartnerID:   r.PartnerID,
		PartnerName: r.PartnerName,
		Subtotal:    r.Subtotal,
		TaxAmount:   r.TaxAmount,
		TotalAmount: r.TotalAmount,
		IsCash:      r.IsCash,
		Items:       toDomainItems(r.Items),
	}
}

// ToPurchaseInvoice converts the request to its domain payload.
func (r InvoiceRequest) ToPurchaseInvoice() domain.PurchaseInvoice {
	return domain.PurchaseInvoice{
		InvoiceID:   r.DocumentID,
		Date:        r.Date,
		PartnerID:   r.PartnerID,
		PartnerName: r.PartnerName,
		Subtotal:    r.Subtotal,
		TaxAmount:   r.TaxAmount,
		TotalAmount: r.TotalAmount,
		IsCash:      r.IsCash,
		Items:       toDomainItems(r.Items),
	}
}

// ToSalesReturn converts the request to its domain payload.
func (r InvoiceRequest) ToSalesReturn() domain.SalesReturn {
	return domain.SalesReturn{
		ReturnID:    r.DocumentID,
		Date:        r.Date,
		PartnerID:   r.PartnerID,
		PartnerName: r.PartnerName,
		Subtotal:    r.Subtotal,
		TaxAmount:   r.TaxAmount,
		TotalAmount: r.TotalAmount,
		IsCash:      r.IsCash,
		Items:       toDomainItems(r.Items),
	}
}

// ToPurchaseReturn converts the request to its domain payload.
func (r InvoiceRequest) ToPurchaseReturn() domain.PurchaseReturn {
	return domain.PurchaseReturn{
		ReturnID:    r.DocumentID,
		Date:        r.Date,
		PartnerID:   r.PartnerID,
		PartnerName: r.PartnerName,
		Subtotal:    r.Subtotal,
		TaxAmount:   r.TaxAmount,
		TotalAmount: r.TotalAmount,
		IsCash:      r.IsCash,
		Items:       toDomainItems(r.Items),
	}
}

// VoucherRequest is a receipt or payment voucher.
type VoucherRequest struct {
	DocumentID  string          `json:"documentID" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	PartnerID   string          `json:"partnerID" binding:"required"`
	PartnerName string          `json:"partnerName"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	BankName    string          `json:"bankName"` // Empty = cash box
	Notes       string          `json:"notes"`
}

// ToVoucher converts the request to its domain payload.
func (r VoucherRequest) ToVoucher() domain.Voucher {
	return domain.Voucher{
		VoucherID:   r.DocumentID,
		Date:        r.Date,
		PartnerID:   r.PartnerID,
		PartnerName: r.PartnerName,
		Amount:      r.Amount,
		BankName:    r.BankName,
		Notes:       r.Notes,
	}
}

// BankTransferRequest moves money between bank accounts or the cash box.
type BankTransferRequest struct {
	DocumentID string          `json:"documentID" binding:"required"`
	Date       time.Time       `json:"date" binding:"required"`
	FromBank   string          `json:"fromBank"`
	ToBank     string          `json:"toBank"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Notes      string          `json:"notes"`
}

// ToBankTransfer converts the request to its domain payload.
func (r BankTransferRequest) ToBankTransfer() domain.BankTransfer {
	return domain.BankTransfer{
		TransferID: r.DocumentID,
		Date:       r.Date,
		FromBank:   r.FromBank,
		ToBank:     r.ToBank,
		Amount:     r.Amount,
		Notes:      r.Notes,
	}
}

// CheckEventRequest is a bounced check or an early collection.
type CheckEventRequest struct {
	DocumentID  string          `json:"documentID" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	PartnerID   string          `json:"partnerID"`
	PartnerName string          `json:"partnerName"`
	BankName    string          `json:"bankName" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Notes       string          `json:"notes"`
}

// ToCheckEvent converts the request to its domain payload.
func (r CheckEventRequest) ToCheckEvent() domain.CheckEvent {
	return domain.CheckEvent{
		CheckID:     r.DocumentID,
		Date:        r.Date,
		PartnerID:   r.PartnerID,
		PartnerName: r.PartnerName,
		BankName:    r.BankName,
		Amount:      r.Amount,
		Notes:       r.Notes,
	}
}

// RevenueExpenseRequest is a miscellaneous revenue or expense entry against
// the named account.
type RevenueExpenseRequest struct {
	DocumentID  string          `json:"documentID" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	AccountCode string          `json:"accountCode" binding:"required"`
	AccountName string          `json:"accountName"`
	BankName    string          `json:"bankName"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// ToRevenueEntry converts the request to its domain payload.
func (r RevenueExpenseRequest) ToRevenueEntry() domain.RevenueEntry {
	return domain.RevenueEntry{
		EntryRefID:  r.DocumentID,
		Date:        r.Date,
		AccountCode: r.AccountCode,
		AccountName: r.AccountName,
		BankName:    r.BankName,
		Amount:      r.Amount,
		Description: r.Description,
	}
}

// ToExpenseEntry converts the request to its domain payload.
func (r RevenueExpenseRequest) ToExpenseEntry() domain.ExpenseEntry {
	return domain.ExpenseEntry{
		EntryRefID:  r.DocumentID,
		Date:        r.Date,
		AccountCode: r.AccountCode,
		AccountName: r.AccountName,
		BankName:    r.BankName,
		Amount:      r.Amount,
		Description: r.Description,
	}
}

// NoteRequest is a debit or credit note against a partner.
type NoteRequest struct {
	DocumentID  string          `json:"documentID" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	PartnerID   string          `json:"partnerID" binding:"required"`
	PartnerName string          `json:"partnerName"`
	ContraCode  string          `json:"contraCode" binding:"required"`
	ContraName  string          `json:"contraName"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Reason      string          `json:"reason"`
}

// ToNote converts the request to its domain payload.
func (r NoteRequest) ToNote() domain.Note {
	return domain.Note{
		NoteID:      r.DocumentID,
		Date:        r.Date,
		PartnerID:   r.PartnerID,
		PartnerName: r.PartnerName,
		ContraCode:  r.ContraCode,
		ContraName:  r.ContraName,
		Amount:      r.Amount,
		Reason:      r.Reason,
	}
}

// OpeningBalanceRequest records an initial balance for a bank, customer,
// supplier or product.
type OpeningBalanceRequest struct {
	Kind       domain.OpeningBalanceKind `json:"kind" binding:"required,oneof=bank customer supplier product"`
	EntityID   string                    `json:"entityID" binding:"required"`
	EntityName string                    `json:"entityName"`
	Date       time.Time                 `json:"date" binding:"required"`
	Amount     decimal.Decimal           `json:"amount" binding:"required"`
}

// ToOpeningBalance converts the request to its domain payload.
func (r OpeningBalanceRequest) ToOpeningBalance() domain.OpeningBalance {
	return domain.OpeningBalance{
		Kind:       r.Kind,
		EntityID:   r.EntityID,
		EntityName: r.EntityName,
		Date:       r.Date,
		Amount:     r.Amount,
	}
}

// PostingResult reports what a successful posting created.
type PostingResult struct {
	EntryID              string `json:"entryID"`
	EntryNumber          string `json:"entryNumber"`
	PartnerTransactionID string `json:"partnerTransactionID,omitempty"`
	MovementsCreated     int    `json:"movementsCreated"`
}

// UnpostResult reports what an unpost removed.
type UnpostResult struct {
	EntriesDeleted      int64 `json:"entriesDeleted"`
	TransactionsDeleted int64 `json:"transactionsDeleted"`
	MovementsDeleted    int64 `json:"movementsDeleted"`
}
