package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Typed payloads for the business documents the posting service knows how to
// book. Each kind maps to one ReferenceType and one line-construction
// pattern; there is no stringly-typed dispatch beyond the closed enum.

// DocumentItem is a stock line on an invoice or return. Only the fields the
// ledger core needs for inventory movements are carried here.
type DocumentItem struct {
	ProductID string          `json:"productID"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// SalesInvoice books: debit customer receivable (or cash for cash sales) for
// the total, credit sales for the subtotal, credit tax payable when tax > 0.
type SalesInvoice struct {
	InvoiceID   string          `json:"invoiceID"`
	Date        time.Time       `json:"date"`
	PartnerID   string          `json:"partnerID"` // Empty for a walk-in cash sale
	PartnerName string          `json:"partnerName"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	IsCash      bool            `json:"isCash"`
	Items       []DocumentItem  `json:"items,omitempty"`
}

// PurchaseInvoice books: debit purchases for the subtotal, debit tax
// receivable when tax > 0, credit supplier payable (or cash) for the total.
type PurchaseInvoice struct {
	InvoiceID   string          `json:"invoiceID"`
	Date        time.Time       `json:"date"`
	PartnerID   string          `json:"partnerID"`
	PartnerName string          `json:"partnerName"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	IsCash      bool            `json:"isCash"`
	Items       []DocumentItem  `json:"items,omitempty"`
}

// SalesReturn reverses a sale: debit sales returns, debit tax payable when
// tax > 0, credit customer (or cash) for the total.
type SalesReturn struct {
	ReturnID    string          `json:"returnID"`
	Date        time.Time       `json:"date"`
	PartnerID   string          `json:"partnerID"`
	PartnerName string          `json:"partnerName"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	IsCash      bool            `json:"isCash"`
	Items       []DocumentItem  `json:"items,omitempty"`
}

// PurchaseReturn reverses a purchase: debit supplier (or cash) for the total,
// credit purchase returns, credit tax receivable when tax > 0.
type PurchaseReturn struct {
	ReturnID    string          `json:"returnID"`
	Date        time.Time       `json:"date"`
	PartnerID   string          `json:"partnerID"`
	PartnerName string          `json:"partnerName"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	IsCash      bool            `json:"isCash"`
	Items       []DocumentItem  `json:"items,omitempty"`
}

// Voucher is a receipt voucher (money in from a customer) or a payment
// voucher (money out to a supplier), depending on which constructor it is
// handed to. BankName empty means the cash box.
type Voucher struct {
	VoucherID   string          `json:"voucherID"`
	Date        time.Time       `json:"date"`
	PartnerID   string          `json:"partnerID"`
	PartnerName string          `json:"partnerName"`
	Amount      decimal.Decimal `json:"amount"`
	BankName    string          `json:"bankName"`
	Notes       string          `json:"notes"`
}

// BankTransfer moves money between two bank accounts, or between the cash
// box and a bank when one side is empty.
type BankTransfer struct {
	TransferID string          `json:"transferID"`
	Date       time.Time       `json:"date"`
	FromBank   string          `json:"fromBank"` // Empty = cash box
	ToBank     string          `json:"toBank"`   // Empty = cash box
	Amount     decimal.Decimal `json:"amount"`
	Notes      string          `json:"notes"`
}

// CheckEvent covers the two check lifecycle postings: a bounced check
// restores the customer's receivable against checks under collection; an
// early collection moves the amount from checks under collection into the
// bank.
type CheckEvent struct {
	CheckID     string          `json:"checkID"`
	Date        time.Time       `json:"date"`
	PartnerID   string          `json:"partnerID"`
	PartnerName string          `json:"partnerName"`
	BankName    string          `json:"bankName"`
	Amount      decimal.Decimal `json:"amount"`
	Notes       string          `json:"notes"`
}

// RevenueEntry books miscellaneous revenue: debit cash/bank, credit the
// named revenue account.
type RevenueEntry struct {
	EntryRefID  string          `json:"entryRefID"`
	Date        time.Time       `json:"date"`
	AccountCode string          `json:"accountCode"` // Revenue account to credit
	AccountName string          `json:"accountName"`
	BankName    string          `json:"bankName"` // Empty = cash box
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// ExpenseEntry books miscellaneous expense: debit the named expense account,
// credit cash/bank.
type ExpenseEntry struct {
	EntryRefID  string          `json:"entryRefID"`
	Date        time.Time       `json:"date"`
	AccountCode string          `json:"accountCode"` // Expense account to debit
	AccountName string          `json:"accountName"`
	BankName    string          `json:"bankName"` // Empty = cash box
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// Note is a debit note (increases what the partner owes us) or a credit note
// (decreases it), against the named contra account.
type Note struct {
	NoteID      string          `json:"noteID"`
	Date        time.Time       `json:"date"`
	PartnerID   string          `json:"partnerID"`
	PartnerName string          `json:"partnerName"`
	ContraCode  string          `json:"contraCode"` // Account taking the other side
	ContraName  string          `json:"contraName"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
}

// OpeningBalanceKind names the entity an opening balance belongs to.
type OpeningBalanceKind string

const (
	OpeningBank     OpeningBalanceKind = "bank"
	OpeningCustomer OpeningBalanceKind = "customer"
	OpeningSupplier OpeningBalanceKind = "supplier"
	OpeningProduct  OpeningBalanceKind = "product"
)

// IsValid reports whether k is a known opening balance kind.
func (k OpeningBalanceKind) IsValid() bool {
	switch k {
	case OpeningBank, OpeningCustomer, OpeningSupplier, OpeningProduct:
		return true
	}
	return false
}

// OpeningBalance records an initial balance at entity creation. It is booked
// against the capital account, not a revenue or expense account: a supplier
// opening balance credits the payable and debits capital, every other kind
// debits the entity's asset account and credits capital.
type OpeningBalance struct {
	Kind       OpeningBalanceKind `json:"kind"`
	EntityID   string             `json:"entityID"`
	EntityName string             `json:"entityName"`
	Date       time.Time          `json:"date"`
	Amount     decimal.Decimal    `json:"amount"`
}
