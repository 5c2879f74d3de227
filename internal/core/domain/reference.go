package domain

// ReferenceType names the kind of business document a journal entry was
// posted for. It is a closed set: every posting path goes through a typed
// constructor for one of these kinds.
type ReferenceType string

const (
	RefSalesInvoice         ReferenceType = "sales_invoice"
	RefPurchaseInvoice      ReferenceType = "purchase_invoice"
	RefSalesReturn          ReferenceType = "sales_return"
	RefPurchaseReturn       ReferenceType = "purchase_return"
	RefReceiptVoucher       ReferenceType = "receipt_voucher"
	RefPaymentVoucher       ReferenceType = "payment_voucher"
	RefBankTransfer         ReferenceType = "bank_transfer"
	RefCheckBounced         ReferenceType = "check_bounced"
	RefCheckEarlyCollection ReferenceType = "check_early_collection"
	RefRevenueEntry         ReferenceType = "revenue_entry"
	RefExpenseEntry         ReferenceType = "expense_entry"
	RefDebitNote            ReferenceType = "debit_note"
	RefCreditNote           ReferenceType = "credit_note"
	RefOpeningBalance       ReferenceType = "opening_balance"
	RefManual               ReferenceType = "manual"
)

// IsValid reports whether r is one of the known document kinds.
func (r ReferenceType) IsValid() bool {
	switch r {
	case RefSalesInvoice, RefPurchaseInvoice, RefSalesReturn, RefPurchaseReturn,
		RefReceiptVoucher, RefPaymentVoucher, RefBankTransfer, RefCheckBounced,
		RefCheckEarlyCollection, RefRevenueEntry, RefExpenseEntry, RefDebitNote,
		RefCreditNote, RefOpeningBalance, RefManual:
		return true
	}
	return false
}
