package services

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/qaidhq/qaid_ledger/internal/apperrors"
	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Well-known chart-of-accounts codes. Entity-specific accounts (banks,
// customers, suppliers) hang under these parents by code prefix and are
// materialized on first reference via GetOrCreateAccount.
const (
	codeCash                  = "1010"
	codeBanksParent           = "1020"
	codeInventory             = "1030"
	codeCustomersParent       = "1050"
	codeChecksUnderCollection = "1060"
	codeTaxReceivable         = "1070"
	codeTaxPayable            = "2030"
	codeSuppliersParent       = "2050"
	codeCapital               = "301"
	codeSales                 = "4010"
	codeSalesReturns          = "4020"
	codePurchases             = "5010"
	codePurchaseReturns       = "5020"
)

// bankCode derives a stable per-bank account code from the bank's name.
func bankCode(bankName string) string {
	h := fnv.New32a()
	h.Write([]byte(bankName))
	return fmt.Sprintf("%s%04d", codeBanksParent, h.Sum32()%10000)
}

func customerCode(partnerID string) string {
	return codeCustomersParent + partnerID
}

func supplierCode(partnerID string) string {
	return codeSuppliersParent + partnerID
}

func (s *JournalService) cashAccount(ctx context.Context, userID string) (*domain.Account, error) {
	return s.accountSvc.GetOrCreateAccount(ctx, codeCash, "Cash", domain.Asset, "", userID)
}

// moneyAccount resolves the cash box or, when a bank name is given, that
// bank's own asset account.
func (s *JournalService) moneyAccount(ctx context.Context, bankName string, userID string) (*domain.Account, error) {
	if bankName == "" {
		return s.cashAccount(ctx, userID)
	}
	return s.accountSvc.GetOrCreateAccount(ctx, bankCode(bankName), bankName, domain.Asset, codeBanksParent, userID)
}

func (s *JournalService) customerAccount(ctx context.Context, partnerID, partnerName, userID string) (*domain.Account, error) {
	name := partnerName
	if name == "" {
		name = "Customer " + partnerID
	}
	return s.accountSvc.GetOrCreateAccount(ctx, customerCode(partnerID), name, domain.Asset, codeCustomersParent, userID)
}

func (s *JournalService) supplierAccount(ctx context.Context, partnerID, partnerName, userID string) (*domain.Account, error) {
	name := partnerName
	if name == "" {
		name = "Supplier " + partnerID
	}
	return s.accountSvc.GetOrCreateAccount(ctx, supplierCode(partnerID), name, domain.Liability, codeSuppliersParent, userID)
}

func (s *JournalService) systemAccount(ctx context.Context, code, name string, accountType domain.AccountType, userID string) (*domain.Account, error) {
	return s.accountSvc.GetOrCreateAccount(ctx, code, name, accountType, "", userID)
}

func requirePositive(amount decimal.Decimal, field string) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be positive", apperrors.ErrValidation, field)
	}
	return nil
}

// CreateSalesInvoiceEntry books a sales invoice: debit the customer's
// receivable (or cash for a cash sale) for the total, credit sales for the
// subtotal, credit tax payable when tax > 0.
func (s *JournalService) CreateSalesInvoiceEntry(ctx context.Context, inv domain.SalesInvoice, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive(inv.TotalAmount, "total amount"); err != nil {
		return nil, err
	}

	var debitAcc *domain.Account
	var err error
	if inv.IsCash || inv.PartnerID == "" {
		debitAcc, err = s.cashAccount(ctx, userID)
	} else {
		debitAcc, err = s.customerAccount(ctx, inv.PartnerID, inv.PartnerName, userID)
	}
	if err != nil {
		return nil, err
	}
	salesAcc, err := s.systemAccount(ctx, codeSales, "Sales", domain.Sales, userID)
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		debitLine(debitAcc.AccountID, inv.TotalAmount, "Sales invoice "+inv.InvoiceID),
		creditLine(salesAcc.AccountID, inv.Subtotal, "Sales revenue"),
	}
	if inv.TaxAmount.IsPositive() {
		taxAcc, err := s.systemAccount(ctx, codeTaxPayable, "Tax payable", domain.Liability, userID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, creditLine(taxAcc.AccountID, inv.TaxAmount, "Sales tax"))
	}

	return s.createEntry(ctx, domain.RefSalesInvoice, inv.InvoiceID, inv.Date,
		"Sales invoice "+inv.InvoiceID, lines, userID)
}

// CreatePurchaseInvoiceEntry books a purchase invoice: debit purchases for
// the subtotal, debit tax receivable when tax > 0, credit the supplier's
// payable (or cash) for the total.
func (s *JournalService) CreatePurchaseInvoiceEntry(ctx context.Context, inv domain.PurchaseInvoice, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive(inv.TotalAmount, "total amount"); err != nil {
		return nil, err
	}

	purchasesAcc, err := s.systemAccount(ctx, codePurchases, "Purchases", domain.Purchases, userID)
	if err != nil {
		return nil, err
	}
	var creditAcc *domain.Account
	if inv.IsCash || inv.PartnerID == "" {
		creditAcc, err = s.cashAccount(ctx, userID)
	} else {
		creditAcc, err = s.supplierAccount(ctx, inv.PartnerID, inv.PartnerName, userID)
	}
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		debitLine(purchasesAcc.AccountID, inv.Subtotal, "Purchases"),
	}
	if inv.TaxAmount.IsPositive() {
		taxAcc, err := s.systemAccount(ctx, codeTaxReceivable, "Tax receivable", domain.Asset, userID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, debitLine(taxAcc.AccountID, inv.TaxAmount, "Purchase tax"))
	}
	lines = append(lines, creditLine(creditAcc.AccountID, inv.TotalAmount, "Purchase invoice "+inv.InvoiceID))

	return s.createEntry(ctx, domain.RefPurchaseInvoice, inv.InvoiceID, inv.Date,
		"Purchase invoice "+inv.InvoiceID, lines, userID)
}

// CreateSalesReturnEntry reverses a sale: debit sales returns, debit tax
// payable when tax > 0, credit the customer (or cash) for the total.
func (s *JournalService) CreateSalesReturnEntry(ctx context.Context, ret domain.SalesReturn, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive(ret.TotalAmount, "total amount"); err != nil {
		return nil, err
	}

	returnsAcc, err := s.systemAccount(ctx, codeSalesReturns, "Sales returns", domain.Sales, userID)
	if err != nil {
		return nil, err
	}
	var creditAcc *domain.Account
	if ret.IsCash || ret.PartnerID == "" {
		creditAcc, err = s.cashAccount(ctx, userID)
	} else {
		creditAcc, err = s.customerAccount(ctx, ret.PartnerID, ret.PartnerName, userID)
	}
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		debitLine(returnsAcc.AccountID, ret.Subtotal, "Sales return"),
	}
	if ret.TaxAmount.IsPositive() {
		taxAcc, err := s.systemAccount(ctx, codeTaxPayable, "Tax payable", domain.Liability, userID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, debitLine(taxAcc.AccountID, ret.TaxAmount, "Sales tax reversal"))
	}
	lines = append(lines, creditLine(creditAcc.AccountID, ret.TotalAmount, "Sales return "+ret.ReturnID))

	return s.createEntry(ctx, domain.RefSalesReturn, ret.ReturnID, ret.Date,
		"Sales return "+ret.ReturnID, lines, userID)
}

// CreatePurchaseReturnEntry reverses a purchase: debit the supplier (or
// cash) for the total, credit purchase returns, credit tax receivable when
// tax > 0.
func (s *JournalService) CreatePurchaseReturnEntry(ctx context.Context, ret domain.PurchaseReturn, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive(ret.TotalAmount, "total amount"); err != nil {
		return nil, err
	}

	var debitAcc *domain.Account
	var err error
	if ret.IsCash || ret.PartnerID == "" {
		debitAcc, err = s.cashAccount(ctx, userID)
	} else {
		debitAcc, err = s.supplierAccount(ctx, ret.PartnerID, ret.PartnerName, userID)
	}
	if err != nil {
		return nil, err
	}
	returnsAcc, err := s.systemAccount(ctx, codePurchaseReturns, "Purchase returns", domain.Purchases, userID)
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		debitLine(debitAcc.AccountID, ret.TotalAmount, "Purchase return "+ret.ReturnID),
		creditLine(returnsAcc.AccountID, ret.Subtotal, "Purchase return"),
	}
	if ret.TaxAmount.IsPositive() {
		taxAcc, err := s.systemAccount(ctx, codeTaxReceivable, "Tax receivable", domain.Asset, userID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, creditLine(taxAcc.AccountID, ret.TaxAmount, "Purchase tax reversal"))
	}

	return s.createEntry(ctx, domain.RefPurchaseReturn, ret.ReturnID, ret.Date,
		"Purchase return "+ret.ReturnID, lines, userID)
}

// CreateReceiptVoucherEntry books money received from a customer: debit
// cash/bank, credit the customer's receivable.
func (s *JournalService) CreateReceiptVoucherEntry(ctx context.Context, v domain.Voucher, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive(v.Amount, "amount"); err != nil {
		return nil, err
	}

	moneyAcc, err := s.moneyAccount(ctx, v.BankName, userID)
	if err != nil {
		return nil, err
	}
	customerAcc, err := s.customerAccount(ctx, v.PartnerID, v.PartnerName, userID)
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		debitLine(moneyAcc.AccountID, v.Amount, "Receipt voucher "+v.VoucherID),
		creditLine(customerAcc.AccountID, v.Amount, "Customer payment"),
	}
	return s.createEntry(ctx, domain.RefReceiptVoucher, v.VoucherID, v.Date,
		"Receipt voucher "+v.VoucherID, lines, userID)
}

// CreatePaymentVoucherEntry books money paid to a supplier: debit the
// supplier's payable, credit cash/bank.
func (s *JournalService) CreatePaymentVoucherEntry(ctx context.Context, v domain.Voucher, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive(v.Amount, "amount"); err != nil {
		return nil, err
	}

	supplierAcc, err := s.supplierAccount(ctx, v.PartnerID, v.PartnerName, userID)
	if err != nil {
		return nil, err
	}
	moneyAcc, err := s.moneyAccount(ctx, v.BankName, userID)
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		debitLine(supplierAcc.AccountID, v.Amount, "Supplier payment"),
		creditLine(moneyAcc.AccountID, v.Amount, "Payment voucher "+v.VoucherID),
	}
	return s.createEntry(ctx, domain.RefPaymentVoucher, v.VoucherID, v.Date,
		"Payment voucher "+v.VoucherID, lines, userID)
}

// CreateBankTransferEntry moves money between two money accounts: debit the
// destination, credit the source. An empty side means the cash box.
func (s *JournalService) CreateBankTransferEntry(ctx context.Context, t domain.BankTransfer, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive(t.Amount, "amount"); err != nil {
		return nil, err
	}
	if t.FromBank == t.ToBank {
		return nil, fmt.Errorf("%w: transfer source and destination are the same", apperrors.ErrValidation)
	}

	toAcc, err := s.moneyAccount(ctx, t.ToBank, userID)
	if err != nil {
		return nil, err
	}
	fromAcc, err := s.moneyAccount(ctx, t.FromBank, userID)
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		debitLine(toAcc.AccountID, t.Amount, "Transfer in"),
		creditLine(fromAcc.AccountID, t.Amount, "Transfer out"),
	}
	return s.createEntry(ctx, domain.RefBankTransfer, t.TransferID, t.Date,
		"Bank transfer "+t.TransferID, lines, userID)
}

// CreateCheckBouncedEntry restores the customer's receivable when a check
// bounces: debit the customer, credit checks under collection.
func (s *JournalService) CreateCheckBouncedEntry(ctx context.Context, c domain.CheckEvent, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive(c.Amount, "amount"); err != nil {
		return nil, err
	}

	customerAcc, err := s.customerAccount(ctx, c.PartnerID, c.PartnerName, userID)
	if err != nil {
		return nil, err
	}
	checksAcc, err := s.systemAccount(ctx, codeChecksUnderCollection, "Checks under collection", domain.Asset, userID)
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		debitLine(customerAcc.AccountID, c.Amount, "Bounced check "+c.CheckID),
		creditLine(checksAcc.AccountID, c.Amount, "Check removed from collection"),
	}
	return s.createEntry(ctx, domain.RefCheckBounced, c.CheckID, c.Date,
		"Bounced check "+c.CheckID, lines, userID)
}

// CreateCheckEarlyCollectionEntry books a check collected before its due
// date: debit the bank, credit checks under collection.
func (s *JournalService) CreateCheckEarlyCollectionEntry(ctx context.Context, c domain.CheckEvent, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive(c.Amount, "amount"); err != nil {
		return nil, err
	}

	bankAcc, err := s.moneyAccount(ctx, c.BankName, userID)
	if err != nil {
		return nil, err
	}
	checksAcc, err := s.systemAccount(ctx, codeChecksUnderCollection, "Checks under collection", domain.Asset, userID)
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		debitLine(bankAcc.AccountID, c.Amount, "Check collected early "+c.CheckID),
		creditLine(checksAcc.AccountID, c.Amount, "Check removed from collection"),
	}
	return s.createEntry(ctx, domain.RefCheckEarlyCollection, c.CheckID, c.Date,
		"Early check collection "+c.CheckID, lines, userID)
}

// CreateRevenueEntry books miscellaneous revenue: debit cash/bank, credit
// the named revenue account.
func (s *JournalService) CreateRevenueEntry(ctx context.Context, e domain.RevenueEntry, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive(e.Amount, "amount"); err != nil {
		return nil, err
	}

	moneyAcc, err := s.moneyAccount(ctx, e.BankName, userID)
	if err != nil {
		return nil, err
	}
	name := e.AccountName
	if name == "" {
		name = "Revenue " + e.AccountCode
	}
	revenueAcc, err := s.systemAccount(ctx, e.AccountCode, name, domain.Revenue, userID)
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		debitLine(moneyAcc.AccountID, e.Amount, e.Description),
		creditLine(revenueAcc.AccountID, e.Amount, e.Description),
	}
	return s.createEntry(ctx, domain.RefRevenueEntry, e.EntryRefID, e.Date,
		"Revenue entry "+e.EntryRefID, lines, userID)
}

// CreateExpenseEntry books miscellaneous expense: debit the named expense
// account, credit cash/bank.
func (s *JournalService) CreateExpenseEntry(ctx context.Context, e domain.ExpenseEntry, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive(e.Amount, "amount"); err != nil {
		return nil, err
	}

	name := e.AccountName
	if name == "" {
		name = "Expense " + e.AccountCode
	}
	expenseAcc, err := s.systemAccount(ctx, e.AccountCode, name, domain.Expense, userID)
	if err != nil {
		return nil, err
	}
	moneyAcc, err := s.moneyAccount(ctx, e.BankName, userID)
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		debitLine(expenseAcc.AccountID, e.Amount, e.Description),
		creditLine(moneyAcc.AccountID, e.Amount, e.Description),
	}
	return s.createEntry(ctx, domain.RefExpenseEntry, e.EntryRefID, e.Date,
		"Expense entry "+e.EntryRefID, lines, userID)
}

// CreateDebitNoteEntry increases what the partner owes us: debit the
// customer's receivable, credit the contra account.
func (s *JournalService) CreateDebitNoteEntry(ctx context.Context, n domain.Note, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive(n.Amount, "amount"); err != nil {
		return nil, err
	}

	customerAcc, err := s.customerAccount(ctx, n.PartnerID, n.PartnerName, userID)
	if err != nil {
		return nil, err
	}
	name := n.ContraName
	if name == "" {
		name = "Account " + n.ContraCode
	}
	contraAcc, err := s.systemAccount(ctx, n.ContraCode, name, domain.Revenue, userID)
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		debitLine(customerAcc.AccountID, n.Amount, n.Reason),
		creditLine(contraAcc.AccountID, n.Amount, "Debit note "+n.NoteID),
	}
	return s.createEntry(ctx, domain.RefDebitNote, n.NoteID, n.Date,
		"Debit note "+n.NoteID, lines, userID)
}

// CreateCreditNoteEntry decreases what the partner owes us: debit the contra
// account, credit the customer's receivable.
func (s *JournalService) CreateCreditNoteEntry(ctx context.Context, n domain.Note, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive(n.Amount, "amount"); err != nil {
		return nil, err
	}

	name := n.ContraName
	if name == "" {
		name = "Account " + n.ContraCode
	}
	contraAcc, err := s.systemAccount(ctx, n.ContraCode, name, domain.Expense, userID)
	if err != nil {
		return nil, err
	}
	customerAcc, err := s.customerAccount(ctx, n.PartnerID, n.PartnerName, userID)
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		debitLine(contraAcc.AccountID, n.Amount, "Credit note "+n.NoteID),
		creditLine(customerAcc.AccountID, n.Amount, n.Reason),
	}
	return s.createEntry(ctx, domain.RefCreditNote, n.NoteID, n.Date,
		"Credit note "+n.NoteID, lines, userID)
}

// CreateOpeningBalanceEntry books an initial balance against capital. A
// supplier opening balance credits the payable and debits capital; every
// other kind debits the entity's asset account and credits capital.
func (s *JournalService) CreateOpeningBalanceEntry(ctx context.Context, ob domain.OpeningBalance, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive(ob.Amount, "amount"); err != nil {
		return nil, err
	}
	if !ob.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown opening balance kind '%s'", apperrors.ErrValidation, ob.Kind)
	}

	capitalAcc, err := s.systemAccount(ctx, codeCapital, "Capital", domain.Equity, userID)
	if err != nil {
		return nil, err
	}

	var entityAcc *domain.Account
	switch ob.Kind {
	case domain.OpeningBank:
		entityAcc, err = s.moneyAccount(ctx, ob.EntityName, userID)
	case domain.OpeningCustomer:
		entityAcc, err = s.customerAccount(ctx, ob.EntityID, ob.EntityName, userID)
	case domain.OpeningSupplier:
		entityAcc, err = s.supplierAccount(ctx, ob.EntityID, ob.EntityName, userID)
	case domain.OpeningProduct:
		entityAcc, err = s.systemAccount(ctx, codeInventory, "Inventory", domain.Asset, userID)
	}
	if err != nil {
		return nil, err
	}

	refID := string(ob.Kind) + ":" + ob.EntityID
	var lines []domain.JournalLine
	if ob.Kind == domain.OpeningSupplier {
		lines = []domain.JournalLine{
			debitLine(capitalAcc.AccountID, ob.Amount, "Opening balance"),
			creditLine(entityAcc.AccountID, ob.Amount, "Opening balance"),
		}
	} else {
		lines = []domain.JournalLine{
			debitLine(entityAcc.AccountID, ob.Amount, "Opening balance"),
			creditLine(capitalAcc.AccountID, ob.Amount, "Opening balance"),
		}
	}

	return s.createEntry(ctx, domain.RefOpeningBalance, refID, ob.Date,
		"Opening balance for "+string(ob.Kind)+" "+ob.EntityID, lines, userID)
}
