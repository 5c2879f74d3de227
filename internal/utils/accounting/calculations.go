package accounting

import (
	"fmt"

	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the account type's normal-side sign to a journal line.
// A debit to a debit-normal account (asset/expense/purchases) is positive; a
// credit to it is negative. The signs flip for credit-normal accounts
// (liability/equity/revenue/sales).
func SignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	if !accountType.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account type '%s' for account ID %s", accountType, line.AccountID)
	}
	amount := line.Amount()
	if accountType.IsDebitNormal() {
		if !line.IsDebit() {
			amount = amount.Neg()
		}
	} else {
		if line.IsDebit() {
			amount = amount.Neg()
		}
	}
	return amount, nil
}

// SignedBalance converts raw debit and credit totals into a balance per the
// account type's normal side: debit-minus-credit for debit-normal accounts,
// credit-minus-debit otherwise.
func SignedBalance(accountType domain.AccountType, debitTotal, creditTotal decimal.Decimal) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return debitTotal.Sub(creditTotal)
	}
	return creditTotal.Sub(debitTotal)
}

// ValidateLineShape checks that exactly one of debit/credit is set and that
// the set side is strictly positive.
func ValidateLineShape(line domain.JournalLine) error {
	debitSet := !line.Debit.IsZero()
	creditSet := !line.Credit.IsZero()
	if debitSet == creditSet {
		return fmt.Errorf("journal line for account %s must have exactly one of debit or credit set", line.AccountID)
	}
	if debitSet && !line.Debit.IsPositive() {
		return fmt.Errorf("journal line debit must be positive for account %s", line.AccountID)
	}
	if creditSet && !line.Credit.IsPositive() {
		return fmt.Errorf("journal line credit must be positive for account %s", line.AccountID)
	}
	return nil
}

// ValidateEntryBalance checks that the lines of an entry form a balanced
// double-entry record and returns the common total. At least two lines are
// required, every line must be well formed, and the debit total must equal
// the credit total.
func ValidateEntryBalance(lines []domain.JournalLine) (decimal.Decimal, error) {
	if len(lines) < 2 {
		return decimal.Zero, fmt.Errorf("journal entry must have at least two lines")
	}

	debitTotal := decimal.Zero
	creditTotal := decimal.Zero
	for _, line := range lines {
		if err := ValidateLineShape(line); err != nil {
			return decimal.Zero, err
		}
		debitTotal = debitTotal.Add(line.Debit)
		creditTotal = creditTotal.Add(line.Credit)
	}

	if !debitTotal.Equal(creditTotal) {
		return decimal.Zero, fmt.Errorf("journal entry does not balance: debit total is %s, credit total is %s",
			debitTotal.String(), creditTotal.String())
	}
	return debitTotal, nil
}
