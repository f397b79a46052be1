package corebank

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Repository is the ledger store. It exclusively owns Account and Transaction
// records; every balance change goes through AppendTransaction or
// CreateFixedDeposit, each of which writes the balance and its log row as one
// unit under a per-account lock.
type Repository interface {
	// CreateAccount inserts acct and, when opening is non-nil, its opening
	// deposit in the same unit.
	CreateAccount(ctx context.Context, acct Account, opening *Transaction) error
	GetAccount(ctx context.Context, id snowflake.ID) (*Account, error)
	GetBalance(ctx context.Context, id snowflake.ID) (*decimal.Decimal, error)
	ListAccounts(ctx context.Context, customerID int64) ([]Account, error)
	// FirstActiveAccount returns the customer's active account with the lowest
	// ID, or ErrNotFound.
	FirstActiveAccount(ctx context.Context, customerID int64) (*Account, error)
	CloseAccount(ctx context.Context, id snowflake.ID) (*Account, error)

	// AppendTransaction applies txn to its account and records it. Withdrawals
	// larger than the balance fail with ErrInsufficientFunds and change nothing.
	AppendTransaction(ctx context.Context, txn Transaction) (*decimal.Decimal, error)
	ListTransactions(ctx context.Context, acctID snowflake.ID) ([]Transaction, error)

	// CreateFixedDeposit appends funding (a withdrawal on fd.AcctID) and inserts
	// fd in the same unit.
	CreateFixedDeposit(ctx context.Context, fd FixedDeposit, funding Transaction) (*decimal.Decimal, error)
	ListFixedDeposits(ctx context.Context, customerID int64) ([]FixedDeposit, error)

	// CreateCreditCard returns ErrDuplicateCardNumber when the number is taken.
	CreateCreditCard(ctx context.Context, card CreditCard) error
	ListCreditCards(ctx context.Context, customerID int64) ([]CreditCard, error)

	CreateLoan(ctx context.Context, loan Loan) error
	ListLoans(ctx context.Context, customerID int64) ([]Loan, error)

	CreateBeneficiary(ctx context.Context, ben Beneficiary) error
	ListBeneficiaries(ctx context.Context, customerID int64) ([]Beneficiary, error)
	DeleteBeneficiary(ctx context.Context, customerID int64, id snowflake.ID) error
}

// nextBalance is the single place the no-overdraft rule lives. Both stores
// call it while holding the account lock.
func nextBalance(acct *Account, txn Transaction) (decimal.Decimal, error) {
	if acct.Status == AccountClosed {
		return decimal.Zero, ErrBadRequest{Fields: map[string]string{"account": "closed"}}
	}
	if txn.Kind == TxnWithdrawal && txn.Amount.GreaterThan(acct.Balance) {
		return decimal.Zero, ErrInsufficientFunds{
			AcctID:    acct.AcctID.Int64(),
			Balance:   acct.Balance,
			Requested: txn.Amount,
		}
	}
	return acct.Balance.Add(txn.Kind.Signed(txn.Amount)), nil
}

func closable(acct *Account) error {
	if acct.Status == AccountClosed {
		return ErrBadRequest{Fields: map[string]string{"account": "already closed"}}
	}
	if !acct.Balance.IsZero() {
		return ErrBadRequest{Fields: map[string]string{"balance": "must be zero to close"}}
	}
	return nil
}
