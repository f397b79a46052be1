package corebank

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

const (
	openingDescription    = "Initial deposit"
	depositDescription    = "Deposit transaction"
	withdrawalDescription = "Withdrawal transaction"
)

// Ledger opens accounts and is the transaction processor: the only caller of
// Repository.AppendTransaction for customer-initiated movements.
type Ledger struct {
	repo         Repository
	node         *snowflake.Node
	now          Clock
	transactable map[AccountType]bool
}

func NewLedger(repo Repository, node *snowflake.Node, now Clock, transactable []AccountType) *Ledger {
	tt := make(map[AccountType]bool, len(transactable))
	for _, t := range transactable {
		tt[t] = true
	}
	return &Ledger{
		repo:         repo,
		node:         node,
		now:          now,
		transactable: tt,
	}
}

// OpenAccount creates an account. A positive opening balance is recorded as an
// "Initial deposit" transaction in the same unit as the account row.
func (l *Ledger) OpenAccount(ctx context.Context, customerID int64, typ AccountType, initial decimal.Decimal) (*Account, error) {
	if !typ.Valid() {
		return nil, ErrBadRequest{Fields: map[string]string{"type": "must be one of Savings, Checking, FixedDeposit"}}
	}
	if err := checkMoney("initial_balance", initial, true); err != nil {
		return nil, err
	}

	now := l.now().UTC()
	acct := Account{
		AcctID:     l.node.Generate(),
		CustomerID: customerID,
		Type:       typ,
		Balance:    initial,
		Status:     AccountActive,
		CreatedAt:  now,
	}
	var opening *Transaction
	if initial.IsPositive() {
		opening = &Transaction{
			TxnID:       l.node.Generate(),
			AcctID:      acct.AcctID,
			Kind:        TxnDeposit,
			Amount:      initial,
			Description: openingDescription,
			CreatedAt:   now,
		}
	}
	if err := l.repo.CreateAccount(ctx, acct, opening); err != nil {
		return nil, err
	}
	return &acct, nil
}

// Process applies a deposit or withdrawal and returns the new balance.
// Validation happens before the store is touched; the store re-checks the
// balance under the account lock.
func (l *Ledger) Process(ctx context.Context, acctID snowflake.ID, kind TxnKind, amount decimal.Decimal, description string) (*decimal.Decimal, error) {
	if !kind.Valid() {
		return nil, ErrBadRequest{Fields: map[string]string{"kind": "must be deposit or withdrawal"}}
	}
	if err := checkMoney("amount", amount, false); err != nil {
		return nil, err
	}

	acct, err := l.repo.GetAccount(ctx, acctID)
	if err != nil {
		return nil, err
	}
	if !l.transactable[acct.Type] {
		return nil, ErrWrongAccountType{AcctID: acctID.Int64(), Type: acct.Type}
	}

	if description == "" {
		description = depositDescription
		if kind == TxnWithdrawal {
			description = withdrawalDescription
		}
	}
	txn := Transaction{
		TxnID:       l.node.Generate(),
		AcctID:      acctID,
		Kind:        kind,
		Amount:      amount,
		Description: description,
		CreatedAt:   l.now().UTC(),
	}
	return l.repo.AppendTransaction(ctx, txn)
}

func (l *Ledger) Balance(ctx context.Context, acctID snowflake.ID) (*decimal.Decimal, error) {
	return l.repo.GetBalance(ctx, acctID)
}

func (l *Ledger) Transactions(ctx context.Context, acctID snowflake.ID) ([]Transaction, error) {
	return l.repo.ListTransactions(ctx, acctID)
}

func (l *Ledger) Accounts(ctx context.Context, customerID int64) ([]Account, error) {
	return l.repo.ListAccounts(ctx, customerID)
}

func (l *Ledger) Close(ctx context.Context, acctID snowflake.ID) (*Account, error) {
	return l.repo.CloseAccount(ctx, acctID)
}

// checkMoney rejects negative amounts, amounts with more than two fractional
// digits and, unless allowZero, zero.
func checkMoney(field string, amt decimal.Decimal, allowZero bool) error {
	switch {
	case amt.IsNegative():
		return ErrBadRequest{Fields: map[string]string{field: "must not be negative"}}
	case amt.IsZero() && !allowZero:
		return ErrBadRequest{Fields: map[string]string{field: "must be greater than zero"}}
	case !amt.Equal(amt.Truncate(2)):
		return ErrBadRequest{Fields: map[string]string{field: "at most two decimal places"}}
	}
	return nil
}
