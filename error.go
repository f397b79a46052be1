package corebank

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInternalServer = errors.New("internal server error")
	ErrOverloaded     = errors.New("service overloaded, try again later")
	ErrInvalidTier    = errors.New("invalid credit card tier")

	ErrDuplicateCardNumber = errors.New("card number already issued")
)

type ErrBadRequest struct {
	Fields map[string]string `json:"fields"`
}

func (e ErrBadRequest) Error() string {
	return fmt.Sprintf("missing/invalid params: %v", e.Fields)
}

type ErrNotFound struct {
	ID     int64  `json:"id"`
	Entity string `json:"entity,omitempty"`
}

func (e ErrNotFound) Error() string {
	if e.Entity != "" {
		return e.Entity + " not found"
	}
	return "record not found"
}

type ErrInsufficientFunds struct {
	AcctID    int64           `json:"acct_id"`
	Balance   decimal.Decimal `json:"balance"`
	Requested decimal.Decimal `json:"requested"`
}

func (e ErrInsufficientFunds) Error() string {
	return fmt.Sprintf("insufficient funds: balance %s, requested %s", e.Balance.StringFixed(2), e.Requested.StringFixed(2))
}

type ErrWrongAccountType struct {
	AcctID int64       `json:"acct_id"`
	Type   AccountType `json:"type"`
}

func (e ErrWrongAccountType) Error() string {
	return fmt.Sprintf("account type %q does not accept ledger transactions", e.Type)
}

type ErrIncomeTooLow struct {
	Tier     CardTier        `json:"tier"`
	Proposed decimal.Decimal `json:"proposed_limit"`
	Minimum  decimal.Decimal `json:"tier_minimum"`
}

func (e ErrIncomeTooLow) Error() string {
	return fmt.Sprintf("income too low for %s card (minimum limit %s)", e.Tier, e.Minimum.StringFixed(2))
}

type ErrNoFundingAccount struct {
	CustomerID int64 `json:"customer_id"`
}

func (e ErrNoFundingAccount) Error() string {
	return "customer has no active account"
}

// ErrStorage wraps failures of the underlying persistence layer.
type ErrStorage struct {
	Op  string
	Err error
}

func (e ErrStorage) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e ErrStorage) Unwrap() error {
	return e.Err
}

// IsStorageFailure reports whether err is (or wraps) an ErrStorage.
func IsStorageFailure(err error) bool {
	return errors.As(err, &ErrStorage{})
}

// isRejection reports whether err is a business rejection, as opposed to a
// storage or programming failure.
func isRejection(err error) bool {
	var (
		nf  ErrNotFound
		br  ErrBadRequest
		isf ErrInsufficientFunds
		wat ErrWrongAccountType
		itl ErrIncomeTooLow
		nfa ErrNoFundingAccount
	)
	return errors.As(err, &nf) ||
		errors.As(err, &br) ||
		errors.As(err, &isf) ||
		errors.As(err, &wat) ||
		errors.As(err, &itl) ||
		errors.As(err, &nfa) ||
		errors.Is(err, ErrInvalidTier) ||
		errors.Is(err, ErrDuplicateCardNumber)
}
