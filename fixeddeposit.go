package corebank

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

const fundingDescription = "Fixed deposit funding"

var (
	fdBaseRate = decimal.NewFromInt(5)
	twelve     = decimal.NewFromInt(12)
	hundred    = decimal.NewFromInt(100)
)

// FixedDepositView is a deposit as reported to callers: status derived from
// the date, maturity value computed from the fixed rate.
type FixedDepositView struct {
	FixedDeposit
	MaturityValue decimal.Decimal `json:"maturity_value"`
	DaysRemaining int             `json:"days_remaining"`
}

type FixedDepositPortfolio struct {
	Deposits         []FixedDepositView `json:"deposits"`
	TotalInvested    decimal.Decimal    `json:"total_invested"`
	TotalMaturity    decimal.Decimal    `json:"total_maturity_value"`
	ExpectedEarnings decimal.Decimal    `json:"expected_earnings"`
}

type FixedDepositEngine struct {
	repo   Repository
	node   *snowflake.Node
	now    Clock
	policy FixedDepositPolicy
	terms  TermModel
}

func NewFixedDepositEngine(repo Repository, node *snowflake.Node, now Clock, policy FixedDepositPolicy, terms TermModel) *FixedDepositEngine {
	return &FixedDepositEngine{
		repo:   repo,
		node:   node,
		now:    now,
		policy: policy,
		terms:  terms,
	}
}

// FixedDepositRate is the simple annual rate, in percent, for a term:
// 5 + termMonths/12.
func FixedDepositRate(termMonths int) decimal.Decimal {
	return fdBaseRate.Add(decimal.NewFromInt(int64(termMonths)).Div(twelve))
}

// MaturityValue is principal × (1 + rate/100 × termMonths/12), unrounded.
func MaturityValue(principal, rate decimal.Decimal, termMonths int) decimal.Decimal {
	years := decimal.NewFromInt(int64(termMonths)).Div(twelve)
	return principal.Mul(decimal.NewFromInt(1).Add(rate.Div(hundred).Mul(years)))
}

// ResolveDepositStatus derives the reported status from the dates alone; the
// stored value never wins.
func ResolveDepositStatus(stored DepositStatus, maturity, now time.Time) DepositStatus {
	if DateOf(now).After(DateOf(maturity)) {
		return DepositMatured
	}
	return DepositActive
}

// Create funds a deposit from the customer's first active account. The debit
// is a logged withdrawal written together with the deposit row.
func (e *FixedDepositEngine) Create(ctx context.Context, customerID int64, principal decimal.Decimal, termMonths int) (*FixedDepositView, error) {
	if !slices.Contains(e.policy.Terms, termMonths) {
		return nil, ErrBadRequest{Fields: map[string]string{"term_months": "unsupported term"}}
	}
	if err := checkMoney("principal", principal, false); err != nil {
		return nil, err
	}
	if principal.LessThan(e.policy.MinPrincipal) {
		return nil, ErrBadRequest{Fields: map[string]string{"principal": "below minimum " + e.policy.MinPrincipal.StringFixed(2)}}
	}

	acct, err := e.repo.FirstActiveAccount(ctx, customerID)
	if err != nil {
		if errors.As(err, &ErrNotFound{}) {
			return nil, ErrNoFundingAccount{CustomerID: customerID}
		}
		return nil, err
	}
	if acct.Balance.LessThan(principal) {
		return nil, ErrInsufficientFunds{AcctID: acct.AcctID.Int64(), Balance: acct.Balance, Requested: principal}
	}

	now := e.now().UTC()
	start := DateOf(now)
	fd := FixedDeposit{
		FDID:         e.node.Generate(),
		AcctID:       acct.AcctID,
		Principal:    principal,
		Rate:         FixedDepositRate(termMonths).Round(2),
		TermMonths:   termMonths,
		StartDate:    start,
		MaturityDate: e.terms.End(start, termMonths),
		Status:       DepositActive,
		CreatedAt:    now,
	}
	funding := Transaction{
		TxnID:       e.node.Generate(),
		AcctID:      acct.AcctID,
		Kind:        TxnWithdrawal,
		Amount:      principal,
		Description: fundingDescription,
		CreatedAt:   now,
	}
	if _, err = e.repo.CreateFixedDeposit(ctx, fd, funding); err != nil {
		return nil, err
	}
	v := viewDeposit(fd, now)
	return &v, nil
}

func (e *FixedDepositEngine) List(ctx context.Context, customerID int64) (*FixedDepositPortfolio, error) {
	fds, err := e.repo.ListFixedDeposits(ctx, customerID)
	if err != nil {
		return nil, err
	}
	now := e.now()
	pf := &FixedDepositPortfolio{Deposits: make([]FixedDepositView, 0, len(fds))}
	total, maturity := decimal.Zero, decimal.Zero
	for _, fd := range fds {
		v := viewDeposit(fd, now)
		total = total.Add(fd.Principal)
		maturity = maturity.Add(MaturityValue(fd.Principal, fd.Rate, fd.TermMonths))
		pf.Deposits = append(pf.Deposits, v)
	}
	// totals are rounded after summation, not per row
	pf.TotalInvested = total.Round(2)
	pf.TotalMaturity = maturity.Round(2)
	pf.ExpectedEarnings = maturity.Sub(total).Round(2)
	return pf, nil
}

func viewDeposit(fd FixedDeposit, now time.Time) FixedDepositView {
	fd.Status = ResolveDepositStatus(fd.Status, fd.MaturityDate, now)
	days := int(DateOf(fd.MaturityDate).Sub(DateOf(now)).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return FixedDepositView{
		FixedDeposit:  fd,
		MaturityValue: MaturityValue(fd.Principal, fd.Rate, fd.TermMonths).Round(2),
		DaysRemaining: days,
	}
}
