package corebank

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// LoanEngine records loan applications. It never disburses funds and loans
// never leave the pending state here.
type LoanEngine struct {
	repo   Repository
	node   *snowflake.Node
	now    Clock
	policy LoanPolicy
	terms  TermModel
}

func NewLoanEngine(repo Repository, node *snowflake.Node, now Clock, policy LoanPolicy, terms TermModel) *LoanEngine {
	return &LoanEngine{
		repo:   repo,
		node:   node,
		now:    now,
		policy: policy,
		terms:  terms,
	}
}

func (e *LoanEngine) Apply(ctx context.Context, customerID, branchID int64, typ LoanType, amount decimal.Decimal, termMonths int, purpose string) (*Loan, error) {
	fields := map[string]string{}
	if branchID <= 0 {
		fields["branch_id"] = "missing or invalid"
	}
	if !typ.Valid() {
		fields["type"] = "must be one of Personal, Home, Vehicle, Education, Business"
	}
	if err := checkMoney("amount", amount, false); err != nil {
		return nil, err
	}
	if amount.LessThan(e.policy.MinAmount) {
		fields["amount"] = "below minimum " + e.policy.MinAmount.StringFixed(2)
	}
	if termMonths < e.policy.MinTerm || termMonths > e.policy.MaxTerm {
		fields["term_months"] = "out of range"
	}
	if len(fields) > 0 {
		return nil, ErrBadRequest{Fields: fields}
	}

	now := e.now().UTC()
	start := DateOf(now)
	loan := Loan{
		LoanID:     e.node.Generate(),
		CustomerID: customerID,
		BranchID:   branchID,
		Type:       typ,
		Amount:     amount,
		Rate:       e.policy.Rate,
		TermMonths: termMonths,
		StartDate:  start,
		EndDate:    e.terms.End(start, termMonths),
		Status:     LoanPending,
		Purpose:    purpose,
		CreatedAt:  now,
	}
	if err := e.repo.CreateLoan(ctx, loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

func (e *LoanEngine) List(ctx context.Context, customerID int64) ([]Loan, error) {
	return e.repo.ListLoans(ctx, customerID)
}
