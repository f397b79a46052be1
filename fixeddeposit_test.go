package corebank_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arhyth/corebank"
)

func TestFixedDepositRate(t *testing.T) {
	as := assert.New(t)
	for term, want := range map[int]string{12: "6", 24: "7", 36: "8", 60: "10"} {
		as.True(corebank.FixedDepositRate(term).Equal(decimal.RequireFromString(want)), "term %d", term)
	}
	mv := corebank.MaturityValue(decimal.NewFromInt(10000), decimal.NewFromInt(7), 24)
	as.Equal("11400.00", mv.StringFixed(2))
}

func TestResolveDepositStatus(t *testing.T) {
	maturity := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		stored corebank.DepositStatus
		now    time.Time
		want   corebank.DepositStatus
	}{
		{"before maturity is active", corebank.DepositActive, maturity.AddDate(0, 0, -1), corebank.DepositActive},
		{"on maturity day still active", corebank.DepositActive, maturity.Add(23 * time.Hour), corebank.DepositActive},
		{"day after maturity is matured", corebank.DepositActive, maturity.AddDate(0, 0, 1), corebank.DepositMatured},
		{"stored matured before maturity reads active", corebank.DepositMatured, maturity.AddDate(0, -6, 0), corebank.DepositActive},
		{"stored active after maturity reads matured", corebank.DepositActive, maturity.AddDate(1, 0, 0), corebank.DepositMatured},
	}
	for _, c := range cases {
		t.Run(c.name, func(tt *testing.T) {
			assert.Equal(tt, c.want, corebank.ResolveDepositStatus(c.stored, maturity, c.now))
		})
	}
}

func newFDEngine(t *testing.T, repo corebank.Repository, now time.Time, terms corebank.TermModel) *corebank.FixedDepositEngine {
	return corebank.NewFixedDepositEngine(repo, newNode(t), fixedClock(now), corebank.DefaultPolicy().FixedDeposit, terms)
}

func TestFixedDepositCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("funds from the first active account with a logged withdrawal", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		repo := corebank.NewMemoryStore()
		node := newNode(tt)
		funding := openAccount(tt, repo, node, 1, corebank.AccountSavings, "20000")
		openAccount(tt, repo, node, 1, corebank.AccountSavings, "50000")
		eng := newFDEngine(tt, repo, testDay, corebank.TermCalendar)

		fd, err := eng.Create(ctx, 1, decimal.NewFromInt(10000), 24)
		reqrd.Nil(err)
		as.Equal(funding.AcctID, fd.AcctID)
		as.True(fd.Rate.Equal(decimal.NewFromInt(7)))
		as.Equal("11400.00", fd.MaturityValue.StringFixed(2))
		as.Equal(corebank.DepositActive, fd.Status)
		as.Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), fd.StartDate)
		as.Equal(time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), fd.MaturityDate)
		as.Equal(730, fd.DaysRemaining)

		bal, err := repo.GetBalance(ctx, funding.AcctID)
		reqrd.Nil(err)
		as.True(bal.Equal(decimal.NewFromInt(10000)))
		txns, err := repo.ListTransactions(ctx, funding.AcctID)
		reqrd.Nil(err)
		reqrd.Len(txns, 2)
		as.Equal(corebank.TxnWithdrawal, txns[0].Kind)
		as.Equal("Fixed deposit funding", txns[0].Description)
		as.True(bal.Equal(logTotal(tt, repo, funding.AcctID)))
	})

	t.Run("thirty-day term model counts 30 days per month", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		repo := corebank.NewMemoryStore()
		openAccount(tt, repo, newNode(tt), 1, corebank.AccountSavings, "5000")
		eng := newFDEngine(tt, repo, testDay, corebank.TermThirtyDay)

		fd, err := eng.Create(ctx, 1, decimal.NewFromInt(1000), 12)
		reqrd.Nil(err)
		as.Equal(fd.StartDate.AddDate(0, 0, 360), fd.MaturityDate)
	})

	t.Run("rejects unsupported terms and small principals", func(tt *testing.T) {
		as := assert.New(tt)
		repo := corebank.NewMemoryStore()
		openAccount(tt, repo, newNode(tt), 1, corebank.AccountSavings, "5000")
		eng := newFDEngine(tt, repo, testDay, corebank.TermCalendar)

		_, err := eng.Create(ctx, 1, decimal.NewFromInt(1000), 18)
		as.ErrorAs(err, &corebank.ErrBadRequest{})
		_, err = eng.Create(ctx, 1, decimal.RequireFromString("999.99"), 12)
		as.ErrorAs(err, &corebank.ErrBadRequest{})
	})

	t.Run("customer without an active account has no funding source", func(tt *testing.T) {
		as := assert.New(tt)
		eng := newFDEngine(tt, corebank.NewMemoryStore(), testDay, corebank.TermCalendar)
		_, err := eng.Create(ctx, 1, decimal.NewFromInt(1000), 12)
		as.ErrorAs(err, &corebank.ErrNoFundingAccount{})
	})

	t.Run("insufficient balance creates nothing", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		repo := corebank.NewMemoryStore()
		acct := openAccount(tt, repo, newNode(tt), 1, corebank.AccountSavings, "500")
		eng := newFDEngine(tt, repo, testDay, corebank.TermCalendar)

		_, err := eng.Create(ctx, 1, decimal.NewFromInt(1000), 12)
		as.ErrorAs(err, &corebank.ErrInsufficientFunds{})
		pf, err := eng.List(ctx, 1)
		reqrd.Nil(err)
		as.Empty(pf.Deposits)
		bal, err := repo.GetBalance(ctx, acct.AcctID)
		reqrd.Nil(err)
		as.True(bal.Equal(decimal.NewFromInt(500)))
	})
}

func TestFixedDepositList(t *testing.T) {
	ctx := context.Background()
	as := assert.New(t)
	reqrd := require.New(t)
	repo := corebank.NewMemoryStore()
	openAccount(t, repo, newNode(t), 1, corebank.AccountSavings, "30000")

	_, err := newFDEngine(t, repo, testDay, corebank.TermCalendar).Create(ctx, 1, decimal.NewFromInt(10000), 12)
	reqrd.Nil(err)
	_, err = newFDEngine(t, repo, testDay, corebank.TermCalendar).Create(ctx, 1, decimal.NewFromInt(10000), 24)
	reqrd.Nil(err)

	later := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	pf, err := newFDEngine(t, repo, later, corebank.TermCalendar).List(ctx, 1)
	reqrd.Nil(err)
	reqrd.Len(pf.Deposits, 2)
	as.Equal("20000.00", pf.TotalInvested.StringFixed(2))
	as.Equal("22000.00", pf.TotalMaturity.StringFixed(2))
	as.Equal("2000.00", pf.ExpectedEarnings.StringFixed(2))

	statuses := map[int]corebank.DepositStatus{}
	for _, d := range pf.Deposits {
		statuses[d.TermMonths] = d.Status
		if d.Status == corebank.DepositMatured {
			as.Zero(d.DaysRemaining)
		}
	}
	as.Equal(corebank.DepositMatured, statuses[12])
	as.Equal(corebank.DepositActive, statuses[24])
}
