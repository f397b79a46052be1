package corebank_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/semaphore"

	"github.com/arhyth/corebank"
	"github.com/arhyth/corebank/mocks"
)

func TestValidationMWCreateAccount(t *testing.T) {
	t.Run("returns an error on a missing customer", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		repo := mocks.NewMockRepository(ctrl)
		svc := mocks.NewMockService(ctrl)
		v := corebank.NewValidationMiddleware(repo)(svc)

		acct, err := v.CreateAccount(context.Background(), corebank.CreateAccountReq{Type: corebank.AccountSavings})
		as.ErrorAs(err, &corebank.ErrBadRequest{})
		as.Nil(acct)
	})

	t.Run("passes valid requests through", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		repo := mocks.NewMockRepository(ctrl)
		svc := mocks.NewMockService(ctrl)
		v := corebank.NewValidationMiddleware(repo)(svc)
		req := corebank.CreateAccountReq{CustomerID: 5, Type: corebank.AccountSavings}
		svc.EXPECT().
			CreateAccount(gomock.Any(), req).
			Return(&corebank.Account{CustomerID: 5}, nil).
			Times(1)

		acct, err := v.CreateAccount(context.Background(), req)
		as.Nil(err)
		as.EqualValues(5, acct.CustomerID)
	})
}

func TestValidationMWProcess(t *testing.T) {
	userAcctID := snowflake.ParseInt64(7241722241547767808)

	t.Run("returns error on non-existent account", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		repo := mocks.NewMockRepository(ctrl)
		svc := mocks.NewMockService(ctrl)
		v := corebank.NewValidationMiddleware(repo)(svc)
		repo.EXPECT().
			GetAccount(gomock.Any(), userAcctID).
			Return(nil, corebank.ErrNotFound{ID: userAcctID.Int64()})

		bal, err := v.Process(context.Background(), corebank.ChargeReq{
			Amount:     decimal.NewFromInt(123),
			Kind:       corebank.TxnWithdrawal,
			AcctID:     userAcctID,
			CustomerID: 1,
		})
		as.ErrorAs(err, &corebank.ErrNotFound{})
		as.Nil(bal)
	})

	t.Run("another customer's account is not found", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		repo := mocks.NewMockRepository(ctrl)
		svc := mocks.NewMockService(ctrl)
		v := corebank.NewValidationMiddleware(repo)(svc)
		repo.EXPECT().
			GetAccount(gomock.Any(), userAcctID).
			Return(&corebank.Account{AcctID: userAcctID, CustomerID: 2, Balance: decimal.NewFromInt(500)}, nil)

		_, err := v.Process(context.Background(), corebank.ChargeReq{
			Amount:     decimal.NewFromInt(1),
			Kind:       corebank.TxnDeposit,
			AcctID:     userAcctID,
			CustomerID: 1,
		})
		nf := corebank.ErrNotFound{}
		as.ErrorAs(err, &nf)
		as.Equal(corebank.ErrNotFound{ID: userAcctID.Int64(), Entity: "account"}, nf)
	})

	t.Run("returns error on a non-positive amount without a lookup", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		repo := mocks.NewMockRepository(ctrl)
		svc := mocks.NewMockService(ctrl)
		v := corebank.NewValidationMiddleware(repo)(svc)

		_, err := v.Process(context.Background(), corebank.ChargeReq{
			Amount:     decimal.NewFromInt(-123),
			Kind:       corebank.TxnDeposit,
			AcctID:     userAcctID,
			CustomerID: 1,
		})
		as.ErrorAs(err, &corebank.ErrBadRequest{})
	})

	t.Run("returns error on insufficient balance", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		repo := mocks.NewMockRepository(ctrl)
		svc := mocks.NewMockService(ctrl)
		v := corebank.NewValidationMiddleware(repo)(svc)
		repo.EXPECT().
			GetAccount(gomock.Any(), userAcctID).
			Return(&corebank.Account{AcctID: userAcctID, CustomerID: 1, Balance: decimal.NewFromInt(10)}, nil)

		_, err := v.Process(context.Background(), corebank.ChargeReq{
			Amount:     decimal.NewFromInt(11),
			Kind:       corebank.TxnWithdrawal,
			AcctID:     userAcctID,
			CustomerID: 1,
		})
		as.ErrorAs(err, &corebank.ErrInsufficientFunds{})
	})

	t.Run("calls the next service on success", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		repo := mocks.NewMockRepository(ctrl)
		svc := mocks.NewMockService(ctrl)
		v := corebank.NewValidationMiddleware(repo)(svc)
		req := corebank.ChargeReq{
			Amount:     decimal.NewFromInt(5),
			Kind:       corebank.TxnWithdrawal,
			AcctID:     userAcctID,
			CustomerID: 1,
		}
		bal := decimal.NewFromInt(5)
		repo.EXPECT().
			GetAccount(gomock.Any(), userAcctID).
			Return(&corebank.Account{AcctID: userAcctID, CustomerID: 1, Balance: decimal.NewFromInt(10)}, nil)
		svc.EXPECT().
			Process(gomock.Any(), req).
			Return(&bal, nil).
			Times(1)

		got, err := v.Process(context.Background(), req)
		as.Nil(err)
		as.True(got.Equal(bal))
	})
}

func TestValidationMWRemoveBeneficiary(t *testing.T) {
	as := assert.New(t)
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	svc := mocks.NewMockService(ctrl)
	v := corebank.NewValidationMiddleware(repo)(svc)

	err := v.RemoveBeneficiary(context.Background(), corebank.RemoveBeneficiaryReq{CustomerID: 1})
	as.ErrorAs(err, &corebank.ErrBadRequest{})
}

func TestLimitMW(t *testing.T) {
	acctID := snowflake.ParseInt64(7241722241547767808)

	t.Run("returns overloaded when the write semaphore stays full", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		limits := &corebank.ServiceLimits{
			Write:   semaphore.NewWeighted(1),
			Read:    semaphore.NewWeighted(1),
			Timeout: 10 * time.Millisecond,
		}
		reqrd.True(limits.Write.TryAcquire(1))
		l := corebank.NewLimitMiddleware(limits)(svc)

		_, err := l.Process(context.Background(), corebank.ChargeReq{AcctID: acctID})
		as.ErrorIs(err, corebank.ErrOverloaded)
	})

	t.Run("reads are not blocked by a full write semaphore", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		limits := &corebank.ServiceLimits{
			Write:   semaphore.NewWeighted(1),
			Read:    semaphore.NewWeighted(1),
			Timeout: 10 * time.Millisecond,
		}
		reqrd.True(limits.Write.TryAcquire(1))
		bal := decimal.NewFromInt(7)
		svc.EXPECT().
			Balance(gomock.Any(), gomock.Any()).
			Return(&bal, nil).
			Times(1)
		l := corebank.NewLimitMiddleware(limits)(svc)

		got, err := l.Balance(context.Background(), corebank.AccountReq{AcctID: acctID, CustomerID: 1})
		as.Nil(err)
		as.True(got.Equal(bal))
		as.True(limits.Read.TryAcquire(1), "read slot released")
	})

	t.Run("a cancelled caller gets its own context error", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		limits := corebank.NewServiceLimits(corebank.LimitsConfig{Write: 1, Read: 1, AcquireTimeout: time.Second})
		limits.Write.TryAcquire(1)
		l := corebank.NewLimitMiddleware(limits)(svc)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := l.CreateAccount(ctx, corebank.CreateAccountReq{CustomerID: 1})
		as.ErrorIs(err, context.Canceled)
	})
}

func TestCircuitBreakMW(t *testing.T) {
	nooplog := zerolog.Nop()
	cfg := corebank.LimitsConfig{BreakerFailures: 2, BreakerTimeout: time.Minute}
	req := corebank.AccountReq{AcctID: snowflake.ParseInt64(7241722241547767808), CustomerID: 1}

	t.Run("opens after consecutive storage failures", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		storageErr := corebank.ErrStorage{Op: "get account", Err: errors.New("connection refused")}
		svc.EXPECT().
			Balance(gomock.Any(), req).
			Return(nil, storageErr).
			Times(2)
		c := corebank.NewCircuitBreakMiddleware(corebank.NewServiceBreaker(cfg, &nooplog))(svc)

		for i := 0; i < 2; i++ {
			_, err := c.Balance(context.Background(), req)
			as.True(corebank.IsStorageFailure(err))
		}
		_, err := c.Balance(context.Background(), req)
		as.ErrorIs(err, corebank.ErrOverloaded)
	})

	t.Run("business rejections never open it", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		svc.EXPECT().
			Balance(gomock.Any(), req).
			Return(nil, corebank.ErrNotFound{ID: req.AcctID.Int64()}).
			Times(5)
		c := corebank.NewCircuitBreakMiddleware(corebank.NewServiceBreaker(cfg, &nooplog))(svc)

		for i := 0; i < 5; i++ {
			_, err := c.Balance(context.Background(), req)
			as.ErrorAs(err, &corebank.ErrNotFound{})
		}
	})

	t.Run("write failures leave reads alone", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		svc := mocks.NewMockService(ctrl)
		storageErr := corebank.ErrStorage{Op: "append transaction", Err: errors.New("timeout")}
		svc.EXPECT().
			Process(gomock.Any(), gomock.Any()).
			Return(nil, storageErr).
			Times(2)
		bal := decimal.NewFromInt(1)
		svc.EXPECT().
			Balance(gomock.Any(), req).
			Return(&bal, nil).
			Times(1)
		c := corebank.NewCircuitBreakMiddleware(corebank.NewServiceBreaker(cfg, &nooplog))(svc)

		for i := 0; i < 3; i++ {
			_, _ = c.Process(context.Background(), corebank.ChargeReq{AcctID: req.AcctID})
		}
		got, err := c.Balance(context.Background(), req)
		as.Nil(err)
		as.True(got.Equal(bal))
	})
}

func TestInstrumentingMW(t *testing.T) {
	as := assert.New(t)
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	bal := decimal.NewFromInt(3)
	svc.EXPECT().
		Balance(gomock.Any(), gomock.Any()).
		Return(&bal, nil)
	svc.EXPECT().
		Process(gomock.Any(), gomock.Any()).
		Return(nil, corebank.ErrInsufficientFunds{})
	svc.EXPECT().
		ListLoans(gomock.Any(), gomock.Any()).
		Return(nil, corebank.ErrOverloaded)

	reg := prometheus.NewRegistry()
	m := corebank.NewInstrumentingMiddleware(corebank.NewMetrics("corebank", reg))(svc)
	ctx := context.Background()
	_, _ = m.Balance(ctx, corebank.AccountReq{})
	_, _ = m.Process(ctx, corebank.ChargeReq{})
	_, _ = m.ListLoans(ctx, corebank.CustomerReq{})

	expected := `
# HELP corebank_requests_total Total number of service requests per method and outcome
# TYPE corebank_requests_total counter
corebank_requests_total{method="Balance",outcome="ok"} 1
corebank_requests_total{method="ListLoans",outcome="overloaded"} 1
corebank_requests_total{method="Process",outcome="rejected"} 1
`
	as.Nil(testutil.GatherAndCompare(reg, strings.NewReader(expected), "corebank_requests_total"))
	count, err := testutil.GatherAndCount(reg, "corebank_request_duration_seconds")
	as.Nil(err)
	as.Equal(3, count)
}

func TestInstrumentingMWMoneyMoved(t *testing.T) {
	as := assert.New(t)
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	bal := decimal.NewFromInt(40)
	svc.EXPECT().
		Process(gomock.Any(), gomock.Any()).
		Return(&bal, nil).
		Times(2)
	svc.EXPECT().
		Process(gomock.Any(), gomock.Any()).
		Return(nil, corebank.ErrInsufficientFunds{})
	svc.EXPECT().
		CreateFixedDeposit(gomock.Any(), gomock.Any()).
		Return(&corebank.FixedDepositView{}, nil)

	reg := prometheus.NewRegistry()
	m := corebank.NewInstrumentingMiddleware(corebank.NewMetrics("corebank", reg))(svc)
	ctx := context.Background()
	_, _ = m.Process(ctx, corebank.ChargeReq{Kind: corebank.TxnDeposit, Amount: decimal.RequireFromString("50.25")})
	_, _ = m.Process(ctx, corebank.ChargeReq{Kind: corebank.TxnWithdrawal, Amount: decimal.RequireFromString("10.25")})
	_, _ = m.Process(ctx, corebank.ChargeReq{Kind: corebank.TxnWithdrawal, Amount: decimal.NewFromInt(999)})
	_, _ = m.CreateFixedDeposit(ctx, corebank.FixedDepositReq{Principal: decimal.NewFromInt(1000), TermMonths: 12})

	expected := `
# HELP corebank_money_moved_total Sum of successfully moved amounts per kind
# TYPE corebank_money_moved_total counter
corebank_money_moved_total{kind="deposit"} 50.25
corebank_money_moved_total{kind="fixed_deposit"} 1000
corebank_money_moved_total{kind="withdrawal"} 10.25
`
	as.Nil(testutil.GatherAndCompare(reg, strings.NewReader(expected), "corebank_money_moved_total"))
}

func TestChainOrder(t *testing.T) {
	as := assert.New(t)
	var order []string
	tag := func(name string) corebank.Middleware {
		return func(next corebank.Service) corebank.Service {
			order = append(order, name)
			return next
		}
	}
	ctrl := gomock.NewController(t)
	corebank.Chain(mocks.NewMockService(ctrl), tag("outer"), tag("inner"))
	as.Equal([]string{"inner", "outer"}, order)
}
