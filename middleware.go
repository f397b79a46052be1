package corebank

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/semaphore"
)

type Middleware func(Service) Service

// Chain wraps svc so that the first middleware is the outermost.
func Chain(svc Service, mws ...Middleware) Service {
	for i := len(mws) - 1; i >= 0; i-- {
		svc = mws[i](svc)
	}
	return svc
}

//
// Validation middleware
//

// validationMiddleware checks caller identity and account ownership before a
// request reaches the engines. Domain rules (tiers, terms, overdraft) stay in
// the engines.
type validationMiddleware struct {
	next Service
	repo Repository
}

var (
	_ Service = (*validationMiddleware)(nil)
)

func NewValidationMiddleware(repo Repository) Middleware {
	return func(svc Service) Service {
		return &validationMiddleware{
			next: svc,
			repo: repo,
		}
	}
}

func checkCustomer(id int64) error {
	if id <= 0 {
		return ErrBadRequest{Fields: map[string]string{"customer": "missing or invalid"}}
	}
	return nil
}

func (v *validationMiddleware) owned(ctx context.Context, req AccountReq) (*Account, error) {
	if err := checkCustomer(req.CustomerID); err != nil {
		return nil, err
	}
	acct, err := v.repo.GetAccount(ctx, req.AcctID)
	if err != nil {
		return nil, err
	}
	// another customer's account reads the same as a missing one
	if acct.CustomerID != req.CustomerID {
		return nil, ErrNotFound{ID: req.AcctID.Int64(), Entity: "account"}
	}
	return acct, nil
}

func (v *validationMiddleware) CreateAccount(ctx context.Context, req CreateAccountReq) (*Account, error) {
	if err := checkCustomer(req.CustomerID); err != nil {
		return nil, err
	}
	return v.next.CreateAccount(ctx, req)
}

func (v *validationMiddleware) CloseAccount(ctx context.Context, req AccountReq) (*Account, error) {
	if _, err := v.owned(ctx, req); err != nil {
		return nil, err
	}
	return v.next.CloseAccount(ctx, req)
}

func (v *validationMiddleware) ListAccounts(ctx context.Context, req CustomerReq) ([]Account, error) {
	if err := checkCustomer(req.CustomerID); err != nil {
		return nil, err
	}
	return v.next.ListAccounts(ctx, req)
}

func (v *validationMiddleware) Process(ctx context.Context, req ChargeReq) (*decimal.Decimal, error) {
	if !req.Kind.Valid() {
		return nil, ErrBadRequest{Fields: map[string]string{"kind": "must be deposit or withdrawal"}}
	}
	if !req.Amount.IsPositive() {
		return nil, ErrBadRequest{Fields: map[string]string{"amount": "must be greater than zero"}}
	}
	acct, err := v.owned(ctx, AccountReq{AcctID: req.AcctID, CustomerID: req.CustomerID})
	if err != nil {
		return nil, err
	}
	if req.Kind == TxnWithdrawal && acct.Balance.LessThan(req.Amount) {
		return nil, ErrInsufficientFunds{AcctID: acct.AcctID.Int64(), Balance: acct.Balance, Requested: req.Amount}
	}
	return v.next.Process(ctx, req)
}

func (v *validationMiddleware) Balance(ctx context.Context, req AccountReq) (*decimal.Decimal, error) {
	if _, err := v.owned(ctx, req); err != nil {
		return nil, err
	}
	return v.next.Balance(ctx, req)
}

func (v *validationMiddleware) Transactions(ctx context.Context, req AccountReq) ([]Transaction, error) {
	if _, err := v.owned(ctx, req); err != nil {
		return nil, err
	}
	return v.next.Transactions(ctx, req)
}

func (v *validationMiddleware) Statement(ctx context.Context, w io.Writer, req AccountReq) error {
	if _, err := v.owned(ctx, req); err != nil {
		return err
	}
	return v.next.Statement(ctx, w, req)
}

func (v *validationMiddleware) CreateFixedDeposit(ctx context.Context, req FixedDepositReq) (*FixedDepositView, error) {
	if err := checkCustomer(req.CustomerID); err != nil {
		return nil, err
	}
	return v.next.CreateFixedDeposit(ctx, req)
}

func (v *validationMiddleware) ListFixedDeposits(ctx context.Context, req CustomerReq) (*FixedDepositPortfolio, error) {
	if err := checkCustomer(req.CustomerID); err != nil {
		return nil, err
	}
	return v.next.ListFixedDeposits(ctx, req)
}

func (v *validationMiddleware) IssueCreditCard(ctx context.Context, req IssueCardReq) (*CreditCardView, error) {
	if err := checkCustomer(req.CustomerID); err != nil {
		return nil, err
	}
	return v.next.IssueCreditCard(ctx, req)
}

func (v *validationMiddleware) ListCreditCards(ctx context.Context, req CustomerReq) ([]CreditCardView, error) {
	if err := checkCustomer(req.CustomerID); err != nil {
		return nil, err
	}
	return v.next.ListCreditCards(ctx, req)
}

func (v *validationMiddleware) ApplyLoan(ctx context.Context, req LoanReq) (*Loan, error) {
	if err := checkCustomer(req.CustomerID); err != nil {
		return nil, err
	}
	return v.next.ApplyLoan(ctx, req)
}

func (v *validationMiddleware) ListLoans(ctx context.Context, req CustomerReq) ([]Loan, error) {
	if err := checkCustomer(req.CustomerID); err != nil {
		return nil, err
	}
	return v.next.ListLoans(ctx, req)
}

func (v *validationMiddleware) AddBeneficiary(ctx context.Context, req BeneficiaryReq) (*Beneficiary, error) {
	if err := checkCustomer(req.CustomerID); err != nil {
		return nil, err
	}
	return v.next.AddBeneficiary(ctx, req)
}

func (v *validationMiddleware) RemoveBeneficiary(ctx context.Context, req RemoveBeneficiaryReq) error {
	if err := checkCustomer(req.CustomerID); err != nil {
		return err
	}
	if req.BenID == 0 && req.Name == "" {
		return ErrBadRequest{Fields: map[string]string{"beneficiary": "id or name required"}}
	}
	return v.next.RemoveBeneficiary(ctx, req)
}

func (v *validationMiddleware) ListBeneficiaries(ctx context.Context, req CustomerReq) ([]Beneficiary, error) {
	if err := checkCustomer(req.CustomerID); err != nil {
		return nil, err
	}
	return v.next.ListBeneficiaries(ctx, req)
}

//
// Rate limiting middlewares
//

// limitMiddleware limits the number of in-flight requests to the service by using
// a weighted semaphore, i.e., x/sync/semaphore.Semaphore with an acquisition timeout.
// Writes and reads draw from separate semaphores so a burst of statement
// rendering cannot starve deposits.
type limitMiddleware struct {
	next   Service
	limits *ServiceLimits
}

var (
	_ Service = (*limitMiddleware)(nil)
)

type ServiceLimits struct {
	Write   *semaphore.Weighted
	Read    *semaphore.Weighted
	Timeout time.Duration
}

func NewServiceLimits(cfg LimitsConfig) *ServiceLimits {
	return &ServiceLimits{
		Write:   semaphore.NewWeighted(cfg.Write),
		Read:    semaphore.NewWeighted(cfg.Read),
		Timeout: cfg.AcquireTimeout,
	}
}

func NewLimitMiddleware(limits *ServiceLimits) Middleware {
	return func(next Service) Service {
		return &limitMiddleware{
			next:   next,
			limits: limits,
		}
	}
}

func limited[T any](ctx context.Context, sem *semaphore.Weighted, timeout time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sem.Acquire(actx, 1); err != nil {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		return zero, ErrOverloaded
	}
	defer sem.Release(1)
	return fn()
}

func (l *limitMiddleware) write() (*semaphore.Weighted, time.Duration) {
	return l.limits.Write, l.limits.Timeout
}

func (l *limitMiddleware) read() (*semaphore.Weighted, time.Duration) {
	return l.limits.Read, l.limits.Timeout
}

func (l *limitMiddleware) CreateAccount(ctx context.Context, req CreateAccountReq) (*Account, error) {
	sem, to := l.write()
	return limited(ctx, sem, to, func() (*Account, error) { return l.next.CreateAccount(ctx, req) })
}

func (l *limitMiddleware) CloseAccount(ctx context.Context, req AccountReq) (*Account, error) {
	sem, to := l.write()
	return limited(ctx, sem, to, func() (*Account, error) { return l.next.CloseAccount(ctx, req) })
}

func (l *limitMiddleware) ListAccounts(ctx context.Context, req CustomerReq) ([]Account, error) {
	sem, to := l.read()
	return limited(ctx, sem, to, func() ([]Account, error) { return l.next.ListAccounts(ctx, req) })
}

func (l *limitMiddleware) Process(ctx context.Context, req ChargeReq) (*decimal.Decimal, error) {
	sem, to := l.write()
	return limited(ctx, sem, to, func() (*decimal.Decimal, error) { return l.next.Process(ctx, req) })
}

func (l *limitMiddleware) Balance(ctx context.Context, req AccountReq) (*decimal.Decimal, error) {
	sem, to := l.read()
	return limited(ctx, sem, to, func() (*decimal.Decimal, error) { return l.next.Balance(ctx, req) })
}

func (l *limitMiddleware) Transactions(ctx context.Context, req AccountReq) ([]Transaction, error) {
	sem, to := l.read()
	return limited(ctx, sem, to, func() ([]Transaction, error) { return l.next.Transactions(ctx, req) })
}

func (l *limitMiddleware) Statement(ctx context.Context, w io.Writer, req AccountReq) error {
	sem, to := l.read()
	_, err := limited(ctx, sem, to, func() (struct{}, error) { return struct{}{}, l.next.Statement(ctx, w, req) })
	return err
}

func (l *limitMiddleware) CreateFixedDeposit(ctx context.Context, req FixedDepositReq) (*FixedDepositView, error) {
	sem, to := l.write()
	return limited(ctx, sem, to, func() (*FixedDepositView, error) { return l.next.CreateFixedDeposit(ctx, req) })
}

func (l *limitMiddleware) ListFixedDeposits(ctx context.Context, req CustomerReq) (*FixedDepositPortfolio, error) {
	sem, to := l.read()
	return limited(ctx, sem, to, func() (*FixedDepositPortfolio, error) { return l.next.ListFixedDeposits(ctx, req) })
}

func (l *limitMiddleware) IssueCreditCard(ctx context.Context, req IssueCardReq) (*CreditCardView, error) {
	sem, to := l.write()
	return limited(ctx, sem, to, func() (*CreditCardView, error) { return l.next.IssueCreditCard(ctx, req) })
}

func (l *limitMiddleware) ListCreditCards(ctx context.Context, req CustomerReq) ([]CreditCardView, error) {
	sem, to := l.read()
	return limited(ctx, sem, to, func() ([]CreditCardView, error) { return l.next.ListCreditCards(ctx, req) })
}

func (l *limitMiddleware) ApplyLoan(ctx context.Context, req LoanReq) (*Loan, error) {
	sem, to := l.write()
	return limited(ctx, sem, to, func() (*Loan, error) { return l.next.ApplyLoan(ctx, req) })
}

func (l *limitMiddleware) ListLoans(ctx context.Context, req CustomerReq) ([]Loan, error) {
	sem, to := l.read()
	return limited(ctx, sem, to, func() ([]Loan, error) { return l.next.ListLoans(ctx, req) })
}

func (l *limitMiddleware) AddBeneficiary(ctx context.Context, req BeneficiaryReq) (*Beneficiary, error) {
	sem, to := l.write()
	return limited(ctx, sem, to, func() (*Beneficiary, error) { return l.next.AddBeneficiary(ctx, req) })
}

func (l *limitMiddleware) RemoveBeneficiary(ctx context.Context, req RemoveBeneficiaryReq) error {
	sem, to := l.write()
	_, err := limited(ctx, sem, to, func() (struct{}, error) { return struct{}{}, l.next.RemoveBeneficiary(ctx, req) })
	return err
}

func (l *limitMiddleware) ListBeneficiaries(ctx context.Context, req CustomerReq) ([]Beneficiary, error) {
	sem, to := l.read()
	return limited(ctx, sem, to, func() ([]Beneficiary, error) { return l.next.ListBeneficiaries(ctx, req) })
}

type ServiceBreaker struct {
	Write *gobreaker.CircuitBreaker[any]
	Read  *gobreaker.CircuitBreaker[any]
}

// NewServiceBreaker builds read and write breakers that trip on consecutive
// storage failures only. Business rejections count as successes.
func NewServiceBreaker(cfg LimitsConfig, log *zerolog.Logger) *ServiceBreaker {
	settings := func(name string) gobreaker.Settings {
		return gobreaker.Settings{
			Name:    name,
			Timeout: cfg.BreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.BreakerFailures
			},
			IsSuccessful: func(err error) bool {
				return err == nil || !IsStorageFailure(err)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().
					Str("breaker", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("circuit breaker state change")
			},
		}
	}
	return &ServiceBreaker{
		Write: gobreaker.NewCircuitBreaker[any](settings("write")),
		Read:  gobreaker.NewCircuitBreaker[any](settings("read")),
	}
}

// circuitBreakMiddleware is a middleware that implements the circuit breaker pattern.
// It works in conjunction with limitMiddleware: while the store is failing the
// breaker rejects requests immediately instead of letting them queue on the
// limit semaphores until their deadline.
type circuitBreakMiddleware struct {
	next  Service
	brkrs *ServiceBreaker
}

var (
	_ Service = (*circuitBreakMiddleware)(nil)
)

func NewCircuitBreakMiddleware(brkrs *ServiceBreaker) Middleware {
	return func(next Service) Service {
		return &circuitBreakMiddleware{
			next:  next,
			brkrs: brkrs,
		}
	}
}

func guarded[T any](cb *gobreaker.CircuitBreaker[any], fn func() (T, error)) (T, error) {
	res, err := cb.Execute(func() (any, error) {
		v, err := fn()
		return v, err
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		var zero T
		return zero, ErrOverloaded
	}
	v, _ := res.(T)
	return v, err
}

func (c *circuitBreakMiddleware) CreateAccount(ctx context.Context, req CreateAccountReq) (*Account, error) {
	return guarded(c.brkrs.Write, func() (*Account, error) { return c.next.CreateAccount(ctx, req) })
}

func (c *circuitBreakMiddleware) CloseAccount(ctx context.Context, req AccountReq) (*Account, error) {
	return guarded(c.brkrs.Write, func() (*Account, error) { return c.next.CloseAccount(ctx, req) })
}

func (c *circuitBreakMiddleware) ListAccounts(ctx context.Context, req CustomerReq) ([]Account, error) {
	return guarded(c.brkrs.Read, func() ([]Account, error) { return c.next.ListAccounts(ctx, req) })
}

func (c *circuitBreakMiddleware) Process(ctx context.Context, req ChargeReq) (*decimal.Decimal, error) {
	return guarded(c.brkrs.Write, func() (*decimal.Decimal, error) { return c.next.Process(ctx, req) })
}

func (c *circuitBreakMiddleware) Balance(ctx context.Context, req AccountReq) (*decimal.Decimal, error) {
	return guarded(c.brkrs.Read, func() (*decimal.Decimal, error) { return c.next.Balance(ctx, req) })
}

func (c *circuitBreakMiddleware) Transactions(ctx context.Context, req AccountReq) ([]Transaction, error) {
	return guarded(c.brkrs.Read, func() ([]Transaction, error) { return c.next.Transactions(ctx, req) })
}

func (c *circuitBreakMiddleware) Statement(ctx context.Context, w io.Writer, req AccountReq) error {
	_, err := guarded(c.brkrs.Read, func() (struct{}, error) { return struct{}{}, c.next.Statement(ctx, w, req) })
	return err
}

func (c *circuitBreakMiddleware) CreateFixedDeposit(ctx context.Context, req FixedDepositReq) (*FixedDepositView, error) {
	return guarded(c.brkrs.Write, func() (*FixedDepositView, error) { return c.next.CreateFixedDeposit(ctx, req) })
}

func (c *circuitBreakMiddleware) ListFixedDeposits(ctx context.Context, req CustomerReq) (*FixedDepositPortfolio, error) {
	return guarded(c.brkrs.Read, func() (*FixedDepositPortfolio, error) { return c.next.ListFixedDeposits(ctx, req) })
}

func (c *circuitBreakMiddleware) IssueCreditCard(ctx context.Context, req IssueCardReq) (*CreditCardView, error) {
	return guarded(c.brkrs.Write, func() (*CreditCardView, error) { return c.next.IssueCreditCard(ctx, req) })
}

func (c *circuitBreakMiddleware) ListCreditCards(ctx context.Context, req CustomerReq) ([]CreditCardView, error) {
	return guarded(c.brkrs.Read, func() ([]CreditCardView, error) { return c.next.ListCreditCards(ctx, req) })
}

func (c *circuitBreakMiddleware) ApplyLoan(ctx context.Context, req LoanReq) (*Loan, error) {
	return guarded(c.brkrs.Write, func() (*Loan, error) { return c.next.ApplyLoan(ctx, req) })
}

func (c *circuitBreakMiddleware) ListLoans(ctx context.Context, req CustomerReq) ([]Loan, error) {
	return guarded(c.brkrs.Read, func() ([]Loan, error) { return c.next.ListLoans(ctx, req) })
}

func (c *circuitBreakMiddleware) AddBeneficiary(ctx context.Context, req BeneficiaryReq) (*Beneficiary, error) {
	return guarded(c.brkrs.Write, func() (*Beneficiary, error) { return c.next.AddBeneficiary(ctx, req) })
}

func (c *circuitBreakMiddleware) RemoveBeneficiary(ctx context.Context, req RemoveBeneficiaryReq) error {
	_, err := guarded(c.brkrs.Write, func() (struct{}, error) { return struct{}{}, c.next.RemoveBeneficiary(ctx, req) })
	return err
}

func (c *circuitBreakMiddleware) ListBeneficiaries(ctx context.Context, req CustomerReq) ([]Beneficiary, error) {
	return guarded(c.brkrs.Read, func() ([]Beneficiary, error) { return c.next.ListBeneficiaries(ctx, req) })
}
