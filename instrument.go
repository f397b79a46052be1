package corebank

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Metrics holds the request counters and latency histograms of the service.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	moved    *prometheus.CounterVec
}

// NewMetrics creates the service collectors and registers them with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of service requests per method and outcome",
			},
			[]string{"method", "outcome"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Service request latency per method",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		moved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "money_moved_total",
				Help:      "Sum of successfully moved amounts per kind",
			},
			[]string{"kind"},
		),
	}
	reg.MustRegister(m.requests, m.latency, m.moved)
	return m
}

func (m *Metrics) observe(method string, begin time.Time, err error) {
	m.requests.WithLabelValues(method, outcome(err)).Inc()
	m.latency.WithLabelValues(method).Observe(time.Since(begin).Seconds())
}

// addMoved records a successful movement of amount under kind.
func (m *Metrics) addMoved(kind string, amount decimal.Decimal) {
	m.moved.WithLabelValues(kind).Add(amount.Abs().InexactFloat64())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrOverloaded):
		return "overloaded"
	case isRejection(err):
		return "rejected"
	default:
		return "error"
	}
}

type instrumentingMiddleware struct {
	next    Service
	metrics *Metrics
}

var (
	_ Service = (*instrumentingMiddleware)(nil)
)

func NewInstrumentingMiddleware(metrics *Metrics) Middleware {
	return func(next Service) Service {
		return &instrumentingMiddleware{
			next:    next,
			metrics: metrics,
		}
	}
}

func (m *instrumentingMiddleware) CreateAccount(ctx context.Context, req CreateAccountReq) (acct *Account, err error) {
	defer func(begin time.Time) { m.metrics.observe("CreateAccount", begin, err) }(time.Now())
	return m.next.CreateAccount(ctx, req)
}

func (m *instrumentingMiddleware) CloseAccount(ctx context.Context, req AccountReq) (acct *Account, err error) {
	defer func(begin time.Time) { m.metrics.observe("CloseAccount", begin, err) }(time.Now())
	return m.next.CloseAccount(ctx, req)
}

func (m *instrumentingMiddleware) ListAccounts(ctx context.Context, req CustomerReq) (accts []Account, err error) {
	defer func(begin time.Time) { m.metrics.observe("ListAccounts", begin, err) }(time.Now())
	return m.next.ListAccounts(ctx, req)
}

func (m *instrumentingMiddleware) Process(ctx context.Context, req ChargeReq) (bal *decimal.Decimal, err error) {
	defer func(begin time.Time) { m.metrics.observe("Process", begin, err) }(time.Now())
	bal, err = m.next.Process(ctx, req)
	if err == nil {
		m.metrics.addMoved(string(req.Kind), req.Amount)
	}
	return bal, err
}

func (m *instrumentingMiddleware) Balance(ctx context.Context, req AccountReq) (bal *decimal.Decimal, err error) {
	defer func(begin time.Time) { m.metrics.observe("Balance", begin, err) }(time.Now())
	return m.next.Balance(ctx, req)
}

func (m *instrumentingMiddleware) Transactions(ctx context.Context, req AccountReq) (txns []Transaction, err error) {
	defer func(begin time.Time) { m.metrics.observe("Transactions", begin, err) }(time.Now())
	return m.next.Transactions(ctx, req)
}

func (m *instrumentingMiddleware) Statement(ctx context.Context, w io.Writer, req AccountReq) (err error) {
	defer func(begin time.Time) { m.metrics.observe("Statement", begin, err) }(time.Now())
	return m.next.Statement(ctx, w, req)
}

func (m *instrumentingMiddleware) CreateFixedDeposit(ctx context.Context, req FixedDepositReq) (fd *FixedDepositView, err error) {
	defer func(begin time.Time) { m.metrics.observe("CreateFixedDeposit", begin, err) }(time.Now())
	fd, err = m.next.CreateFixedDeposit(ctx, req)
	if err == nil {
		m.metrics.addMoved("fixed_deposit", req.Principal)
	}
	return fd, err
}

func (m *instrumentingMiddleware) ListFixedDeposits(ctx context.Context, req CustomerReq) (p *FixedDepositPortfolio, err error) {
	defer func(begin time.Time) { m.metrics.observe("ListFixedDeposits", begin, err) }(time.Now())
	return m.next.ListFixedDeposits(ctx, req)
}

func (m *instrumentingMiddleware) IssueCreditCard(ctx context.Context, req IssueCardReq) (card *CreditCardView, err error) {
	defer func(begin time.Time) { m.metrics.observe("IssueCreditCard", begin, err) }(time.Now())
	return m.next.IssueCreditCard(ctx, req)
}

func (m *instrumentingMiddleware) ListCreditCards(ctx context.Context, req CustomerReq) (cards []CreditCardView, err error) {
	defer func(begin time.Time) { m.metrics.observe("ListCreditCards", begin, err) }(time.Now())
	return m.next.ListCreditCards(ctx, req)
}

func (m *instrumentingMiddleware) ApplyLoan(ctx context.Context, req LoanReq) (loan *Loan, err error) {
	defer func(begin time.Time) { m.metrics.observe("ApplyLoan", begin, err) }(time.Now())
	return m.next.ApplyLoan(ctx, req)
}

func (m *instrumentingMiddleware) ListLoans(ctx context.Context, req CustomerReq) (loans []Loan, err error) {
	defer func(begin time.Time) { m.metrics.observe("ListLoans", begin, err) }(time.Now())
	return m.next.ListLoans(ctx, req)
}

func (m *instrumentingMiddleware) AddBeneficiary(ctx context.Context, req BeneficiaryReq) (ben *Beneficiary, err error) {
	defer func(begin time.Time) { m.metrics.observe("AddBeneficiary", begin, err) }(time.Now())
	return m.next.AddBeneficiary(ctx, req)
}

func (m *instrumentingMiddleware) RemoveBeneficiary(ctx context.Context, req RemoveBeneficiaryReq) (err error) {
	defer func(begin time.Time) { m.metrics.observe("RemoveBeneficiary", begin, err) }(time.Now())
	return m.next.RemoveBeneficiary(ctx, req)
}

func (m *instrumentingMiddleware) ListBeneficiaries(ctx context.Context, req CustomerReq) (bens []Beneficiary, err error) {
	defer func(begin time.Time) { m.metrics.observe("ListBeneficiaries", begin, err) }(time.Now())
	return m.next.ListBeneficiaries(ctx, req)
}
