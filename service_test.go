package corebank_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/arhyth/corebank"
	"github.com/arhyth/corebank/mocks"
)

func TestNewService(t *testing.T) {
	t.Run("returns an error on an invalid policy", func(tt *testing.T) {
		as := assert.New(tt)
		ctrl := gomock.NewController(tt)
		repo := mocks.NewMockRepository(ctrl)
		log := zerolog.Nop()
		policy := corebank.DefaultPolicy()
		policy.TermModel = "lunar"
		policy.TransactableTypes = nil

		_, err := corebank.NewService(repo, newNode(tt), policy, &log)
		br := corebank.ErrBadRequest{}
		as.ErrorAs(err, &br)
		as.Contains(br.Fields, "policy.term_model")
		as.Contains(br.Fields, "policy.transactable_types")
	})
}

func TestServiceStorageFailure(t *testing.T) {
	as := assert.New(t)
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	log := zerolog.Nop()
	acct := &corebank.Account{AcctID: 1, CustomerID: 1, Type: corebank.AccountSavings, Balance: decimal.NewFromInt(10), Status: corebank.AccountActive}
	repo.EXPECT().GetAccount(gomock.Any(), acct.AcctID).Return(acct, nil)
	repo.EXPECT().
		AppendTransaction(gomock.Any(), gomock.Any()).
		Return(nil, corebank.ErrStorage{Op: "append transaction", Err: fmt.Errorf("connection reset")})

	svc, err := corebank.NewService(repo, newNode(t), corebank.DefaultPolicy(), &log)
	as.Nil(err)
	_, err = svc.Process(context.Background(), corebank.ChargeReq{
		AcctID:     acct.AcctID,
		CustomerID: 1,
		Kind:       corebank.TxnDeposit,
		Amount:     decimal.NewFromInt(1),
	})
	as.True(corebank.IsStorageFailure(err))
}

// bankServer wires the full middleware chain over an in-memory store, the same
// way cmd/server does.
func bankServer(t *testing.T) http.Handler {
	log := zerolog.Nop()
	repo := corebank.NewMemoryStore()
	cfg := corebank.DefaultConfig()
	svc, err := corebank.NewService(repo, newNode(t), cfg.Policy, &log,
		corebank.WithClock(fixedClock(testDay)))
	require.Nil(t, err)
	wrapped := corebank.Chain(svc,
		corebank.NewInstrumentingMiddleware(corebank.NewMetrics("corebank", prometheus.NewRegistry())),
		corebank.NewLimitMiddleware(corebank.NewServiceLimits(cfg.Limits)),
		corebank.NewCircuitBreakMiddleware(corebank.NewServiceBreaker(cfg.Limits, &log)),
		corebank.NewValidationMiddleware(repo),
	)
	return corebank.NewHTTPHandler(wrapped, &log)
}

func call(t *testing.T, h http.Handler, method, path, customer, body string, out any) int {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	}
	if customer != "" {
		req.Header.Set("customer-id", customer)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if out != nil && w.Code < 300 {
		require.Nil(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestServiceEndToEnd(t *testing.T) {
	as := assert.New(t)
	reqrd := require.New(t)
	h := bankServer(t)

	var acct corebank.Account
	reqrd.Equal(http.StatusCreated, call(t, h, http.MethodPost, "/customers/1/accounts", "",
		`{"type":"Savings","initial_balance":"500"}`, &acct))
	as.True(acct.Balance.Equal(decimal.NewFromInt(500)))
	acctPath := "/accounts/" + acct.AcctID.String()

	var bal struct {
		Balance decimal.Decimal `json:"balance"`
	}
	reqrd.Equal(http.StatusOK, call(t, h, http.MethodPost, acctPath+"/withdraw", "1", `{"amount":"120.50"}`, &bal))
	as.Equal("379.50", bal.Balance.StringFixed(2))

	as.Equal(http.StatusConflict, call(t, h, http.MethodPost, acctPath+"/withdraw", "1", `{"amount":"1000"}`, nil))
	as.Equal(http.StatusNotFound, call(t, h, http.MethodPost, acctPath+"/deposit", "2", `{"amount":"1"}`, nil),
		"other customers cannot move money")
	as.Equal(http.StatusNotFound, call(t, h, http.MethodGet, acctPath+"/balance", "2", "", nil))

	var txns []corebank.Transaction
	reqrd.Equal(http.StatusOK, call(t, h, http.MethodGet, acctPath+"/transactions", "1", "", &txns))
	reqrd.Len(txns, 2)
	as.Equal(corebank.TxnWithdrawal, txns[0].Kind)

	as.Equal(http.StatusBadRequest, call(t, h, http.MethodPost, "/customers/1/fixed-deposits", "",
		`{"principal":"200","term_months":12}`, nil), "below minimum principal")
	as.Equal(http.StatusUnprocessableEntity, call(t, h, http.MethodPost, "/customers/2/fixed-deposits", "",
		`{"principal":"1000","term_months":12}`, nil))
	reqrd.Equal(http.StatusOK, call(t, h, http.MethodPost, acctPath+"/deposit", "1", `{"amount":"1000"}`, &bal))
	var fd corebank.FixedDepositView
	reqrd.Equal(http.StatusCreated, call(t, h, http.MethodPost, "/customers/1/fixed-deposits", "",
		`{"principal":"1000","term_months":12}`, &fd))
	as.Equal("1060.00", fd.MaturityValue.StringFixed(2))
	var pf corebank.FixedDepositPortfolio
	reqrd.Equal(http.StatusOK, call(t, h, http.MethodGet, "/customers/1/fixed-deposits", "", "", &pf))
	as.Equal("60.00", pf.ExpectedEarnings.StringFixed(2))

	var cards []corebank.CreditCardView
	reqrd.Equal(http.StatusCreated, call(t, h, http.MethodPost, "/customers/1/credit-cards", "",
		`{"tier":"Silver","annual_income":"100000","status":"active"}`, nil))
	reqrd.Equal(http.StatusOK, call(t, h, http.MethodGet, "/customers/1/credit-cards", "", "", &cards))
	reqrd.Len(cards, 1)
	as.Equal("40000.00", cards[0].Limit.StringFixed(2))

	var loan corebank.Loan
	reqrd.Equal(http.StatusCreated, call(t, h, http.MethodPost, "/customers/1/loans", "",
		`{"branch_id":3,"type":"Education","amount":"5000","term_months":24,"purpose":"masters"}`, &loan))
	as.Equal(corebank.LoanPending, loan.Status)
	as.Equal(time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), loan.EndDate)

	var ben corebank.Beneficiary
	reqrd.Equal(http.StatusCreated, call(t, h, http.MethodPost, "/customers/1/beneficiaries", "",
		`{"name":"Ana","account_number":"001","bank_name":"Northwind","routing_code":"NW1","relationship":"Friend"}`, &ben))
	as.Equal(acct.AcctID, ben.AcctID)
	as.Equal(http.StatusOK, call(t, h, http.MethodDelete, "/customers/1/beneficiaries?name=Ana", "", "", nil))
	as.Equal(http.StatusNotFound, call(t, h, http.MethodDelete, "/customers/1/beneficiaries?name=Ana", "", "", nil))

	req := httptest.NewRequest(http.MethodGet, acctPath+"/statement", nil)
	req.Header.Set("customer-id", "1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	reqrd.Equal(http.StatusOK, w.Code)
	as.True(bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}
