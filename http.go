package corebank

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const customerHeader = "customer-id"

var (
	statusOK = []byte(`{"status":"OK"}`)
)

type balanceJSONResp struct {
	Balance decimal.Decimal `json:"balance"`
}

func NewHTTPHandler(svc Service, log *zerolog.Logger) http.Handler {
	hndlr := &httpHandler{
		Svc: svc,
		Log: log,
	}
	mux := chi.NewMux()
	mux.NotFound(HTTPNotFound)
	mux.Route("/accounts", func(r chi.Router) {
		r.Route("/{acctID:[0-9]+}", func(rr chi.Router) {
			rr.Post("/deposit", hndlr.Deposit)
			rr.Post("/withdraw", hndlr.Withdraw)
			rr.Post("/close", hndlr.Close)
			rr.Get("/balance", hndlr.Balance)
			rr.Get("/transactions", hndlr.Transactions)
			rr.Get("/statement", hndlr.Statement)
		})
	})
	mux.Route("/customers/{custID:[0-9]+}", func(r chi.Router) {
		r.Post("/accounts", hndlr.CreateAccount)
		r.Get("/accounts", hndlr.ListAccounts)
		r.Post("/fixed-deposits", hndlr.CreateFixedDeposit)
		r.Get("/fixed-deposits", hndlr.ListFixedDeposits)
		r.Post("/credit-cards", hndlr.IssueCreditCard)
		r.Get("/credit-cards", hndlr.ListCreditCards)
		r.Post("/loans", hndlr.ApplyLoan)
		r.Get("/loans", hndlr.ListLoans)
		r.Post("/beneficiaries", hndlr.AddBeneficiary)
		r.Get("/beneficiaries", hndlr.ListBeneficiaries)
		r.Delete("/beneficiaries", hndlr.RemoveBeneficiary)
		r.Delete("/beneficiaries/{benID:[0-9]+}", hndlr.RemoveBeneficiary)
	})

	return mux
}

type httpHandler struct {
	Svc Service
	Log *zerolog.Logger
}

func (h *httpHandler) decode(r *http.Request, method string, v any) error {
	buf, err := io.ReadAll(r.Body)
	defer r.Body.Close()
	if err != nil {
		h.Log.Err(err).Str("method", method).Msg("error reading HTTP request")
		return ErrInternalServer
	}
	if err = json.Unmarshal(buf, v); err != nil {
		h.Log.Err(err).Str("method", method).Msg("error unmarshalling JSON")
		return ErrBadRequest{Fields: map[string]string{"request body": "malformed JSON"}}
	}
	return nil
}

// accountReq reads the account ID from the path and the caller from the
// customer-id header.
func (h *httpHandler) accountReq(r *http.Request, method string) (AccountReq, error) {
	cust, err := strconv.ParseInt(r.Header.Get(customerHeader), 10, 64)
	if err != nil || cust <= 0 {
		h.Log.Error().Str("method", method).Msg("missing/invalid customer-id")
		return AccountReq{}, ErrBadRequest{Fields: map[string]string{customerHeader: "missing or invalid"}}
	}
	acctID, err := snowflake.ParseString(chi.URLParam(r, "acctID"))
	if err != nil {
		h.Log.Err(err).Str("method", method).Msg("error parsing account ID")
		return AccountReq{}, ErrBadRequest{Fields: map[string]string{"acctID": "invalid format"}}
	}
	return AccountReq{AcctID: acctID, CustomerID: cust}, nil
}

func (h *httpHandler) customer(r *http.Request, method string) (int64, error) {
	cust, err := strconv.ParseInt(chi.URLParam(r, "custID"), 10, 64)
	if err != nil {
		h.Log.Err(err).Str("method", method).Msg("error parsing customer ID")
		return 0, ErrBadRequest{Fields: map[string]string{"custID": "invalid format"}}
	}
	return cust, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("response encoding failed")
	}
}

func (h *httpHandler) charge(w http.ResponseWriter, r *http.Request, kind TxnKind) {
	method := string(kind)
	var req ChargeReq
	if err := h.decode(r, method, &req); err != nil {
		WriteHTTPError(w, err)
		return
	}
	areq, err := h.accountReq(r, method)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	req.Kind = kind
	req.AcctID = areq.AcctID
	req.CustomerID = areq.CustomerID
	bal, err := h.Svc.Process(r.Context(), req)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, balanceJSONResp{Balance: *bal})
}

func (h *httpHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.charge(w, r, TxnDeposit)
}

func (h *httpHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.charge(w, r, TxnWithdrawal)
}

func (h *httpHandler) Close(w http.ResponseWriter, r *http.Request) {
	req, err := h.accountReq(r, "close")
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	acct, err := h.Svc.CloseAccount(r.Context(), req)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, acct)
}

func (h *httpHandler) Balance(w http.ResponseWriter, r *http.Request) {
	req, err := h.accountReq(r, "balance")
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	bal, err := h.Svc.Balance(r.Context(), req)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, balanceJSONResp{Balance: *bal})
}

func (h *httpHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	req, err := h.accountReq(r, "transactions")
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	txns, err := h.Svc.Transactions(r.Context(), req)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, txns)
}

func (h *httpHandler) Statement(w http.ResponseWriter, r *http.Request) {
	req, err := h.accountReq(r, "statement")
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	// rendered into a buffer so a failure can still produce a JSON error
	buf := new(bytes.Buffer)
	if err = h.Svc.Statement(r.Context(), buf, req); err != nil {
		WriteHTTPError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="statement-`+req.AcctID.String()+`.pdf"`)
	if _, err = buf.WriteTo(w); err != nil {
		h.Log.Err(err).Str("method", "statement").Msg("error writing statement")
	}
}

func (h *httpHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountReq
	if err := h.decode(r, "create account", &req); err != nil {
		WriteHTTPError(w, err)
		return
	}
	cust, err := h.customer(r, "create account")
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	req.CustomerID = cust
	acct, err := h.Svc.CreateAccount(r.Context(), req)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, acct)
}

func (h *httpHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	cust, err := h.customer(r, "list accounts")
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	accts, err := h.Svc.ListAccounts(r.Context(), CustomerReq{CustomerID: cust})
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, accts)
}

func (h *httpHandler) CreateFixedDeposit(w http.ResponseWriter, r *http.Request) {
	var req FixedDepositReq
	if err := h.decode(r, "create fixed deposit", &req); err != nil {
		WriteHTTPError(w, err)
		return
	}
	cust, err := h.customer(r, "create fixed deposit")
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	req.CustomerID = cust
	fd, err := h.Svc.CreateFixedDeposit(r.Context(), req)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, fd)
}

func (h *httpHandler) ListFixedDeposits(w http.ResponseWriter, r *http.Request) {
	cust, err := h.customer(r, "list fixed deposits")
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	p, err := h.Svc.ListFixedDeposits(r.Context(), CustomerReq{CustomerID: cust})
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *httpHandler) IssueCreditCard(w http.ResponseWriter, r *http.Request) {
	var req IssueCardReq
	if err := h.decode(r, "issue credit card", &req); err != nil {
		WriteHTTPError(w, err)
		return
	}
	cust, err := h.customer(r, "issue credit card")
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	req.CustomerID = cust
	card, err := h.Svc.IssueCreditCard(r.Context(), req)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, card)
}

func (h *httpHandler) ListCreditCards(w http.ResponseWriter, r *http.Request) {
	cust, err := h.customer(r, "list credit cards")
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	cards, err := h.Svc.ListCreditCards(r.Context(), CustomerReq{CustomerID: cust})
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cards)
}

func (h *httpHandler) ApplyLoan(w http.ResponseWriter, r *http.Request) {
	var req LoanReq
	if err := h.decode(r, "apply loan", &req); err != nil {
		WriteHTTPError(w, err)
		return
	}
	cust, err := h.customer(r, "apply loan")
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	req.CustomerID = cust
	loan, err := h.Svc.ApplyLoan(r.Context(), req)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, loan)
}

func (h *httpHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	cust, err := h.customer(r, "list loans")
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	loans, err := h.Svc.ListLoans(r.Context(), CustomerReq{CustomerID: cust})
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loans)
}

func (h *httpHandler) AddBeneficiary(w http.ResponseWriter, r *http.Request) {
	var req BeneficiaryReq
	if err := h.decode(r, "add beneficiary", &req); err != nil {
		WriteHTTPError(w, err)
		return
	}
	cust, err := h.customer(r, "add beneficiary")
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	req.CustomerID = cust
	ben, err := h.Svc.AddBeneficiary(r.Context(), req)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ben)
}

func (h *httpHandler) ListBeneficiaries(w http.ResponseWriter, r *http.Request) {
	cust, err := h.customer(r, "list beneficiaries")
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	bens, err := h.Svc.ListBeneficiaries(r.Context(), CustomerReq{CustomerID: cust})
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bens)
}

// RemoveBeneficiary serves both DELETE /beneficiaries/{benID} and
// DELETE /beneficiaries?name=...
func (h *httpHandler) RemoveBeneficiary(w http.ResponseWriter, r *http.Request) {
	cust, err := h.customer(r, "remove beneficiary")
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	req := RemoveBeneficiaryReq{
		CustomerID: cust,
		Name:       r.URL.Query().Get("name"),
	}
	if pid := chi.URLParam(r, "benID"); pid != "" {
		req.BenID, err = snowflake.ParseString(pid)
		if err != nil {
			h.Log.Err(err).Str("method", "remove beneficiary").Msg("error parsing beneficiary ID")
			WriteHTTPError(w, ErrBadRequest{Fields: map[string]string{"benID": "invalid format"}})
			return
		}
		req.Name = ""
	}
	if err = h.Svc.RemoveBeneficiary(r.Context(), req); err != nil {
		WriteHTTPError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(statusOK); err != nil {
		h.Log.Err(err).Str("method", "remove beneficiary").Msg("error writing response")
	}
}

func WriteHTTPError(w http.ResponseWriter, err error) {
	var (
		errnf  ErrNotFound
		errbr  ErrBadRequest
		errisf ErrInsufficientFunds
		errwat ErrWrongAccountType
		erritl ErrIncomeTooLow
		errnfa ErrNoFundingAccount
	)
	switch {
	case errors.As(err, &errnf):
		writeJSON(w, http.StatusNotFound, errnf)
	case errors.As(err, &errbr):
		writeJSON(w, http.StatusBadRequest, errbr)
	case errors.As(err, &errisf):
		writeJSON(w, http.StatusConflict, errisf)
	case errors.Is(err, ErrDuplicateCardNumber):
		writeJSON(w, http.StatusConflict, map[string]string{"message": err.Error()})
	case errors.As(err, &errwat):
		writeJSON(w, http.StatusUnprocessableEntity, errwat)
	case errors.As(err, &erritl):
		writeJSON(w, http.StatusUnprocessableEntity, erritl)
	case errors.As(err, &errnfa):
		writeJSON(w, http.StatusUnprocessableEntity, errnfa)
	case errors.Is(err, ErrInvalidTier):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": err.Error()})
	case errors.Is(err, ErrOverloaded), IsStorageFailure(err):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "service unavailable"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "server error"})
	}
}

func HTTPNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"path": r.URL.Path})
}
