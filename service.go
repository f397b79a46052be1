package corebank

import (
	"context"
	"io"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type CustomerReq struct {
	CustomerID int64
}

type AccountReq struct {
	AcctID     snowflake.ID
	CustomerID int64
}

type CreateAccountReq struct {
	CustomerID     int64           `json:"-"`
	Type           AccountType     `json:"type"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

type ChargeReq struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Kind        TxnKind         `json:"-"`
	AcctID      snowflake.ID    `json:"-"`
	CustomerID  int64           `json:"-"`
}

type FixedDepositReq struct {
	CustomerID int64           `json:"-"`
	Principal  decimal.Decimal `json:"principal"`
	TermMonths int             `json:"term_months"`
}

type IssueCardReq struct {
	CustomerID   int64           `json:"-"`
	Tier         CardTier        `json:"tier"`
	AnnualIncome decimal.Decimal `json:"annual_income"`
	Status       CardStatus      `json:"status"`
}

type LoanReq struct {
	CustomerID int64           `json:"-"`
	BranchID   int64           `json:"branch_id"`
	Type       LoanType        `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	TermMonths int             `json:"term_months"`
	Purpose    string          `json:"purpose"`
}

type BeneficiaryReq struct {
	CustomerID    int64        `json:"-"`
	Name          string       `json:"name"`
	AccountNumber string       `json:"account_number"`
	BankName      string       `json:"bank_name"`
	RoutingCode   string       `json:"routing_code"`
	Relationship  Relationship `json:"relationship"`
}

// RemoveBeneficiaryReq identifies the beneficiary by BenID, or by Name when
// BenID is zero.
type RemoveBeneficiaryReq struct {
	CustomerID int64
	BenID      snowflake.ID
	Name       string
}

type Service interface {
	CreateAccount(context.Context, CreateAccountReq) (*Account, error)
	CloseAccount(context.Context, AccountReq) (*Account, error)
	ListAccounts(context.Context, CustomerReq) ([]Account, error)
	Process(context.Context, ChargeReq) (*decimal.Decimal, error)
	Balance(context.Context, AccountReq) (*decimal.Decimal, error)
	Transactions(context.Context, AccountReq) ([]Transaction, error)
	Statement(context.Context, io.Writer, AccountReq) error

	CreateFixedDeposit(context.Context, FixedDepositReq) (*FixedDepositView, error)
	ListFixedDeposits(context.Context, CustomerReq) (*FixedDepositPortfolio, error)

	IssueCreditCard(context.Context, IssueCardReq) (*CreditCardView, error)
	ListCreditCards(context.Context, CustomerReq) ([]CreditCardView, error)

	ApplyLoan(context.Context, LoanReq) (*Loan, error)
	ListLoans(context.Context, CustomerReq) ([]Loan, error)

	AddBeneficiary(context.Context, BeneficiaryReq) (*Beneficiary, error)
	RemoveBeneficiary(context.Context, RemoveBeneficiaryReq) error
	ListBeneficiaries(context.Context, CustomerReq) ([]Beneficiary, error)
}

type ServiceOption func(*serviceImpl)

// WithClock overrides time.Now for every engine.
func WithClock(c Clock) ServiceOption {
	return func(s *serviceImpl) {
		s.now = c
	}
}

func NewService(repo Repository, node *snowflake.Node, policy Policy, log *zerolog.Logger, opts ...ServiceOption) (*serviceImpl, error) {
	if err := validatePolicy(policy); err != nil {
		return nil, err
	}
	svc := &serviceImpl{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
	for _, o := range opts {
		o(svc)
	}
	svc.ledger = NewLedger(repo, node, svc.now, policy.TransactableTypes)
	svc.deposits = NewFixedDepositEngine(repo, node, svc.now, policy.FixedDeposit, policy.TermModel)
	svc.cards = NewCreditLineEngine(repo, node, svc.now, policy.CreditCard)
	svc.loans = NewLoanEngine(repo, node, svc.now, policy.Loan, policy.TermModel)
	svc.bens = NewBeneficiaryRegistry(repo, node, svc.now)
	return svc, nil
}

func validatePolicy(p Policy) error {
	fields := map[string]string{}
	if !p.TermModel.Valid() {
		fields["policy.term_model"] = "must be calendar or thirty_day"
	}
	if len(p.TransactableTypes) == 0 {
		fields["policy.transactable_types"] = "at least one account type"
	}
	for _, t := range p.TransactableTypes {
		if !t.Valid() {
			fields["policy.transactable_types"] = "unknown account type " + string(t)
		}
	}
	if len(p.FixedDeposit.Terms) == 0 {
		fields["policy.fixed_deposit.terms"] = "at least one term"
	}
	if p.CreditCard.ExpiryYears <= 0 {
		fields["policy.credit_card.expiry_years"] = "must be positive"
	}
	if p.Loan.MinTerm <= 0 || p.Loan.MaxTerm < p.Loan.MinTerm {
		fields["policy.loan"] = "invalid term range"
	}
	if len(fields) > 0 {
		return ErrBadRequest{Fields: fields}
	}
	return nil
}

type serviceImpl struct {
	repo     Repository
	log      *zerolog.Logger
	now      Clock
	ledger   *Ledger
	deposits *FixedDepositEngine
	cards    *CreditLineEngine
	loans    *LoanEngine
	bens     *BeneficiaryRegistry
}

var (
	_ Service = (*serviceImpl)(nil)
)

func (s *serviceImpl) CreateAccount(ctx context.Context, req CreateAccountReq) (*Account, error) {
	acct, err := s.ledger.OpenAccount(ctx, req.CustomerID, req.Type, req.InitialBalance)
	if err != nil {
		return nil, s.fail(err, "create account")
	}
	s.log.Info().
		Int64("customer", req.CustomerID).
		Str("acct", acct.AcctID.String()).
		Str("type", string(acct.Type)).
		Msg("account opened")
	return acct, nil
}

func (s *serviceImpl) CloseAccount(ctx context.Context, req AccountReq) (*Account, error) {
	acct, err := s.ledger.Close(ctx, req.AcctID)
	if err != nil {
		return nil, s.fail(err, "close account")
	}
	s.log.Info().Str("acct", req.AcctID.String()).Msg("account closed")
	return acct, nil
}

func (s *serviceImpl) ListAccounts(ctx context.Context, req CustomerReq) ([]Account, error) {
	return s.ledger.Accounts(ctx, req.CustomerID)
}

func (s *serviceImpl) Process(ctx context.Context, req ChargeReq) (*decimal.Decimal, error) {
	bal, err := s.ledger.Process(ctx, req.AcctID, req.Kind, req.Amount, req.Description)
	if err != nil {
		return nil, s.fail(err, string(req.Kind))
	}
	s.log.Info().
		Str("acct", req.AcctID.String()).
		Str("kind", string(req.Kind)).
		Str("amount", req.Amount.StringFixed(2)).
		Msg("transaction applied")
	return bal, nil
}

func (s *serviceImpl) Balance(ctx context.Context, req AccountReq) (*decimal.Decimal, error) {
	return s.ledger.Balance(ctx, req.AcctID)
}

func (s *serviceImpl) Transactions(ctx context.Context, req AccountReq) ([]Transaction, error) {
	return s.ledger.Transactions(ctx, req.AcctID)
}

func (s *serviceImpl) Statement(ctx context.Context, w io.Writer, req AccountReq) error {
	acct, err := s.repo.GetAccount(ctx, req.AcctID)
	if err != nil {
		return err
	}
	txns, err := s.ledger.Transactions(ctx, req.AcctID)
	if err != nil {
		return err
	}
	if err = renderStatement(w, acct, txns, s.now()); err != nil {
		return s.fail(err, "statement")
	}
	return nil
}

func (s *serviceImpl) CreateFixedDeposit(ctx context.Context, req FixedDepositReq) (*FixedDepositView, error) {
	fd, err := s.deposits.Create(ctx, req.CustomerID, req.Principal, req.TermMonths)
	if err != nil {
		return nil, s.fail(err, "create fixed deposit")
	}
	s.log.Info().
		Int64("customer", req.CustomerID).
		Str("fd", fd.FDID.String()).
		Str("funding_acct", fd.AcctID.String()).
		Str("principal", fd.Principal.StringFixed(2)).
		Msg("fixed deposit created")
	return fd, nil
}

func (s *serviceImpl) ListFixedDeposits(ctx context.Context, req CustomerReq) (*FixedDepositPortfolio, error) {
	return s.deposits.List(ctx, req.CustomerID)
}

func (s *serviceImpl) IssueCreditCard(ctx context.Context, req IssueCardReq) (*CreditCardView, error) {
	card, err := s.cards.Issue(ctx, req.CustomerID, req.Tier, req.AnnualIncome, req.Status)
	if err != nil {
		return nil, s.fail(err, "issue credit card")
	}
	s.log.Info().
		Int64("customer", req.CustomerID).
		Str("card", card.CardID.String()).
		Str("tier", string(card.Tier)).
		Msg("credit card issued")
	return card, nil
}

func (s *serviceImpl) ListCreditCards(ctx context.Context, req CustomerReq) ([]CreditCardView, error) {
	return s.cards.List(ctx, req.CustomerID)
}

func (s *serviceImpl) ApplyLoan(ctx context.Context, req LoanReq) (*Loan, error) {
	loan, err := s.loans.Apply(ctx, req.CustomerID, req.BranchID, req.Type, req.Amount, req.TermMonths, req.Purpose)
	if err != nil {
		return nil, s.fail(err, "apply loan")
	}
	s.log.Info().
		Int64("customer", req.CustomerID).
		Str("loan", loan.LoanID.String()).
		Msg("loan application recorded")
	return loan, nil
}

func (s *serviceImpl) ListLoans(ctx context.Context, req CustomerReq) ([]Loan, error) {
	return s.loans.List(ctx, req.CustomerID)
}

func (s *serviceImpl) AddBeneficiary(ctx context.Context, req BeneficiaryReq) (*Beneficiary, error) {
	ben, err := s.bens.Add(ctx, Beneficiary{
		CustomerID:    req.CustomerID,
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
		RoutingCode:   req.RoutingCode,
		Relationship:  req.Relationship,
	})
	if err != nil {
		return nil, s.fail(err, "add beneficiary")
	}
	return ben, nil
}

func (s *serviceImpl) RemoveBeneficiary(ctx context.Context, req RemoveBeneficiaryReq) error {
	var err error
	if req.BenID != 0 {
		err = s.bens.Remove(ctx, req.CustomerID, req.BenID)
	} else {
		err = s.bens.RemoveByName(ctx, req.CustomerID, req.Name)
	}
	if err != nil {
		return s.fail(err, "remove beneficiary")
	}
	return nil
}

func (s *serviceImpl) ListBeneficiaries(ctx context.Context, req CustomerReq) ([]Beneficiary, error) {
	return s.bens.List(ctx, req.CustomerID)
}

// fail logs storage and unexpected failures at error level. Rejections are
// the caller's to present and are only logged at debug.
func (s *serviceImpl) fail(err error, op string) error {
	if isRejection(err) {
		s.log.Debug().Err(err).Str("op", op).Msg("operation rejected")
	} else {
		s.log.Err(err).Str("op", op).Msg("operation failed")
	}
	return err
}
