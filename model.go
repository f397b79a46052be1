package corebank

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountSavings      AccountType = "Savings"
	AccountChecking     AccountType = "Checking"
	AccountFixedDeposit AccountType = "FixedDeposit"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountSavings, AccountChecking, AccountFixedDeposit:
		return true
	}
	return false
}

type AccountStatus string

const (
	AccountActive AccountStatus = "active"
	AccountClosed AccountStatus = "closed"
)

type Account struct {
	AcctID     snowflake.ID    `json:"id"`
	CustomerID int64           `json:"customer_id"`
	Type       AccountType     `json:"type"`
	Balance    decimal.Decimal `json:"balance"`
	Status     AccountStatus   `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

type TxnKind string

const (
	TxnDeposit    TxnKind = "deposit"
	TxnWithdrawal TxnKind = "withdrawal"
)

func (k TxnKind) Valid() bool {
	return k == TxnDeposit || k == TxnWithdrawal
}

// Signed returns amount as it affects the balance: positive for deposits and
// negative for withdrawals.
func (k TxnKind) Signed(amount decimal.Decimal) decimal.Decimal {
	if k == TxnWithdrawal {
		return amount.Neg()
	}
	return amount
}

// Transaction is an immutable ledger row. Exactly one is written per balance
// change, in the same atomic unit as the change.
type Transaction struct {
	TxnID       snowflake.ID    `json:"id"`
	AcctID      snowflake.ID    `json:"acct_id"`
	Kind        TxnKind         `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

type DepositStatus string

const (
	DepositActive  DepositStatus = "active"
	DepositMatured DepositStatus = "matured"
)

type FixedDeposit struct {
	FDID         snowflake.ID    `json:"id"`
	AcctID       snowflake.ID    `json:"acct_id"`
	Principal    decimal.Decimal `json:"principal"`
	Rate         decimal.Decimal `json:"rate"`
	TermMonths   int             `json:"term_months"`
	StartDate    time.Time       `json:"start_date"`
	MaturityDate time.Time       `json:"maturity_date"`
	Status       DepositStatus   `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

type CardTier string

const (
	TierSilver   CardTier = "Silver"
	TierGold     CardTier = "Gold"
	TierPlatinum CardTier = "Platinum"
)

type CardStatus string

const (
	CardPending CardStatus = "pending"
	CardActive  CardStatus = "active"
)

func (s CardStatus) Valid() bool {
	return s == CardPending || s == CardActive
}

type CreditCard struct {
	CardID     snowflake.ID    `json:"id"`
	CustomerID int64           `json:"customer_id"`
	Number     string          `json:"-"`
	Tier       CardTier        `json:"tier"`
	Limit      decimal.Decimal `json:"credit_limit"`
	Balance    decimal.Decimal `json:"current_balance"`
	ExpiryDate time.Time       `json:"expiry_date"`
	Status     CardStatus      `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

type LoanType string

const (
	LoanPersonal  LoanType = "Personal"
	LoanHome      LoanType = "Home"
	LoanVehicle   LoanType = "Vehicle"
	LoanEducation LoanType = "Education"
	LoanBusiness  LoanType = "Business"
)

func (t LoanType) Valid() bool {
	switch t {
	case LoanPersonal, LoanHome, LoanVehicle, LoanEducation, LoanBusiness:
		return true
	}
	return false
}

type LoanStatus string

const (
	LoanPending LoanStatus = "pending"
)

type Loan struct {
	LoanID     snowflake.ID    `json:"id"`
	CustomerID int64           `json:"customer_id"`
	BranchID   int64           `json:"branch_id"`
	Type       LoanType        `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Rate       decimal.Decimal `json:"interest_rate"`
	TermMonths int             `json:"term_months"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	Status     LoanStatus      `json:"status"`
	Purpose    string          `json:"purpose"`
	CreatedAt  time.Time       `json:"created_at"`
}

type Relationship string

const (
	RelParent  Relationship = "Parent"
	RelSpouse  Relationship = "Spouse"
	RelChild   Relationship = "Child"
	RelSibling Relationship = "Sibling"
	RelFriend  Relationship = "Friend"
	RelOther   Relationship = "Other"
)

func (r Relationship) Valid() bool {
	switch r {
	case RelParent, RelSpouse, RelChild, RelSibling, RelFriend, RelOther:
		return true
	}
	return false
}

type Beneficiary struct {
	BenID         snowflake.ID `json:"id"`
	CustomerID    int64        `json:"customer_id"`
	AcctID        snowflake.ID `json:"acct_id"`
	Name          string       `json:"name"`
	AccountNumber string       `json:"account_number"`
	BankName      string       `json:"bank_name"`
	RoutingCode   string       `json:"routing_code"`
	Relationship  Relationship `json:"relationship"`
	CreatedAt     time.Time    `json:"created_at"`
}
