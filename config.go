package corebank

import (
	"errors"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		ConnectionString string `yaml:"conn_str"`
		// Memory selects the in-process store instead of Postgres.
		Memory bool `yaml:"memory"`
	} `yaml:"database"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	NodeID int64        `yaml:"node_id"`
	Limits LimitsConfig `yaml:"limits"`
	Policy Policy       `yaml:"policy"`
}

type LimitsConfig struct {
	Write          int64         `yaml:"write"`
	Read           int64         `yaml:"read"`
	AcquireTimeout time.Duration `yaml:"acquire_timeout"`
	// BreakerFailures is the number of consecutive storage failures that
	// opens the circuit.
	BreakerFailures uint32        `yaml:"breaker_failures"`
	BreakerTimeout  time.Duration `yaml:"breaker_timeout"`
}

type Policy struct {
	TransactableTypes []AccountType      `yaml:"transactable_types"`
	TermModel         TermModel          `yaml:"term_model"`
	FixedDeposit      FixedDepositPolicy `yaml:"fixed_deposit"`
	CreditCard        CreditCardPolicy   `yaml:"credit_card"`
	Loan              LoanPolicy         `yaml:"loan"`
}

type FixedDepositPolicy struct {
	MinPrincipal decimal.Decimal `yaml:"min_principal"`
	Terms        []int           `yaml:"terms"`
}

type CreditCardPolicy struct {
	ExpiryYears int `yaml:"expiry_years"`
}

type LoanPolicy struct {
	MinAmount decimal.Decimal `yaml:"min_amount"`
	MinTerm   int             `yaml:"min_term"`
	MaxTerm   int             `yaml:"max_term"`
	// Rate is a flat placeholder applied to every application regardless of
	// loan type or term.
	Rate decimal.Decimal `yaml:"rate"`
}

func DefaultConfig() Config {
	var cfg Config
	cfg.Server.Addr = ":3000"
	cfg.NodeID = 1
	cfg.Limits = LimitsConfig{
		Write:           64,
		Read:            256,
		AcquireTimeout:  2 * time.Second,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
	}
	cfg.Policy = DefaultPolicy()
	return cfg
}

func DefaultPolicy() Policy {
	return Policy{
		TransactableTypes: []AccountType{AccountSavings},
		TermModel:         TermCalendar,
		FixedDeposit: FixedDepositPolicy{
			MinPrincipal: decimal.NewFromInt(1000),
			Terms:        []int{12, 24, 36, 60},
		},
		CreditCard: CreditCardPolicy{
			ExpiryYears: 5,
		},
		Loan: LoanPolicy{
			MinAmount: decimal.NewFromInt(1000),
			MinTerm:   6,
			MaxTerm:   360,
			Rate:      decimal.RequireFromString("8.5"),
		},
	}
}

// LoadConfig decodes YAML from r over DefaultConfig, so omitted keys keep
// their defaults.
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}
