package corebank

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

const (
	cardNumberDigits      = 16
	maxCardNumberAttempts = 5
)

var (
	limitIncomeRatio = decimal.RequireFromString("0.4")
	limitCeiling     = decimal.NewFromInt(1_000_000)
	cardNumberSpace  = new(big.Int).Exp(big.NewInt(10), big.NewInt(cardNumberDigits), nil)
)

// TierRange is the inclusive credit-limit bracket of a card tier.
type TierRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

var cardTiers = map[CardTier]TierRange{
	TierSilver:   {Min: decimal.RequireFromString("0.00"), Max: decimal.RequireFromString("50000.00")},
	TierGold:     {Min: decimal.RequireFromString("50000.01"), Max: decimal.RequireFromString("200000.00")},
	TierPlatinum: {Min: decimal.RequireFromString("200000.01"), Max: decimal.RequireFromString("1000000.00")},
}

func TierBounds(tier CardTier) (TierRange, bool) {
	r, ok := cardTiers[tier]
	return r, ok
}

// ProposeLimit computes min(income × 0.4, 1,000,000) and fits it to the tier:
// below the tier minimum is an error, above the maximum is clamped.
func ProposeLimit(tier CardTier, annualIncome decimal.Decimal) (decimal.Decimal, error) {
	bounds, ok := cardTiers[tier]
	if !ok {
		return decimal.Zero, ErrInvalidTier
	}
	proposed := decimal.Min(annualIncome.Mul(limitIncomeRatio), limitCeiling)
	if proposed.LessThan(bounds.Min) {
		return decimal.Zero, ErrIncomeTooLow{Tier: tier, Proposed: proposed, Minimum: bounds.Min}
	}
	if proposed.GreaterThan(bounds.Max) {
		proposed = bounds.Max
	}
	return proposed.Truncate(2), nil
}

// CreditCardView is a card as reported to callers.
type CreditCardView struct {
	CreditCard
	MaskedNumber    string          `json:"card_number"`
	AvailableCredit decimal.Decimal `json:"available_credit"`
}

func viewCard(c CreditCard) CreditCardView {
	return CreditCardView{
		CreditCard:      c,
		MaskedNumber:    MaskCardNumber(c.Number),
		AvailableCredit: c.Limit.Sub(c.Balance),
	}
}

// MaskCardNumber keeps only the last four digits.
func MaskCardNumber(number string) string {
	if len(number) < 4 {
		return "xxxx-xxxx-xxxx-xxxx"
	}
	return "xxxx-xxxx-xxxx-" + number[len(number)-4:]
}

type CreditLineEngine struct {
	repo        Repository
	node        *snowflake.Node
	now         Clock
	policy      CreditCardPolicy
	cardNumbers func() (string, error)
}

func NewCreditLineEngine(repo Repository, node *snowflake.Node, now Clock, policy CreditCardPolicy) *CreditLineEngine {
	return &CreditLineEngine{
		repo:        repo,
		node:        node,
		now:         now,
		policy:      policy,
		cardNumbers: randomCardNumber,
	}
}

// Issue creates a card with the given initial status. The card number is
// regenerated when it collides with an issued one.
func (e *CreditLineEngine) Issue(ctx context.Context, customerID int64, tier CardTier, annualIncome decimal.Decimal, status CardStatus) (*CreditCardView, error) {
	if !status.Valid() {
		return nil, ErrBadRequest{Fields: map[string]string{"status": "must be pending or active"}}
	}
	if err := checkMoney("annual_income", annualIncome, true); err != nil {
		return nil, err
	}
	limit, err := ProposeLimit(tier, annualIncome)
	if err != nil {
		return nil, err
	}

	now := e.now().UTC()
	card := CreditCard{
		CardID:     e.node.Generate(),
		CustomerID: customerID,
		Tier:       tier,
		Limit:      limit,
		Balance:    decimal.Zero,
		ExpiryDate: DateOf(now).AddDate(e.policy.ExpiryYears, 0, 0),
		Status:     status,
		CreatedAt:  now,
	}
	for attempt := 0; attempt < maxCardNumberAttempts; attempt++ {
		if card.Number, err = e.cardNumbers(); err != nil {
			return nil, err
		}
		err = e.repo.CreateCreditCard(ctx, card)
		if !errors.Is(err, ErrDuplicateCardNumber) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	v := viewCard(card)
	return &v, nil
}

func (e *CreditLineEngine) List(ctx context.Context, customerID int64) ([]CreditCardView, error) {
	cards, err := e.repo.ListCreditCards(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]CreditCardView, 0, len(cards))
	for _, c := range cards {
		out = append(out, viewCard(c))
	}
	return out, nil
}

func randomCardNumber() (string, error) {
	n, err := rand.Int(rand.Reader, cardNumberSpace)
	if err != nil {
		return "", fmt.Errorf("card number entropy: %w", err)
	}
	return fmt.Sprintf("%0*d", cardNumberDigits, n), nil
}
