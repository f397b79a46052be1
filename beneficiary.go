package corebank

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
)

type BeneficiaryRegistry struct {
	repo Repository
	node *snowflake.Node
	now  Clock
}

func NewBeneficiaryRegistry(repo Repository, node *snowflake.Node, now Clock) *BeneficiaryRegistry {
	return &BeneficiaryRegistry{
		repo: repo,
		node: node,
		now:  now,
	}
}

// Add links a payee to the customer's first active account.
func (r *BeneficiaryRegistry) Add(ctx context.Context, ben Beneficiary) (*Beneficiary, error) {
	ben.Name = strings.TrimSpace(ben.Name)
	ben.AccountNumber = strings.TrimSpace(ben.AccountNumber)
	ben.BankName = strings.TrimSpace(ben.BankName)
	ben.RoutingCode = strings.TrimSpace(ben.RoutingCode)

	fields := map[string]string{}
	for k, v := range map[string]string{
		"name":           ben.Name,
		"account_number": ben.AccountNumber,
		"bank_name":      ben.BankName,
		"routing_code":   ben.RoutingCode,
	} {
		if v == "" {
			fields[k] = "required"
		}
	}
	if !ben.Relationship.Valid() {
		fields["relationship"] = "must be one of Parent, Spouse, Child, Sibling, Friend, Other"
	}
	if len(fields) > 0 {
		return nil, ErrBadRequest{Fields: fields}
	}

	acct, err := r.repo.FirstActiveAccount(ctx, ben.CustomerID)
	if err != nil {
		if errors.As(err, &ErrNotFound{}) {
			return nil, ErrNoFundingAccount{CustomerID: ben.CustomerID}
		}
		return nil, err
	}

	ben.BenID = r.node.Generate()
	ben.AcctID = acct.AcctID
	ben.CreatedAt = r.now().UTC()
	if err = r.repo.CreateBeneficiary(ctx, ben); err != nil {
		return nil, err
	}
	return &ben, nil
}

func (r *BeneficiaryRegistry) Remove(ctx context.Context, customerID int64, id snowflake.ID) error {
	return r.repo.DeleteBeneficiary(ctx, customerID, id)
}

// RemoveByName deletes the single beneficiary with that name. When several
// share the name nothing is deleted and the caller must remove by ID.
func (r *BeneficiaryRegistry) RemoveByName(ctx context.Context, customerID int64, name string) error {
	name = strings.TrimSpace(name)
	bens, err := r.repo.ListBeneficiaries(ctx, customerID)
	if err != nil {
		return err
	}
	var match []Beneficiary
	for _, b := range bens {
		if b.Name == name {
			match = append(match, b)
		}
	}
	switch len(match) {
	case 0:
		return ErrNotFound{Entity: "beneficiary"}
	case 1:
		return r.repo.DeleteBeneficiary(ctx, customerID, match[0].BenID)
	default:
		return ErrBadRequest{Fields: map[string]string{"name": "matches more than one beneficiary, remove by id"}}
	}
}

func (r *BeneficiaryRegistry) List(ctx context.Context, customerID int64) ([]Beneficiary, error) {
	return r.repo.ListBeneficiaries(ctx, customerID)
}
