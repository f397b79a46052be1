package corebank_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arhyth/corebank"
)

func payee(customerID int64, name string) corebank.Beneficiary {
	return corebank.Beneficiary{
		CustomerID:    customerID,
		Name:          name,
		AccountNumber: "GB29NWBK60161331926819",
		BankName:      "Northwind",
		RoutingCode:   "NWBKGB2L",
		Relationship:  corebank.RelSibling,
	}
}

func TestBeneficiaryRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("links the payee to the first active account", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		repo := corebank.NewMemoryStore()
		node := newNode(tt)
		acct := openAccount(tt, repo, node, 1, corebank.AccountSavings, "0")
		reg := corebank.NewBeneficiaryRegistry(repo, node, fixedClock(testDay))

		in := payee(1, "  Ana Cruz ")
		ben, err := reg.Add(ctx, in)
		reqrd.Nil(err)
		as.Equal("Ana Cruz", ben.Name)
		as.Equal(acct.AcctID, ben.AcctID)

		bens, err := reg.List(ctx, 1)
		reqrd.Nil(err)
		as.Len(bens, 1)
	})

	t.Run("customer without an account cannot add payees", func(tt *testing.T) {
		as := assert.New(tt)
		reg := corebank.NewBeneficiaryRegistry(corebank.NewMemoryStore(), newNode(tt), fixedClock(testDay))
		_, err := reg.Add(ctx, payee(1, "Ana"))
		as.ErrorAs(err, &corebank.ErrNoFundingAccount{})
	})

	t.Run("validates required fields and relationship", func(tt *testing.T) {
		as := assert.New(tt)
		repo := corebank.NewMemoryStore()
		node := newNode(tt)
		openAccount(tt, repo, node, 1, corebank.AccountSavings, "0")
		reg := corebank.NewBeneficiaryRegistry(repo, node, fixedClock(testDay))

		in := payee(1, " ")
		in.Relationship = corebank.Relationship("Cousin")
		_, err := reg.Add(ctx, in)
		br := corebank.ErrBadRequest{}
		as.ErrorAs(err, &br)
		as.Contains(br.Fields, "name")
		as.Contains(br.Fields, "relationship")
	})

	t.Run("removal by name needs a unique match", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		repo := corebank.NewMemoryStore()
		node := newNode(tt)
		openAccount(tt, repo, node, 1, corebank.AccountSavings, "0")
		reg := corebank.NewBeneficiaryRegistry(repo, node, fixedClock(testDay))

		first, err := reg.Add(ctx, payee(1, "Ana"))
		reqrd.Nil(err)
		_, err = reg.Add(ctx, payee(1, "Ana"))
		reqrd.Nil(err)
		_, err = reg.Add(ctx, payee(1, "Ben"))
		reqrd.Nil(err)

		as.ErrorAs(reg.RemoveByName(ctx, 1, "Ana"), &corebank.ErrBadRequest{})
		as.ErrorAs(reg.RemoveByName(ctx, 1, "Cy"), &corebank.ErrNotFound{})
		bens, err := reg.List(ctx, 1)
		reqrd.Nil(err)
		as.Len(bens, 3)

		as.Nil(reg.RemoveByName(ctx, 1, " Ben "), "names match the way they were stored")
		as.Nil(reg.Remove(ctx, 1, first.BenID))
		bens, err = reg.List(ctx, 1)
		reqrd.Nil(err)
		reqrd.Len(bens, 1)
		as.Equal("Ana", bens[0].Name)
		as.NotEqual(first.BenID, bens[0].BenID)
	})

	t.Run("cannot remove another customer's payee", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		repo := corebank.NewMemoryStore()
		node := newNode(tt)
		openAccount(tt, repo, node, 1, corebank.AccountSavings, "0")
		reg := corebank.NewBeneficiaryRegistry(repo, node, fixedClock(testDay))

		ben, err := reg.Add(ctx, payee(1, "Ana"))
		reqrd.Nil(err)
		as.ErrorAs(reg.Remove(ctx, 2, ben.BenID), &corebank.ErrNotFound{})
	})
}
