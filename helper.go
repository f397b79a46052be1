package corebank

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/bwmarrin/snowflake"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LocalHelper bootstraps a development or test database from the SQL files
// under testdata/.
type LocalHelper struct {
	Conn *pgx.Conn
	Node *snowflake.Node
	Dir  string
}

// SeedAccount is one row of seed_accounts.tmpl. A positive Balance also gets
// its "Initial deposit" log row so the seeded ledger stays consistent.
type SeedAccount struct {
	AcctID     snowflake.ID
	TxnID      snowflake.ID
	CustomerID int64
	Type       AccountType
	Balance    decimal.Decimal
}

func NewLocalHelper(connStr string, node *snowflake.Node, dir string) (*LocalHelper, error) {
	conn, err := pgx.Connect(context.Background(), connStr)
	if err != nil {
		return nil, err
	}
	return &LocalHelper{
		Conn: conn,
		Node: node,
		Dir:  dir,
	}, nil
}

func (lh *LocalHelper) InitDB() (func(), error) {
	bits, err := os.ReadFile(filepath.Join(lh.Dir, "init_db.sql"))
	if err != nil {
		return nil, err
	}
	if _, err = lh.Conn.Exec(context.Background(), string(bits)); err != nil {
		return nil, err
	}
	return lh.teardownDB(), err
}

// SeedAccounts opens one Savings account per customer in [1, customers] with
// the given opening balance and returns the rows it inserted.
func (lh *LocalHelper) SeedAccounts(customers int, opening decimal.Decimal) ([]SeedAccount, error) {
	seeds := make([]SeedAccount, 0, customers)
	for c := 1; c <= customers; c++ {
		seeds = append(seeds, SeedAccount{
			AcctID:     lh.Node.Generate(),
			TxnID:      lh.Node.Generate(),
			CustomerID: int64(c),
			Type:       AccountSavings,
			Balance:    opening,
		})
	}

	bits, err := os.ReadFile(filepath.Join(lh.Dir, "seed_accounts.tmpl"))
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New("seed_accounts").Parse(string(bits))
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err = tmpl.Execute(buf, seeds); err != nil {
		return nil, err
	}
	if _, err = lh.Conn.Exec(context.Background(), buf.String()); err != nil {
		return nil, err
	}
	return seeds, nil
}

func (lh *LocalHelper) Close() error {
	return lh.Conn.Close(context.Background())
}

func (lh *LocalHelper) teardownDB() func() {
	return func() {
		bits, err := os.ReadFile(filepath.Join(lh.Dir, "teardown_db.sql"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "DB cleanup read teardown sql: %s", err.Error())
			return
		}
		if _, err = lh.Conn.Exec(context.Background(), string(bits)); err != nil {
			fmt.Fprintf(os.Stderr, "DB cleanup exec teardown sql: %s", err.Error())
			return
		}
	}
}
