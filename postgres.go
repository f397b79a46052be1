package corebank

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const pgUniqueViolation = "23505"

var (
	pgInsertAcctSQL = `
		INSERT INTO accounts (id, customer_id, typ, balance, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	pgSelectAcctSQL = `
		SELECT id, customer_id, typ, balance, status, created_at
		FROM accounts
		WHERE id = $1;
	`

	pgSelectCustomerAcctsSQL = `
		SELECT id, customer_id, typ, balance, status, created_at
		FROM accounts
		WHERE customer_id = $1
		ORDER BY id;
	`

	pgSelectFirstActiveAcctSQL = `
		SELECT id, customer_id, typ, balance, status, created_at
		FROM accounts
		WHERE customer_id = $1 AND status = 'active'
		ORDER BY id
		LIMIT 1;
	`

	pgSelectForUpdateAcctSQL = `
		SELECT id, customer_id, typ, balance, status, created_at
		FROM accounts
		WHERE id = $1
		FOR UPDATE;
	`

	pgUpdateAcctSQL = `
		UPDATE accounts
		SET balance = $1
		WHERE id = $2;
	`

	pgCloseAcctSQL = `
		UPDATE accounts
		SET status = 'closed'
		WHERE id = $1;
	`

	pgInsertTxnSQL = `
		INSERT INTO transactions (id, acct_id, kind, amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	pgSelectTxnsSQL = `
		SELECT id, acct_id, kind, amount, description, created_at
		FROM transactions
		WHERE acct_id = $1
		ORDER BY created_at DESC, id DESC;
	`

	pgInsertFDSQL = `
		INSERT INTO fixed_deposits (id, acct_id, principal, rate, term_months, start_date, maturity_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	pgSelectFDsSQL = `
		SELECT fd.id, fd.acct_id, fd.principal, fd.rate, fd.term_months,
			fd.start_date, fd.maturity_date, fd.status, fd.created_at
		FROM fixed_deposits fd
		JOIN accounts a ON a.id = fd.acct_id
		WHERE a.customer_id = $1
		ORDER BY fd.created_at DESC, fd.id DESC;
	`

	pgInsertCardSQL = `
		INSERT INTO credit_cards (id, customer_id, card_number, tier, credit_limit, current_balance, expiry_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	pgSelectCardsSQL = `
		SELECT id, customer_id, card_number, tier, credit_limit, current_balance, expiry_date, status, created_at
		FROM credit_cards
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC;
	`

	pgInsertLoanSQL = `
		INSERT INTO loans (id, customer_id, branch_id, loan_type, amount, rate, term_months, start_date, end_date, status, purpose, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	pgSelectLoansSQL = `
		SELECT id, customer_id, branch_id, loan_type, amount, rate, term_months, start_date, end_date, status, purpose, created_at
		FROM loans
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC;
	`

	pgInsertBenSQL = `
		INSERT INTO beneficiaries (id, customer_id, acct_id, name, account_number, bank_name, routing_code, relationship, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	pgSelectBensSQL = `
		SELECT id, customer_id, acct_id, name, account_number, bank_name, routing_code, relationship, created_at
		FROM beneficiaries
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC;
	`

	pgDeleteBenSQL = `
		DELETE FROM beneficiaries
		WHERE customer_id = $1 AND id = $2;
	`
)

type PostgresEndpoint struct {
	pool *pgxpool.Pool
	log  *zerolog.Logger
}

var (
	_ Repository = (*PostgresEndpoint)(nil)
)

func NewPostgresEndpoint(connStr string, log *zerolog.Logger) (*PostgresEndpoint, error) {
	cfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	if err = pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}

	endpt := &PostgresEndpoint{
		pool: pool,
		log:  log,
	}
	return endpt, err
}

func (pg *PostgresEndpoint) Close() {
	pg.pool.Close()
}

// inTx runs fn inside a read-committed transaction and rolls back on any
// error, so a failed step never leaves a balance without its log row.
func (pg *PostgresEndpoint) inTx(ctx context.Context, op string, fn func(pgx.Tx) error) error {
	tx, err := pg.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return storageErr(op, err)
	}
	if err = fn(tx); err != nil {
		if rerr := tx.Rollback(ctx); rerr != nil && !errors.Is(rerr, pgx.ErrTxClosed) {
			pg.log.Err(rerr).Str("op", op).Msg("transaction rollback fail")
		}
		return storageErr(op, err)
	}
	if err = tx.Commit(ctx); err != nil {
		return storageErr(op, err)
	}
	return nil
}

// applyLocked is the atomic append: lock the row, check, write the balance and
// the log row in one batch.
func (pg *PostgresEndpoint) applyLocked(ctx context.Context, tx pgx.Tx, txn Transaction) (decimal.Decimal, error) {
	rows, _ := tx.Query(ctx, pgSelectForUpdateAcctSQL, txn.AcctID)
	acct, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByPos[Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, ErrNotFound{ID: txn.AcctID.Int64(), Entity: "account"}
		}
		return decimal.Zero, err
	}

	bal, err := nextBalance(acct, txn)
	if err != nil {
		return decimal.Zero, err
	}

	batch := &pgx.Batch{}
	batch.Queue(pgUpdateAcctSQL, bal, txn.AcctID)
	batch.Queue(pgInsertTxnSQL, txn.TxnID, txn.AcctID, txn.Kind, txn.Amount, txn.Description, txn.CreatedAt)
	if err = execBatch(ctx, tx, batch); err != nil {
		return decimal.Zero, err
	}
	return bal, nil
}

func execBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	btresults := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := btresults.Exec(); err != nil {
			btresults.Close()
			return err
		}
	}
	return btresults.Close()
}

func (pg *PostgresEndpoint) CreateAccount(ctx context.Context, acct Account, opening *Transaction) error {
	return pg.inTx(ctx, "create account", func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		batch.Queue(pgInsertAcctSQL, acct.AcctID, acct.CustomerID, acct.Type, acct.Balance, acct.Status, acct.CreatedAt)
		if opening != nil {
			batch.Queue(pgInsertTxnSQL, opening.TxnID, opening.AcctID, opening.Kind, opening.Amount, opening.Description, opening.CreatedAt)
		}
		return execBatch(ctx, tx, batch)
	})
}

func (pg *PostgresEndpoint) GetAccount(ctx context.Context, id snowflake.ID) (*Account, error) {
	rows, _ := pg.pool.Query(ctx, pgSelectAcctSQL, id)
	acct, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByPos[Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound{ID: id.Int64(), Entity: "account"}
		}
		return nil, storageErr("get account", err)
	}
	return acct, nil
}

func (pg *PostgresEndpoint) GetBalance(ctx context.Context, id snowflake.ID) (*decimal.Decimal, error) {
	acct, err := pg.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return &acct.Balance, nil
}

func (pg *PostgresEndpoint) ListAccounts(ctx context.Context, customerID int64) ([]Account, error) {
	rows, _ := pg.pool.Query(ctx, pgSelectCustomerAcctsSQL, customerID)
	accts, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Account])
	if err != nil {
		return nil, storageErr("list accounts", err)
	}
	return accts, nil
}

func (pg *PostgresEndpoint) FirstActiveAccount(ctx context.Context, customerID int64) (*Account, error) {
	rows, _ := pg.pool.Query(ctx, pgSelectFirstActiveAcctSQL, customerID)
	acct, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByPos[Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound{ID: customerID, Entity: "active account"}
		}
		return nil, storageErr("first active account", err)
	}
	return acct, nil
}

func (pg *PostgresEndpoint) CloseAccount(ctx context.Context, id snowflake.ID) (*Account, error) {
	var acct *Account
	err := pg.inTx(ctx, "close account", func(tx pgx.Tx) error {
		rows, _ := tx.Query(ctx, pgSelectForUpdateAcctSQL, id)
		var err error
		acct, err = pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByPos[Account])
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound{ID: id.Int64(), Entity: "account"}
			}
			return err
		}
		if err = closable(acct); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, pgCloseAcctSQL, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	acct.Status = AccountClosed
	return acct, nil
}

func (pg *PostgresEndpoint) AppendTransaction(ctx context.Context, txn Transaction) (*decimal.Decimal, error) {
	var bal decimal.Decimal
	err := pg.inTx(ctx, "append transaction", func(tx pgx.Tx) error {
		var err error
		bal, err = pg.applyLocked(ctx, tx, txn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

func (pg *PostgresEndpoint) ListTransactions(ctx context.Context, acctID snowflake.ID) ([]Transaction, error) {
	if _, err := pg.GetAccount(ctx, acctID); err != nil {
		return nil, err
	}
	rows, _ := pg.pool.Query(ctx, pgSelectTxnsSQL, acctID)
	txns, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Transaction])
	if err != nil {
		return nil, storageErr("list transactions", err)
	}
	return txns, nil
}

func (pg *PostgresEndpoint) CreateFixedDeposit(ctx context.Context, fd FixedDeposit, funding Transaction) (*decimal.Decimal, error) {
	var bal decimal.Decimal
	err := pg.inTx(ctx, "create fixed deposit", func(tx pgx.Tx) error {
		var err error
		if bal, err = pg.applyLocked(ctx, tx, funding); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, pgInsertFDSQL, fd.FDID, fd.AcctID, fd.Principal, fd.Rate, fd.TermMonths,
			fd.StartDate, fd.MaturityDate, fd.Status, fd.CreatedAt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

func (pg *PostgresEndpoint) ListFixedDeposits(ctx context.Context, customerID int64) ([]FixedDeposit, error) {
	rows, _ := pg.pool.Query(ctx, pgSelectFDsSQL, customerID)
	fds, err := pgx.CollectRows(rows, pgx.RowToStructByPos[FixedDeposit])
	if err != nil {
		return nil, storageErr("list fixed deposits", err)
	}
	return fds, nil
}

func (pg *PostgresEndpoint) CreateCreditCard(ctx context.Context, card CreditCard) error {
	_, err := pg.pool.Exec(ctx, pgInsertCardSQL, card.CardID, card.CustomerID, card.Number, card.Tier,
		card.Limit, card.Balance, card.ExpiryDate, card.Status, card.CreatedAt)
	if err != nil {
		return storageErr("create credit card", err)
	}
	return nil
}

func (pg *PostgresEndpoint) ListCreditCards(ctx context.Context, customerID int64) ([]CreditCard, error) {
	rows, _ := pg.pool.Query(ctx, pgSelectCardsSQL, customerID)
	cards, err := pgx.CollectRows(rows, pgx.RowToStructByPos[CreditCard])
	if err != nil {
		return nil, storageErr("list credit cards", err)
	}
	return cards, nil
}

func (pg *PostgresEndpoint) CreateLoan(ctx context.Context, loan Loan) error {
	_, err := pg.pool.Exec(ctx, pgInsertLoanSQL, loan.LoanID, loan.CustomerID, loan.BranchID, loan.Type,
		loan.Amount, loan.Rate, loan.TermMonths, loan.StartDate, loan.EndDate, loan.Status, loan.Purpose, loan.CreatedAt)
	if err != nil {
		return storageErr("create loan", err)
	}
	return nil
}

func (pg *PostgresEndpoint) ListLoans(ctx context.Context, customerID int64) ([]Loan, error) {
	rows, _ := pg.pool.Query(ctx, pgSelectLoansSQL, customerID)
	loans, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Loan])
	if err != nil {
		return nil, storageErr("list loans", err)
	}
	return loans, nil
}

func (pg *PostgresEndpoint) CreateBeneficiary(ctx context.Context, ben Beneficiary) error {
	_, err := pg.pool.Exec(ctx, pgInsertBenSQL, ben.BenID, ben.CustomerID, ben.AcctID, ben.Name,
		ben.AccountNumber, ben.BankName, ben.RoutingCode, ben.Relationship, ben.CreatedAt)
	if err != nil {
		return storageErr("create beneficiary", err)
	}
	return nil
}

func (pg *PostgresEndpoint) ListBeneficiaries(ctx context.Context, customerID int64) ([]Beneficiary, error) {
	rows, _ := pg.pool.Query(ctx, pgSelectBensSQL, customerID)
	bens, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Beneficiary])
	if err != nil {
		return nil, storageErr("list beneficiaries", err)
	}
	return bens, nil
}

func (pg *PostgresEndpoint) DeleteBeneficiary(ctx context.Context, customerID int64, id snowflake.ID) error {
	tag, err := pg.pool.Exec(ctx, pgDeleteBenSQL, customerID, id)
	if err != nil {
		return storageErr("delete beneficiary", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound{ID: id.Int64(), Entity: "beneficiary"}
	}
	return nil
}

// storageErr passes domain errors through untouched and wraps everything else
// as ErrStorage.
func storageErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.TableName == "credit_cards" {
		return ErrDuplicateCardNumber
	}
	if isRejection(err) || IsStorageFailure(err) {
		return err
	}
	return ErrStorage{Op: op, Err: err}
}
