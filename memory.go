package corebank

import (
	"context"
	"sort"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// MemoryStore is an in-process Repository. Balance changes are serialized per
// account by acctLocks; mu only guards the maps and is never held while
// waiting on an account lock.
type MemoryStore struct {
	mu        sync.RWMutex
	acctLocks map[snowflake.ID]*sync.Mutex
	accts     map[snowflake.ID]*Account
	txns      map[snowflake.ID][]Transaction
	fds       []FixedDeposit
	cards     []CreditCard
	cardNums  map[string]struct{}
	loans     []Loan
	bens      []Beneficiary
}

var (
	_ Repository = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		acctLocks: make(map[snowflake.ID]*sync.Mutex),
		accts:     make(map[snowflake.ID]*Account),
		txns:      make(map[snowflake.ID][]Transaction),
		cardNums:  make(map[string]struct{}),
	}
}

func (m *MemoryStore) lockAccount(id snowflake.ID) (func(), error) {
	m.mu.RLock()
	l, ok := m.acctLocks[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound{ID: id.Int64(), Entity: "account"}
	}
	l.Lock()
	return l.Unlock, nil
}

func (m *MemoryStore) CreateAccount(_ context.Context, acct Account, opening *Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accts[acct.AcctID]; ok {
		return ErrBadRequest{Fields: map[string]string{"acctID": "already exists"}}
	}
	a := acct
	m.accts[acct.AcctID] = &a
	m.acctLocks[acct.AcctID] = &sync.Mutex{}
	if opening != nil {
		m.txns[acct.AcctID] = append(m.txns[acct.AcctID], *opening)
	}
	return nil
}

func (m *MemoryStore) GetAccount(_ context.Context, id snowflake.ID) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accts[id]
	if !ok {
		return nil, ErrNotFound{ID: id.Int64(), Entity: "account"}
	}
	cp := *a
	return &cp, nil
}

func (m *MemoryStore) GetBalance(ctx context.Context, id snowflake.ID) (*decimal.Decimal, error) {
	a, err := m.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return &a.Balance, nil
}

func (m *MemoryStore) ListAccounts(_ context.Context, customerID int64) ([]Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Account
	for _, a := range m.accts {
		if a.CustomerID == customerID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AcctID < out[j].AcctID })
	return out, nil
}

func (m *MemoryStore) FirstActiveAccount(ctx context.Context, customerID int64) (*Account, error) {
	accts, _ := m.ListAccounts(ctx, customerID)
	for i := range accts {
		if accts[i].Status == AccountActive {
			return &accts[i], nil
		}
	}
	return nil, ErrNotFound{ID: customerID, Entity: "active account"}
}

func (m *MemoryStore) CloseAccount(_ context.Context, id snowflake.ID) (*Account, error) {
	unlock, err := m.lockAccount(id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.accts[id]
	if err = closable(a); err != nil {
		return nil, err
	}
	a.Status = AccountClosed
	cp := *a
	return &cp, nil
}

func (m *MemoryStore) AppendTransaction(_ context.Context, txn Transaction) (*decimal.Decimal, error) {
	unlock, err := m.lockAccount(txn.AcctID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return m.apply(txn, nil)
}

// apply must be called with the account lock of txn.AcctID held. The balance
// write, the log append and the optional extra insert happen under one
// acquisition of mu, so readers never observe one without the other.
func (m *MemoryStore) apply(txn Transaction, also func()) (*decimal.Decimal, error) {
	m.mu.RLock()
	snapshot := *m.accts[txn.AcctID]
	m.mu.RUnlock()

	bal, err := nextBalance(&snapshot, txn)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.accts[txn.AcctID].Balance = bal
	m.txns[txn.AcctID] = append(m.txns[txn.AcctID], txn)
	if also != nil {
		also()
	}
	m.mu.Unlock()
	return &bal, nil
}

func (m *MemoryStore) ListTransactions(_ context.Context, acctID snowflake.ID) ([]Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.accts[acctID]; !ok {
		return nil, ErrNotFound{ID: acctID.Int64(), Entity: "account"}
	}
	log := m.txns[acctID]
	out := make([]Transaction, 0, len(log))
	for i := len(log) - 1; i >= 0; i-- {
		out = append(out, log[i])
	}
	return out, nil
}

func (m *MemoryStore) CreateFixedDeposit(_ context.Context, fd FixedDeposit, funding Transaction) (*decimal.Decimal, error) {
	unlock, err := m.lockAccount(funding.AcctID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return m.apply(funding, func() {
		m.fds = append(m.fds, fd)
	})
}

func (m *MemoryStore) ListFixedDeposits(_ context.Context, customerID int64) ([]FixedDeposit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []FixedDeposit
	for _, fd := range m.fds {
		if a, ok := m.accts[fd.AcctID]; ok && a.CustomerID == customerID {
			out = append(out, fd)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FDID > out[j].FDID })
	return out, nil
}

func (m *MemoryStore) CreateCreditCard(_ context.Context, card CreditCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cardNums[card.Number]; ok {
		return ErrDuplicateCardNumber
	}
	m.cardNums[card.Number] = struct{}{}
	m.cards = append(m.cards, card)
	return nil
}

func (m *MemoryStore) ListCreditCards(_ context.Context, customerID int64) ([]CreditCard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []CreditCard
	for _, c := range m.cards {
		if c.CustomerID == customerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CardID > out[j].CardID })
	return out, nil
}

func (m *MemoryStore) CreateLoan(_ context.Context, loan Loan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loans = append(m.loans, loan)
	return nil
}

func (m *MemoryStore) ListLoans(_ context.Context, customerID int64) ([]Loan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Loan
	for _, l := range m.loans {
		if l.CustomerID == customerID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoanID > out[j].LoanID })
	return out, nil
}

func (m *MemoryStore) CreateBeneficiary(_ context.Context, ben Beneficiary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bens = append(m.bens, ben)
	return nil
}

func (m *MemoryStore) ListBeneficiaries(_ context.Context, customerID int64) ([]Beneficiary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Beneficiary
	for _, b := range m.bens {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BenID > out[j].BenID })
	return out, nil
}

func (m *MemoryStore) DeleteBeneficiary(_ context.Context, customerID int64, id snowflake.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.bens {
		if b.BenID == id && b.CustomerID == customerID {
			m.bens = append(m.bens[:i], m.bens[i+1:]...)
			return nil
		}
	}
	return ErrNotFound{ID: id.Int64(), Entity: "beneficiary"}
}
