package bank

import (
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/strongroom-dev/strongroom/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// memStore is an in-memory Store that records every save.
type memStore struct {
	records []model.StoredAccount
	saves   int
	loadErr error
	saveErr error
}

func (m *memStore) Load() ([]model.StoredAccount, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.records, nil
}

func (m *memStore) Save(accounts []model.StoredAccount) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records = accounts
	m.saves++
	return nil
}

// script answers prompts in order and remembers what was asked.
type script struct {
	lines     []string
	passwords []string
	asked     []string
}

func (s *script) ReadLine(prompt string) (string, error) {
	s.asked = append(s.asked, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *script) ReadPassword(prompt string) (string, error) {
	s.asked = append(s.asked, prompt)
	if len(s.passwords) == 0 {
		return "", io.EOF
	}
	pw := s.passwords[0]
	s.passwords = s.passwords[1:]
	return pw, nil
}

func passwords(pw ...string) *script { return &script{passwords: pw} }

type seed struct {
	id, password, balance string
}

// newLedger builds a ledger holding admin/admin plus the seeded accounts.
func newLedger(t *testing.T, seeds ...seed) (*Ledger, *memStore) {
	t.Helper()
	accounts := make([]*Account, 0, len(seeds))
	for _, s := range seeds {
		a, err := NewAccount(s.id, s.password, dec(s.balance))
		require.NoError(t, err)
		accounts = append(accounts, a)
	}
	st := &memStore{}
	l, err := New(accounts, st, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return l, st
}

func login(t *testing.T, l *Ledger, accountID, password string) Session {
	t.Helper()
	sess, err := l.Login(NoSession, accountID, password)
	require.NoError(t, err)
	require.True(t, sess.Active())
	l.TakeMessage()
	return sess
}

func balance(t *testing.T, l *Ledger, accountID string) string {
	t.Helper()
	a, ok := l.Account(accountID)
	require.True(t, ok, "account %s should exist", accountID)
	return a.Balance().StringFixed(2)
}
