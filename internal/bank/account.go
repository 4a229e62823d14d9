package bank

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/strongroom-dev/strongroom/internal/model"
	"github.com/strongroom-dev/strongroom/internal/vault"
)

// Account is an id, its sealed password, and a balance. It performs no
// authorization or balance checks of its own; the Ledger does.
type Account struct {
	id      string
	cred    vault.Credential
	balance decimal.Decimal
}

// NewAccount encrypts password under a fresh key and returns the account.
func NewAccount(id, password string, balance decimal.Decimal) (*Account, error) {
	cred, err := vault.Encrypt(password)
	if err != nil {
		return nil, fmt.Errorf("creating account %q: %w", id, err)
	}
	return &Account{id: id, cred: cred, balance: balance}, nil
}

// RestoreAccount rebuilds an account from persisted material without
// re-encrypting anything.
func RestoreAccount(id string, ciphertext, key []byte, balance decimal.Decimal) (*Account, error) {
	cred := vault.Credential{Ciphertext: ciphertext, Key: key}
	if !cred.Valid() {
		return nil, fmt.Errorf("restoring account %q: %w: malformed credential", id, vault.ErrIntegrity)
	}
	return &Account{id: id, cred: cred, balance: balance}, nil
}

// ID returns the account id.
func (a *Account) ID() string { return a.id }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal { return a.balance }

// SetBalance replaces the balance unconditionally.
func (a *Account) SetBalance(amount decimal.Decimal) { a.balance = amount }

// Credential returns the sealed password and its key.
func (a *Account) Credential() vault.Credential { return a.cred }

// Password decrypts the stored password. It is only used for comparisons.
func (a *Account) Password() (string, error) {
	pw, err := vault.Decrypt(a.cred)
	if err != nil {
		return "", fmt.Errorf("decrypting password for %q: %w", a.id, err)
	}
	return pw, nil
}

// SetPassword re-encrypts under a new key. The ciphertext and key are
// replaced together or not at all.
func (a *Account) SetPassword(password string) error {
	cred, err := vault.Encrypt(password)
	if err != nil {
		return fmt.Errorf("changing password for %q: %w", a.id, err)
	}
	a.cred = cred
	return nil
}

// Stored converts the account to its persisted form.
func (a *Account) Stored() model.StoredAccount {
	return model.StoredAccount{
		ID:        a.id,
		Encrypted: a.cred.Ciphertext,
		Key:       a.cred.Key,
		Balance:   a.balance,
	}
}

func (a *Account) checkPassword(password string) (bool, error) {
	pw, err := a.Password()
	if err != nil {
		return false, err
	}
	return pw == password, nil
}
