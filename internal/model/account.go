package model

import "github.com/shopspring/decimal"

// StoredAccount is one row of the accounts file: the account id, its sealed
// password and key exactly as produced by the vault, and its balance.
type StoredAccount struct {
	ID        string
	Encrypted []byte
	Key       []byte
	Balance   decimal.Decimal
}
