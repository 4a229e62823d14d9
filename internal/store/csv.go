package store

import (
	"encoding/base64"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/strongroom-dev/strongroom/internal/model"
)

// Header is the fixed first row of the accounts file.
const Header = "id,encrypted,key,balance"

// ErrCorrupt marks an accounts file that cannot be decoded.
var ErrCorrupt = errors.New("corrupt accounts file")

const (
	numFields    = 4
	colID        = 0
	colEncrypted = 1
	colKey       = 2
	colBalance   = 3
)

var encoding = base64.StdEncoding

// balancePattern is plain decimal notation; exponent forms are corrupt.
var balancePattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// ReadAccounts reads an accounts file. The first row is always skipped.
func ReadAccounts(r io.Reader) ([]model.StoredAccount, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV: %v", ErrCorrupt, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrCorrupt)
	}

	var accounts []model.StoredAccount
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes the header followed by one row per account, in order.
func WriteAccounts(w io.Writer, accounts []model.StoredAccount) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts a StoredAccount to a CSV row.
func MarshalAccount(acct model.StoredAccount) []string {
	row := make([]string, numFields)
	row[colID] = acct.ID
	row[colEncrypted] = encoding.EncodeToString(acct.Encrypted)
	row[colKey] = encoding.EncodeToString(acct.Key)
	row[colBalance] = acct.Balance.StringFixed(2)
	return row
}

// UnmarshalAccount converts a CSV row to a StoredAccount.
func UnmarshalAccount(record []string) (model.StoredAccount, error) {
	if len(record) != numFields {
		return model.StoredAccount{}, fmt.Errorf("%w: expected %d fields, got %d", ErrCorrupt, numFields, len(record))
	}

	if record[colID] == "" {
		return model.StoredAccount{}, fmt.Errorf("%w: empty id", ErrCorrupt)
	}

	encrypted, err := encoding.DecodeString(record[colEncrypted])
	if err != nil {
		return model.StoredAccount{}, fmt.Errorf("%w: decoding encrypted password for %q: %v", ErrCorrupt, record[colID], err)
	}

	key, err := encoding.DecodeString(record[colKey])
	if err != nil {
		return model.StoredAccount{}, fmt.Errorf("%w: decoding key for %q: %v", ErrCorrupt, record[colID], err)
	}

	if !balancePattern.MatchString(record[colBalance]) {
		return model.StoredAccount{}, fmt.Errorf("%w: parsing balance %q: not a plain decimal", ErrCorrupt, record[colBalance])
	}
	balance, err := decimal.NewFromString(record[colBalance])
	if err != nil {
		return model.StoredAccount{}, fmt.Errorf("%w: parsing balance %q: %v", ErrCorrupt, record[colBalance], err)
	}
	if balance.IsNegative() {
		return model.StoredAccount{}, fmt.Errorf("%w: negative balance %s for %q", ErrCorrupt, balance, record[colID])
	}

	return model.StoredAccount{
		ID:        record[colID],
		Encrypted: encrypted,
		Key:       key,
		Balance:   balance,
	}, nil
}
