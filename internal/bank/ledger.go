// Package bank is the session ledger: the in-memory account set, the
// authentication protocol, and the balance-mutating operations.
//
// The Ledger is single-actor. Exactly one operation runs at a time and there
// is no locking. Every operation leaves one outcome message that the display
// layer consumes with TakeMessage. Refused operations return a *Failure and
// change nothing; any other error is fatal and the caller should stop.
package bank

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/strongroom-dev/strongroom/internal/id"
	"github.com/strongroom-dev/strongroom/internal/model"
)

// DefaultAdminPassword is used when the admin account has to be created.
const DefaultAdminPassword = "admin"

// Store loads and saves the full account set.
type Store interface {
	Load() ([]model.StoredAccount, error)
	Save(accounts []model.StoredAccount) error
}

// Prompter asks the human for more input in the middle of an operation.
// Calls block until an answer arrives; an error means no answer ever will.
type Prompter interface {
	ReadLine(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// WithAdminPassword sets the password given to a newly created admin account.
func WithAdminPassword(pw string) Option {
	return func(l *Ledger) { l.adminPassword = pw }
}

// Ledger owns the accounts for the lifetime of the process.
type Ledger struct {
	accounts      []*Account
	byID          map[string]*Account
	store         Store
	message       string
	log           *zap.Logger
	adminPassword string
}

// New builds a Ledger over accounts and makes sure the admin account exists.
// A created admin gets the configured password, which must pass the same
// rule as registration. It does not touch the store.
func New(accounts []*Account, store Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store:         store,
		log:           zap.NewNop(),
		adminPassword: DefaultAdminPassword,
	}
	for _, opt := range opts {
		opt(l)
	}

	l.byID = make(map[string]*Account, len(accounts))
	for _, a := range accounts {
		if _, dup := l.byID[a.id]; dup {
			return nil, fmt.Errorf("duplicate account id %q", a.id)
		}
		l.byID[a.id] = a
	}
	l.accounts = accounts

	if _, ok := l.byID[id.Admin]; !ok {
		if !id.Valid(l.adminPassword) {
			return nil, fmt.Errorf("creating admin account: %w", ErrInvalidPassword)
		}
		admin, err := NewAccount(id.Admin, l.adminPassword, decimal.Zero)
		if err != nil {
			return nil, err
		}
		l.add(admin)
		l.log.Info("created admin account")
	}
	return l, nil
}

// Open loads every account from store and returns a Ledger over them. Any
// load or decode failure is fatal. If the admin account had to be created,
// the result is saved straight away.
func Open(store Store, opts ...Option) (*Ledger, error) {
	records, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}

	accounts := make([]*Account, 0, len(records))
	hasAdmin := false
	for _, rec := range records {
		a, err := RestoreAccount(rec.ID, rec.Encrypted, rec.Key, rec.Balance)
		if err != nil {
			return nil, fmt.Errorf("loading accounts: %w", err)
		}
		if rec.ID == id.Admin {
			hasAdmin = true
		}
		accounts = append(accounts, a)
	}

	l, err := New(accounts, store, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}
	if !hasAdmin {
		if err := l.Save(); err != nil {
			return nil, err
		}
	}
	l.log.Debug("ledger opened", zap.Int("accounts", len(l.accounts)))
	return l, nil
}

// Accounts returns the accounts in their persisted order.
func (l *Ledger) Accounts() []*Account {
	out := make([]*Account, len(l.accounts))
	copy(out, l.accounts)
	return out
}

// Account looks up an account by id.
func (l *Ledger) Account(accountID string) (*Account, bool) {
	a, ok := l.byID[accountID]
	return a, ok
}

// Save writes every account to the store in current order.
func (l *Ledger) Save() error {
	records := make([]model.StoredAccount, len(l.accounts))
	for i, a := range l.accounts {
		records[i] = a.Stored()
	}
	if err := l.store.Save(records); err != nil {
		l.log.Error("saving accounts failed", zap.Error(err))
		return fmt.Errorf("saving accounts: %w", err)
	}
	l.log.Info("accounts saved", zap.Int("accounts", len(records)))
	return nil
}

// Notify replaces the pending outcome message.
func (l *Ledger) Notify(msg string) { l.message = msg }

// TakeMessage returns the pending outcome message and clears it.
func (l *Ledger) TakeMessage() string {
	msg := l.message
	l.message = ""
	return msg
}

// Login authenticates id/password and returns the new session. Unknown ids
// and wrong passwords produce the same failure.
func (l *Ledger) Login(sess Session, accountID, password string) (Session, error) {
	if sess.Active() {
		return sess, l.fail(ErrAlreadyLoggedIn, "Already logged in.")
	}
	if accountID == "" || password == "" {
		return sess, l.fail(ErrCancelled, "Login cancelled.")
	}

	acct, ok := l.byID[accountID]
	if !ok {
		l.log.Debug("login rejected")
		return sess, l.fail(ErrLoginFailed, "Login failed.")
	}
	match, err := acct.checkPassword(password)
	if err != nil {
		return sess, l.fatal(err)
	}
	if !match {
		l.log.Debug("login rejected")
		return sess, l.fail(ErrLoginFailed, "Login failed.")
	}

	l.log.Debug("login", zap.String("account", accountID))
	l.Notify("Login successful.")
	return Session{account: acct}, nil
}

// Logout always succeeds and returns the logged-out session.
func (l *Ledger) Logout(sess Session) Session {
	if sess.Active() {
		l.log.Debug("logout", zap.String("account", sess.ID()))
	}
	l.Notify("Logged out.")
	return NoSession
}

// Register creates a new account with a zero balance. It does not depend on
// the session.
func (l *Ledger) Register(accountID, password string) error {
	if err := l.CheckNewID(accountID); err != nil {
		return err
	}
	if password == "" {
		return l.fail(ErrCancelled, "Registration cancelled.")
	}
	if !id.Valid(password) {
		return l.fail(ErrInvalidPassword, "Invalid password.")
	}

	acct, err := NewAccount(accountID, password, decimal.Zero)
	if err != nil {
		return l.fatal(err)
	}
	l.add(acct)

	l.log.Info("account registered", zap.String("account", accountID))
	l.Notify("Registration successful.")
	return nil
}

// CheckNewID reports whether accountID could be registered. It leaves the
// pending message alone when the id is acceptable.
func (l *Ledger) CheckNewID(accountID string) error {
	if accountID == "" {
		return l.fail(ErrCancelled, "Registration cancelled.")
	}
	if !id.Valid(accountID) {
		return l.fail(ErrInvalidID, "Invalid ID.")
	}
	if _, taken := l.byID[accountID]; taken {
		return l.fail(ErrDuplicateID, "ID taken.")
	}
	return nil
}

// ChangePassword replaces the session account's credential after checking
// the old password.
func (l *Ledger) ChangePassword(sess Session, oldPassword, newPassword string) error {
	acct, err := l.require(sess, "You must login to change your password.")
	if err != nil {
		return err
	}

	match, err := acct.checkPassword(oldPassword)
	if err != nil {
		return l.fatal(err)
	}
	if !match {
		return l.fail(ErrWrongPassword, "Wrong password. Operation cancelled.")
	}
	if newPassword == "" {
		return l.fail(ErrCancelled, "Operation cancelled.")
	}
	if !id.Valid(newPassword) {
		return l.fail(ErrInvalidPassword, "Invalid password.")
	}

	if err := acct.SetPassword(newPassword); err != nil {
		return l.fatal(err)
	}
	l.log.Info("password changed", zap.String("account", acct.id))
	l.Notify("Password changed.")
	return nil
}

func (l *Ledger) add(a *Account) {
	l.accounts = append(l.accounts, a)
	l.byID[a.id] = a
}

// require returns the session account, or a not-logged-in failure with msg.
// A session whose account is no longer in the ledger counts as logged out.
func (l *Ledger) require(sess Session, msg string) (*Account, error) {
	if !sess.Active() || l.byID[sess.ID()] != sess.account {
		return nil, l.fail(ErrNotLoggedIn, msg)
	}
	return sess.account, nil
}

func (l *Ledger) fail(kind error, msg string) error {
	l.Notify(msg)
	return &Failure{Err: kind, Message: msg}
}

func (l *Ledger) fatal(err error) error {
	l.log.Error("fatal ledger error", zap.Error(err))
	return err
}
