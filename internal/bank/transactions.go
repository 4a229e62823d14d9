package bank

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/strongroom-dev/strongroom/internal/id"
)

// ConfirmPrompt is shown when re-entering the password before a transaction.
const ConfirmPrompt = "Enter password to confirm transaction: "

// ResetToken is the exact answer that confirms a reset.
const ResetToken = "Y"

const (
	resetTokenPrompt    = "Enter Y to confirm reset: "
	resetPasswordPrompt = "Enter password to reset ALL data: "
)

type direction int

const (
	withdraw direction = iota
	deposit
)

func (d direction) verb() string {
	if d == withdraw {
		return "withdraw"
	}
	return "deposit"
}

func (d direction) title() string {
	if d == withdraw {
		return "Withdraw"
	}
	return "Deposit"
}

// Withdraw subtracts amount from the session account after re-confirmation.
func (l *Ledger) Withdraw(sess Session, amount string, p Prompter) error {
	return l.transact(sess, withdraw, amount, p)
}

// Deposit adds amount to the session account after re-confirmation.
func (l *Ledger) Deposit(sess Session, amount string, p Prompter) error {
	return l.transact(sess, deposit, amount, p)
}

func (l *Ledger) transact(sess Session, dir direction, raw string, p Prompter) error {
	acct, err := l.require(sess, "You must login to "+dir.verb()+".")
	if err != nil {
		return err
	}

	amount, ok := parseAmount(raw)
	if !ok || dir == withdraw && amount.GreaterThan(acct.balance) {
		return l.fail(ErrInvalidAmount, "Invalid "+dir.verb()+" amount.")
	}

	if err := l.confirm(acct, p, ConfirmPrompt, "Wrong password. "+dir.title()+" cancelled."); err != nil {
		return err
	}

	if dir == withdraw {
		acct.SetBalance(acct.balance.Sub(amount))
	} else {
		acct.SetBalance(acct.balance.Add(amount))
	}

	l.log.Debug(dir.verb(), zap.String("account", acct.id), zap.String("amount", amount.StringFixed(2)))
	l.Notify(dir.title() + " successful.")
	return nil
}

// Transfer moves amount from the session account to recipientID after
// re-confirmation. The sender is debited, then the recipient credited; there
// is no compensating step between the two.
func (l *Ledger) Transfer(sess Session, recipientID, amount string, p Prompter) error {
	sender, err := l.require(sess, "You must login to transfer.")
	if err != nil {
		return err
	}

	recipient, ok := l.byID[recipientID]
	if !ok {
		return l.fail(ErrUnknownRecipient, "Invalid ID.")
	}

	amt, ok := parseAmount(amount)
	if !ok || amt.GreaterThan(sender.balance) {
		return l.fail(ErrInvalidAmount, "Invalid transfer amount.")
	}

	if err := l.confirm(sender, p, ConfirmPrompt, "Wrong password. Transfer cancelled."); err != nil {
		return err
	}

	sender.SetBalance(sender.balance.Sub(amt))
	recipient.SetBalance(recipient.balance.Add(amt))

	l.log.Debug("transfer",
		zap.String("from", sender.id),
		zap.String("to", recipient.id),
		zap.String("amount", amt.StringFixed(2)))
	l.Notify("Transfer successful.")
	return nil
}

// Reset discards every account except admin and saves immediately. Only the
// admin session may reset, and only after the confirmation token and the
// admin password are both given.
func (l *Ledger) Reset(sess Session, p Prompter) (Session, error) {
	if !sess.Active() || sess.ID() != id.Admin || l.byID[id.Admin] != sess.account {
		return sess, l.fail(ErrNotAdmin, "Only admin can perform a reset.")
	}
	admin := sess.account

	token, err := p.ReadLine(resetTokenPrompt)
	if err != nil {
		return sess, l.fatal(fmt.Errorf("reading reset confirmation: %w", err))
	}
	if token != ResetToken {
		return sess, l.fail(ErrCancelled, "Reset cancelled.")
	}

	if err := l.confirm(admin, p, resetPasswordPrompt, "Wrong password. Reset cancelled."); err != nil {
		return sess, err
	}

	dropped := len(l.accounts) - 1
	l.accounts = []*Account{admin}
	l.byID = map[string]*Account{admin.id: admin}

	if err := l.Save(); err != nil {
		return sess, err
	}

	l.log.Info("ledger reset", zap.Int("dropped_accounts", dropped))
	l.Notify("Reset successful.")
	return Session{account: admin}, nil
}

func (l *Ledger) confirm(acct *Account, p Prompter, prompt, wrongMsg string) error {
	pw, err := p.ReadPassword(prompt)
	if err != nil {
		return l.fatal(fmt.Errorf("reading password confirmation: %w", err))
	}
	match, err := acct.checkPassword(pw)
	if err != nil {
		return l.fatal(err)
	}
	if !match {
		l.log.Debug("confirmation rejected", zap.String("account", acct.id))
		return l.fail(ErrWrongPassword, wrongMsg)
	}
	return nil
}

// MaxAmountDigits bounds the integer part of an entered amount.
const MaxAmountDigits = 15

// amountPattern is plain decimal notation only; exponents are refused before
// the value reaches decimal arithmetic.
var amountPattern = regexp.MustCompile(`^([0-9]+)(\.[0-9]+)?$`)

// parseAmount accepts a non-negative decimal with at most two fractional
// digits and at most MaxAmountDigits integer digits.
func parseAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	m := amountPattern.FindStringSubmatch(raw)
	if m == nil {
		return decimal.Decimal{}, false
	}
	if whole := strings.TrimLeft(m[1], "0"); len(whole) > MaxAmountDigits {
		return decimal.Decimal{}, false
	}
	if frac := strings.TrimRight(strings.TrimPrefix(m[2], "."), "0"); len(frac) > 2 {
		return decimal.Decimal{}, false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amount, true
}
