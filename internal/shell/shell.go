// Package shell is the interactive front end: it reads one command at a
// time, collects the answers the command needs, runs it against the ledger,
// and redraws the session header and outcome message.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/strongroom-dev/strongroom/internal/bank"
)

// Help lists every command.
const Help = `HELP: Outputs this help string
LOGIN: Log in using valid ID and password
LOGOUT: Log out of current user
REGISTER: Register for an account using valid ID and password
CHANGE PASSWORD: Allows current user to change password
WITHDRAW: Withdraws a valid amount from account
DEPOSIT: Deposits a valid amount to account
TRANSFER: Transfers a valid amount to another account
EXIT: Ends the banking process
RESET: Clears all data in banking system (Admin only)`

// ErrUnknownCommand is the recoverable outcome of an unrecognized command.
var ErrUnknownCommand = errors.New("unknown command")

// Shell runs commands against a ledger for one human at a time.
type Shell struct {
	ledger *bank.Ledger
	input  bank.Prompter
	out    io.Writer
	sess   bank.Session
	clear  bool
	log    *zap.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithClearScreen controls whether the terminal is cleared before each redraw.
func WithClearScreen(clear bool) Option {
	return func(s *Shell) { s.clear = clear }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Shell) { s.log = log }
}

// New creates a logged-out Shell.
func New(ledger *bank.Ledger, input bank.Prompter, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		ledger: ledger,
		input:  input,
		out:    out,
		sess:   bank.NoSession,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session returns the current session.
func (s *Shell) Session() bank.Session { return s.sess }

// Run loops until EXIT or a fatal error. Recoverable outcomes are shown and
// the loop continues.
func (s *Shell) Run() error {
	for {
		s.redraw()
		line, err := s.input.ReadLine("> ")
		if err != nil {
			return err
		}
		exit, err := s.Execute(line)
		if err != nil && !bank.IsRecoverable(err) {
			return err
		}
		if exit {
			return nil
		}
	}
}

// Execute runs a single command line. It reports whether the session should
// end. Refused operations come back as *bank.Failure.
func (s *Shell) Execute(line string) (exit bool, err error) {
	cmd := strings.ToUpper(strings.TrimSpace(line))
	s.log.Debug("command", zap.String("command", cmd))

	switch cmd {
	case "HELP":
		s.ledger.Notify(Help)
	case "LOGIN":
		err = s.login()
	case "LOGOUT":
		s.sess = s.ledger.Logout(s.sess)
	case "REGISTER":
		err = s.register()
	case "CHANGE PASSWORD":
		err = s.changePassword()
	case "WITHDRAW":
		err = s.transact("withdraw", s.ledger.Withdraw)
	case "DEPOSIT":
		err = s.transact("deposit", s.ledger.Deposit)
	case "TRANSFER":
		err = s.transfer()
	case "RESET":
		s.sess, err = s.ledger.Reset(s.sess, s.input)
	case "EXIT":
		return true, s.ledger.Save()
	default:
		msg := "Please enter a valid command."
		s.ledger.Notify(msg)
		err = &bank.Failure{Err: ErrUnknownCommand, Message: msg}
	}
	return false, err
}

func (s *Shell) login() error {
	if s.sess.Active() {
		_, err := s.ledger.Login(s.sess, "", "")
		return err
	}

	id, err := s.input.ReadLine("Enter ID: ")
	if err != nil {
		return err
	}
	var pw string
	if id != "" {
		if pw, err = s.input.ReadPassword("Enter password: "); err != nil {
			return err
		}
	}

	sess, err := s.ledger.Login(s.sess, id, pw)
	s.sess = sess
	return err
}

func (s *Shell) register() error {
	id, err := s.input.ReadLine("Enter a unique ID: ")
	if err != nil {
		return err
	}
	if err := s.ledger.CheckNewID(id); err != nil {
		return err
	}

	pw, err := s.input.ReadPassword("Enter password: ")
	if err != nil {
		return err
	}
	return s.ledger.Register(id, pw)
}

func (s *Shell) changePassword() error {
	if !s.sess.Active() {
		return s.ledger.ChangePassword(s.sess, "", "")
	}

	oldPw, err := s.input.ReadPassword("Enter old password: ")
	if err != nil {
		return err
	}
	newPw, err := s.input.ReadPassword("Enter new password: ")
	if err != nil {
		return err
	}
	return s.ledger.ChangePassword(s.sess, oldPw, newPw)
}

func (s *Shell) transact(verb string, op func(bank.Session, string, bank.Prompter) error) error {
	if !s.sess.Active() {
		return op(s.sess, "", s.input)
	}

	amount, err := s.input.ReadLine(fmt.Sprintf("Enter amount to %s: ", verb))
	if err != nil {
		return err
	}
	return op(s.sess, amount, s.input)
}

func (s *Shell) transfer() error {
	if !s.sess.Active() {
		return s.ledger.Transfer(s.sess, "", "", s.input)
	}

	to, err := s.input.ReadLine("Enter ID to transfer to: ")
	if err != nil {
		return err
	}
	if _, ok := s.ledger.Account(to); !ok {
		return s.ledger.Transfer(s.sess, to, "", s.input)
	}

	amount, err := s.input.ReadLine("Enter amount to transfer: ")
	if err != nil {
		return err
	}
	return s.ledger.Transfer(s.sess, to, amount, s.input)
}

func (s *Shell) redraw() {
	if s.clear {
		fmt.Fprint(s.out, clearSequence)
	}
	fmt.Fprintln(s.out, Status(s.sess))
	fmt.Fprintln(s.out)
	if msg := s.ledger.TakeMessage(); msg != "" {
		fmt.Fprintln(s.out, messageStyle.Render(msg))
		fmt.Fprintln(s.out)
	}
}
