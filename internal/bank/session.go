package bank

// Session is the at-most-one authenticated account, passed explicitly
// between the caller and the Ledger. The zero value is logged out.
type Session struct {
	account *Account
}

// NoSession is the logged-out state.
var NoSession = Session{}

// Active reports whether an account is logged in.
func (s Session) Active() bool { return s.account != nil }

// Account returns the logged-in account, or nil.
func (s Session) Account() *Account { return s.account }

// ID returns the logged-in account id, or "".
func (s Session) ID() string {
	if s.account == nil {
		return ""
	}
	return s.account.id
}
