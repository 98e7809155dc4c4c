package ledger

// ErrUnknownUser indicates the named username has no customer record
type ErrUnknownUser struct {
	Username string
}

func (e ErrUnknownUser) Error() string {
	return "unknown user: " + e.Username
}

// ErrUnknownAccount indicates the customer exists but has no account of the
// named type
type ErrUnknownAccount struct {
	Username    string
	AccountType string
}

func (e ErrUnknownAccount) Error() string {
	return "unknown account type " + e.AccountType + " for user " + e.Username
}

// ErrDuplicateUser indicates a username uniqueness violation
type ErrDuplicateUser struct {
	Username string
}

func (e ErrDuplicateUser) Error() string {
	return "user already exists: " + e.Username
}

// ErrUnsupportedKind indicates ApplyTransaction was called with a kind other
// than deposit or withdrawal
type ErrUnsupportedKind struct {
	Kind string
}

func (e ErrUnsupportedKind) Error() string {
	return "unsupported transaction kind: " + e.Kind
}
