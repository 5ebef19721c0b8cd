package domain

import "time"

// ApplicationTokensMax caps the number of application tokens one account
// can hold at the same time.
const ApplicationTokensMax = 5

type ApplicationToken struct {
	ID          string
	AccountID   string
	Application string // label, unique per account (case sensitive)
	TokenHash   string // base64url SHA-256 of the secret
	CreatedAt   time.Time
}

// IssuedToken is returned once, on creation. The plaintext secret is not
// stored anywhere and cannot be recovered later.
type IssuedToken struct {
	Token  ApplicationToken
	Secret string
}
