package domain

import (
	"strings"
	"time"
)

// SystemAccountEmail identifies the reserved non-human account. It is never
// an admin and is left out of every admin or account count.
const SystemAccountEmail = "system@doorman.invalid"

type Account struct {
	ID           string
	Email        string // unique, normalised with NormalizeEmail
	DisplayName  string
	PasswordHash string // argon2id PHC string
	Admin        bool
	Enabled      bool
	System       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ActiveForAuthentication reports whether the account may sign in.
func (a Account) ActiveForAuthentication() bool {
	return a.Enabled && !a.System
}

// NormalizeEmail trims and lower-cases an email so uniqueness is case
// insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Registration struct {
	Email          string `json:"email"`
	DisplayName    string `json:"display_name"`
	Secret         string `json:"password"`
	RequestedAdmin bool   `json:"admin"`
}

type ProfileUpdate struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type CredentialUpdate struct {
	CurrentSecret         string `json:"current_password"`
	NewSecret             string `json:"password"`
	NewSecretConfirmation string `json:"password_confirmation"`
}

// AccountUpdate is the raw edit-account request. Which update path handles
// it depends on TouchesCredential.
type AccountUpdate struct {
	ProfileUpdate
	CredentialUpdate
}

// TouchesCredential reports whether any credential field is present. Such
// requests must go through the secret-verifying path even when profile
// fields are also set.
func (u AccountUpdate) TouchesCredential() bool {
	return u.CurrentSecret != "" || u.NewSecret != "" || u.NewSecretConfirmation != ""
}

// BootstrapContext tells the registration form whether the registrant may
// pick the admin flag.
type BootstrapContext struct {
	HaveAccounts                 bool
	AdminExists                  bool
	FirstUserBecomesAdminEnabled bool
}
