package service

// Credentials hashes and checks account secrets and mints token secrets.
// cryptox.Hasher is the production implementation.
type Credentials interface {
	Hash(secret string) (string, error)
	Verify(hash, secret string) bool
	// Random returns a new opaque secret suitable for an application token.
	Random() (string, error)
	// Fingerprint is the deterministic lookup key stored for a token secret.
	Fingerprint(secret string) string
}
