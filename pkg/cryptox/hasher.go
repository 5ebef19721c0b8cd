package cryptox

// Hasher is the credential collaborator used by the account services. It
// hashes account passwords with argon2id and mints application token secrets.
type Hasher struct {
	pepper string
}

// NewHasher returns a Hasher mixing pepper into every password hash.
func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper}
}

// NewHasherFromFile loads (or creates) the pepper file at path.
func NewHasherFromFile(path string) (*Hasher, error) {
	pepper, err := LoadPepper(path)
	if err != nil {
		return nil, err
	}
	return NewHasher(pepper), nil
}

func (h *Hasher) Hash(secret string) (string, error) {
	return HashPassword(secret, h.pepper)
}

// Verify reports whether secret matches hash. Malformed hashes never match.
func (h *Hasher) Verify(hash, secret string) bool {
	return VerifyPassword(secret, h.pepper, hash) == nil
}

func (h *Hasher) Random() (string, error) {
	return GenerateToken(TokenSize256)
}

func (h *Hasher) Fingerprint(secret string) string {
	return FingerprintToken(secret)
}
