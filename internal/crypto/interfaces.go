package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into one-way salted hashes and
// checks plaintext candidates against them.
//
// Hash output is randomized per call: hashing the same password twice yields
// different strings, and both verify against that password.
type PasswordHasher interface {
	// Hash returns an encoded hash of plain. An empty password is hashed like
	// any other input.
	Hash(plain string) (string, error)

	// Verify reports whether plain matches hash. A malformed hash yields
	// false, never a panic.
	Verify(plain, hash string) bool
}
