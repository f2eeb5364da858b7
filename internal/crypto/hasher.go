package crypto

import (
	"fmt"
	"strings"
)

// Supported values of the password hash algorithm setting.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// hasherSet hashes with one algorithm and verifies against any supported
// one, picked by the stored hash's prefix. Switching the algorithm thus
// leaves existing accounts able to log in.
type hasherSet struct {
	primary PasswordHasher
	bcrypt  PasswordHasher
	argon2  PasswordHasher
}

// NewPasswordHasher returns the [PasswordHasher] for algorithm. An empty
// algorithm means bcrypt. bcryptCost is only used by bcrypt hashes.
func NewPasswordHasher(algorithm string, bcryptCost int) (PasswordHasher, error) {
	set := &hasherSet{
		bcrypt: NewBcryptHasher(bcryptCost),
		argon2: NewArgon2Hasher(),
	}

	switch algorithm {
	case "", AlgorithmBcrypt:
		set.primary = set.bcrypt
	case AlgorithmArgon2id:
		set.primary = set.argon2
	default:
		return nil, fmt.Errorf("unknown password hash algorithm %q", algorithm)
	}

	return set, nil
}

// Hash implements [PasswordHasher].
func (s *hasherSet) Hash(plain string) (string, error) {
	return s.primary.Hash(plain)
}

// Verify implements [PasswordHasher].
func (s *hasherSet) Verify(plain, hash string) bool {
	if strings.HasPrefix(hash, argon2idPrefix) {
		return s.argon2.Verify(plain, hash)
	}
	return s.bcrypt.Verify(plain, hash)
}
