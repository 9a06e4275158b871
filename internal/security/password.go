package security

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plain text password with bcrypt.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password.
func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// dummyHash is a bcrypt hash of a random throwaway string. Login compares
// against it when the username does not exist so both failure paths cost a
// bcrypt verification and neither reveals which check failed.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// CheckPasswordDummy burns one bcrypt comparison and always fails.
func CheckPasswordDummy(plain string) error {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plain))
	return bcrypt.ErrMismatchedHashAndPassword
}
