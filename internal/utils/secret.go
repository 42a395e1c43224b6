package utils

import "golang.org/x/crypto/bcrypt"

// HashSecret returns a bcrypt hash of the given shared secret.  The
// default cost is plenty for a value compared once per admin action.
func HashSecret(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifySecret compares a bcrypt hash against a supplied secret in
// constant time.
func VerifySecret(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
