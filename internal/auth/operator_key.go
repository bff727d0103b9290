package auth

import "golang.org/x/crypto/bcrypt"

// HashOperatorKey hashes a plaintext operator key with the given cost.
// The hash, not the key, goes into configuration.
func HashOperatorKey(key string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CompareOperatorKey verifies an operator key against its stored hash.
func CompareOperatorKey(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
