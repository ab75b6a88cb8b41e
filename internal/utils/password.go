package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a back-office account password with bcrypt.  The cost
// comes from BCRYPT_COST so deployments can raise it without a rebuild; the
// result is what users.password_hash stores.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored hash.  bcrypt's
// comparison is constant time; a false result is the only signal a failed
// login gets.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
