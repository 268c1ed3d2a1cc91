package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Compared against when the username is unknown so both failure paths cost one bcrypt run.
var missingUserHash, _ = bcrypt.GenerateFromPassword([]byte("money-manager-missing-user"), bcrypt.DefaultCost)

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash plain password: %w", err)
	}
	return string(hashedPassword), nil
}

func ComparePasswords(hashedPwd string, plainPwd string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPwd), []byte(plainPwd))
	return err == nil
}

// VerifyUser reports whether plainPwd matches user's password. A nil user never matches.
func VerifyUser(user *User, plainPwd string) bool {
	if user == nil {
		bcrypt.CompareHashAndPassword(missingUserHash, []byte(plainPwd))
		return false
	}
	return ComparePasswords(user.PasswordHashed, plainPwd)
}
