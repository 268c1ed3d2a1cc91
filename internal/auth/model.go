package auth

import (
	"strings"

	appErrors "github.com/moneymanager/money_manager/errors"
)

type User struct {
	ID             int64  `json:"id"`
	UserName       string `json:"username"`
	Email          string `json:"email"`
	PasswordHashed string `json:"-"`
}

type NewUser struct {
	UserName      string
	Email         string
	PasswordPlain string
}

type UserCredentialsPure struct {
	UserName      string
	PasswordPlain string
}

// UpdateCredentials carries optional replacements; empty fields are left unchanged.
type UpdateCredentials struct {
	NewUserName      string
	NewPasswordPlain string
}

func (newUser NewUser) ValidateUserFields() error {
	if strings.TrimSpace(newUser.UserName) == "" {
		return appErrors.New(appErrors.ErrInvalidInput, "Username cannot be empty!")
	}
	if strings.TrimSpace(newUser.Email) == "" {
		return appErrors.New(appErrors.ErrInvalidInput, "Email cannot be empty!")
	}
	if newUser.PasswordPlain == "" {
		return appErrors.New(appErrors.ErrInvalidInput, "Password cannot be empty!")
	}
	return nil
}
