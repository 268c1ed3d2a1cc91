package auth

import (
	"testing"

	appErrors "github.com/moneymanager/money_manager/errors"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	plain := "messi10"

	hash, err := HashPassword(plain)
	require.NoError(t, err)
	require.NotEqual(t, plain, hash)

	require.True(t, ComparePasswords(hash, plain))
	require.False(t, ComparePasswords(hash, "messi11"))
	require.False(t, ComparePasswords("", plain))
}

func TestValidateUserFields(t *testing.T) {
	tests := []struct {
		name        string
		input       NewUser
		expectedMsg string
	}{
		{
			name:        "Fail - Empty Username",
			input:       NewUser{UserName: " ", Email: "alex@example.com", PasswordPlain: "123"},
			expectedMsg: "Username cannot be empty!",
		},
		{
			name:        "Fail - Empty Email",
			input:       NewUser{UserName: "alex", PasswordPlain: "123"},
			expectedMsg: "Email cannot be empty!",
		},
		{
			name:        "Fail - Empty Password",
			input:       NewUser{UserName: "alex", Email: "alex@example.com"},
			expectedMsg: "Password cannot be empty!",
		},
		{
			name:  "Success",
			input: NewUser{UserName: "alex", Email: "alex@example.com", PasswordPlain: "secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.ValidateUserFields()
			if tt.expectedMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Equal(t, appErrors.ErrInvalidInput, appErrors.CodeOf(err))
			require.Equal(t, tt.expectedMsg, appErrors.MessageOf(err))
		})
	}
}

func TestVerifyUser(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	user := &User{ID: 7, UserName: "alex", PasswordHashed: hash}
	require.True(t, VerifyUser(user, "hunter2"))
	require.False(t, VerifyUser(user, "hunter3"))
	require.False(t, VerifyUser(nil, "hunter2"))
}
