package auth

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for every stored admin hash, whether
// written at startup bootstrap or by the seed command.
const PasswordCost = 12

var (
	ErrEmptyPassword   = errors.New("empty password")
	ErrMissingPassword = errors.New("missing hash or password")
)

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func ComparePassword(hash, password string) error {
	if hash == "" || password == "" {
		return ErrMissingPassword
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// DummyHash is a PasswordCost hash matching no real password. Comparing
// against it when an account is missing costs the same as a wrong password.
var DummyHash = sync.OnceValue(func() string {
	hashed, err := bcrypt.GenerateFromPassword([]byte("no account has this password"), PasswordCost)
	if err != nil {
		panic(err)
	}
	return string(hashed)
})
