package auth

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength = 12
	PasswordSymbols   = "!@#$%^&*()-_+=[]{};:'\",.<>?/~`|\\"
)

var ErrWeakPassword = errors.New("Пароль должен содержать не менее 12 символов, включая заглавные и строчные буквы, цифры и специальные символы.")

// IsStrongPassword требует длину не менее 12 символов и хотя бы по одной
// заглавной и строчной латинской букве, цифре и символу из PasswordSymbols.
func IsStrongPassword(password string) bool {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

func ValidatePassword(password string) error {
	if !IsStrongPassword(password) {
		return ErrWeakPassword
	}
	return nil
}
