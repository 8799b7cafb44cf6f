package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/palaver-dev/palaver/internal/errors"
)

const (
	maxUsernameLen = 20
	minPasswordLen = 5
	maxTitleLen    = 200
	maxTextLen     = 2000
)

type CredentialsValidator struct{}

func (v *CredentialsValidator) Username(username string) error {
	if strings.TrimSpace(username) == "" {
		return errors.Validation("Username must not be empty")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return errors.Validation("Username is too long")
	}
	if strings.ContainsAny(username, " \t\n") {
		return errors.Validation("Username must not contain whitespace")
	}
	return nil
}

func (v *CredentialsValidator) Password(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return errors.Validation("Password is too short")
	}
	return nil
}

type ThreadValidator struct{}

func (v *ThreadValidator) Title(title string) error {
	if title == "" {
		return errors.Validation("Title must not be empty")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return errors.Validation("Title is too long")
	}
	return nil
}

func (v *ThreadValidator) Text(text string) error {
	return validateText(text)
}

type ReplyValidator struct{}

func (v *ReplyValidator) Text(text string) error {
	return validateText(text)
}

func validateText(text string) error {
	if text == "" {
		return errors.Validation("Text must not be empty")
	}
	if utf8.RuneCountInString(text) > maxTextLen {
		return errors.Validation("Text is too long")
	}
	return nil
}
