package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/stationops/roster-service/internal/entity"
)

const (
	EmailMaxLen = 255
	NameMinLen  = 2
	NameMaxLen  = 100
)

var (
	emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nameRegexp  = regexp.MustCompile(`^[\p{L}]+([ '.-][\p{L}]+)*\.?$`)
	phoneRegexp = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

func ValidateEmail(email string) error {
	if len(email) > EmailMaxLen {
		return entity.ErrInvalidEmail
	}

	if !emailRegexp.MatchString(email) {
		return entity.ErrInvalidEmail
	}

	if strings.Contains(email, "..") {
		return entity.ErrInvalidEmail
	}

	return nil
}

func ValidateFullName(name string) error {
	nameLen := utf8.RuneCountInString(name)
	if nameLen < NameMinLen || nameLen > NameMaxLen {
		return entity.ErrInvalidName
	}

	if !nameRegexp.MatchString(name) {
		return entity.ErrInvalidName
	}

	return nil
}

func ValidatePhone(phone string) error {
	if !phoneRegexp.MatchString(normalizePhone(phone)) {
		return entity.ErrInvalidPhone
	}

	return nil
}

func NormalizeEmail(email string) (string, error) {
	normalized := strings.TrimSpace(email)
	normalized = strings.ToLower(normalized)

	err := ValidateEmail(normalized)
	if err != nil {
		return "", err
	}

	return normalized, nil
}

func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "(", "")
	phone = strings.ReplaceAll(phone, ")", "")
	phone = strings.ReplaceAll(phone, "-", "")

	return phone
}
