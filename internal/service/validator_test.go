package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stationops/roster-service/internal/service"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
		errFn require.ErrorAssertionFunc
	}{
		{"Valid email", "user@example.com", require.NoError},
		{"Valid email with plus tag", "user+tag@example.com", require.NoError},
		{"Valid email with subdomain", "user@mail.example.com", require.NoError},
		{"Invalid: no domain zone", "abc@mail", require.Error},
		{"Invalid: double @ symbol", "user@@example.com", require.Error},
		{"Invalid: domain starts with dot", "user@.com", require.Error},
		{"Invalid: two consecutive dots", "us..er@example.com", require.Error},
		{"Invalid: exceeds length limit", strings.Repeat("x", service.EmailMaxLen) + "@example.com", require.Error},
		{"Invalid: empty email", "", require.Error},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := service.ValidateEmail(test.email)
			test.errFn(t, err)
		})
	}
}

func TestValidateFullName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		errFn require.ErrorAssertionFunc
	}{
		{"Valid name", "Jordan Lee", require.NoError},
		{"Valid name with hyphen", "Anna-Maria Smith", require.NoError},
		{"Valid name with apostrophe", "Siobhan O'Brien", require.NoError},
		{"Valid non-Latin name", "Мария Александрова", require.NoError},
		{"Invalid: too short", "A", require.Error},
		{"Invalid: contains digits", "Jordan123", require.Error},
		{"Invalid: special characters", "Jordan@Lee", require.Error},
		{"Invalid: too long", strings.Repeat("a", service.NameMaxLen+1), require.Error},
		{"Invalid: empty", "", require.Error},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := service.ValidateFullName(test.input)
			test.errFn(t, err)
		})
	}
}

func TestValidatePhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		errFn require.ErrorAssertionFunc
	}{
		{"Valid international", "+15550001234", require.NoError},
		{"Valid with separators", "+1 (555) 000-1234", require.NoError},
		{"Valid without plus", "5550001234", require.NoError},
		{"Invalid: letters", "call-me-maybe", require.Error},
		{"Invalid: too short", "+123", require.Error},
		{"Invalid: too long", "+1234567890123456789", require.Error},
		{"Invalid: empty", "", require.Error},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := service.ValidatePhone(test.input)
			test.errFn(t, err)
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	got, err := service.NormalizeEmail("  Worker@Example.COM ")
	require.NoError(t, err)
	require.Equal(t, "worker@example.com", got)

	_, err = service.NormalizeEmail("not-an-email")
	require.Error(t, err)
}
