package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@example.co.uk",
		"a@b.co",
		"user-name@my-host.io",
	}
	for _, s := range valid {
		assert.True(t, IsValidEmail(s), s)
	}

	invalid := []string{
		"",
		"user",
		"user@",
		"@example.com",
		"no-at.example.com",
		"a@b.c",
		"user@example.",
		"user name@example.com",
	}
	for _, s := range invalid {
		assert.False(t, IsValidEmail(s), s)
	}
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{
		"081234567890",
		"+62 81234567890",
		"+6281234567890",
		"12345678",
	}
	for _, s := range valid {
		assert.True(t, IsValidPhone(s), s)
	}

	invalid := []string{
		"",
		"abc",
		"123",
		"+",
		"0812-3456-7890",
	}
	for _, s := range invalid {
		assert.False(t, IsValidPhone(s), s)
	}
}

func TestIsValidPassword(t *testing.T) {
	assert.False(t, IsValidPassword(""))
	assert.False(t, IsValidPassword("12345"))
	assert.True(t, IsValidPassword("123456"))
	assert.True(t, IsValidPassword("a very long password"))
}
