package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrongPassword(t *testing.T) {
	cases := []struct {
		pw string
		ok bool
	}{
		{"Str0ng!pass", true},
		{"abc12345", false},   // no uppercase, no symbol
		{"ABC12345!", false},  // no lowercase
		{"Abcdefg!", false},   // no digit
		{"Abc1234567", false}, // no symbol
		{"A1!b", false},       // too short
		{"P@ssw0rd", true},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, StrongPassword(c.pw), "password %q", c.pw)
	}
}

func TestStruct_StrongPasswordMessage(t *testing.T) {
	type req struct {
		Password string `validate:"required,strongpassword"`
	}
	err := Struct(req{Password: "abc12345"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uppercase, lowercase, number, and special character")
}

func TestStruct_RequiredFields(t *testing.T) {
	type req struct {
		Email string `validate:"required,email"`
	}
	require.Error(t, Struct(req{}))
	require.Error(t, Struct(req{Email: "not-an-email"}))
	require.NoError(t, Struct(req{Email: "a@b.com"}))
}
