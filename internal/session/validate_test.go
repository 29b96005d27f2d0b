package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		pw    string
		valid bool
	}{
		{"Secreta1", true},
		{"Abcdefg1", true},
		{"A1abcdefghijklmn", true},   // exactly 16
		{"Señorita12345678", true},   // 16 characters, 17 bytes
		{"Corta1A", false},           // 7 chars
		{"A1abcdefghijklmno", false}, // 17 chars
		{"Señorita123456789", false}, // 17 characters
		{"sinupper1", false},
		{"SinNumeros", false},
		{"", false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.valid, isValidPassword(tc.pw), "password %q", tc.pw)
	}
}

func TestValidateRegistration(t *testing.T) {
	valid := registrationInput{
		Name:     "Ana García",
		Email:    "ana@example.com",
		Password: "Secreta1",
		Phone:    "342 555 1234",
		Province: "Santa Fe",
		Locality: "Esperanza",
	}
	assert.NoError(t, validateRegistration(valid))

	tests := []struct {
		name   string
		mutate func(*registrationInput)
		want   string
	}{
		{"short name", func(in *registrationInput) { in.Name = "A" }, msgNameLength},
		{"long name", func(in *registrationInput) { in.Name = strings.Repeat("a", 51) }, msgNameLength},
		{"bad email", func(in *registrationInput) { in.Email = "not-an-email" }, msgInvalidEmail},
		{"weak password", func(in *registrationInput) { in.Password = "corta" }, msgPasswordRules},
		{"bad phone", func(in *registrationInput) { in.Phone = "abc" }, msgPhoneLength},
		{"short province", func(in *registrationInput) { in.Province = "X" }, msgProvinceLength},
		{"short locality", func(in *registrationInput) { in.Locality = "X" }, msgLocalityLength},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			err := validateRegistration(in)
			assert.EqualError(t, err, tc.want)
		})
	}
}

func TestValidateRegistration_PhoneOptional(t *testing.T) {
	in := registrationInput{
		Name:     "Ana García",
		Email:    "ana@example.com",
		Password: "Secreta1",
		Province: "Santa Fe",
		Locality: "Esperanza",
	}
	assert.NoError(t, validateRegistration(in))
}

func TestValidateNewPassword(t *testing.T) {
	assert.NoError(t, validateNewPassword("Secreta1", "Secreta1"))
	assert.EqualError(t, validateNewPassword("corta", "corta"), msgPasswordRules)
	assert.EqualError(t, validateNewPassword("Secreta1", "Distinta1"), msgPasswordsDiff)
}

func TestValidateServiceInput(t *testing.T) {
	longDesc := strings.Repeat("x", 100)
	midDesc := strings.Repeat("x", 60)

	assert.NoError(t, validateServiceInput("Plomería", longDesc, "Hogar", 1500, 1, true))

	assert.EqualError(t,
		validateServiceInput("", longDesc, "Hogar", 1500, 1, true), msgTitleRequired)
	assert.EqualError(t,
		validateServiceInput("Plomería", midDesc, "Hogar", 1500, 1, true), msgDescriptionMin)
	assert.EqualError(t,
		validateServiceInput("Plomería", longDesc, "", 1500, 1, true), msgCategoryReq)
	assert.EqualError(t,
		validateServiceInput("Plomería", longDesc, "Hogar", 0, 1, true), msgPriceInvalid)
	assert.EqualError(t,
		validateServiceInput("Plomería", longDesc, "Hogar", 1500, 0, true), msgZonesRequired)

	// Updates tolerate shorter descriptions.
	assert.NoError(t, validateServiceInput("Plomería", midDesc, "Hogar", 1500, 1, false))
	assert.EqualError(t,
		validateServiceInput("Plomería", strings.Repeat("x", 40), "Hogar", 1500, 1, false), msgDescriptionUpd)
}

func TestClassifyResetFailure(t *testing.T) {
	tests := []struct {
		serverMsg string
		want      string
	}{
		{"token already used", msgResetUsed},
		{"El enlace ya fue utilizado", msgResetUsed},
		{"token expired", msgResetExpired},
		{"El enlace está expirado", msgResetExpired},
		{"password does not meet requirements", msgResetWeak},
		{"La contraseña es muy débil", msgResetWeak},
		{"invalid token", msgResetInvalid},
		{"", msgResetInvalid},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, classifyResetFailure(tc.serverMsg), "server message %q", tc.serverMsg)
	}
}
