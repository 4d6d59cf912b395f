package validator

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"savaan_backend/internal/models"
)

func TestIsValidMobile(t *testing.T) {
	valid := []string{"6000000000", "7123456789", "8999999999", "9876543210"}
	for _, m := range valid {
		assert.True(t, IsValidMobile(m), m)
	}

	invalid := []string{"", "5876543210", "987654321", "98765432100", "98765o4321", "+919876543210"}
	for _, m := range invalid {
		assert.False(t, IsValidMobile(m), m)
	}
}

func TestIsValidMobileRandomDigits(t *testing.T) {
	// Any 10-digit string is valid exactly when its first digit is 6-9.
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		m := ""
		for j := 0; j < 10; j++ {
			m += fmt.Sprintf("%d", rng.Intn(10))
		}
		want := m[0] >= '6' && m[0] <= '9'
		assert.Equal(t, want, IsValidMobile(m), m)
	}
}

func TestIsValidGmail(t *testing.T) {
	assert.True(t, IsValidGmail("someone@gmail.com"))
	assert.True(t, IsValidGmail("Some.One+tag@GMAIL.COM"), "case-insensitive")

	invalid := []string{"", "someone@yahoo.com", "someone@gmail.co", "@gmail.com", "two words@gmail.com"}
	for _, e := range invalid {
		assert.False(t, IsValidGmail(e), e)
	}
}

func TestIsValidAadhar(t *testing.T) {
	assert.True(t, IsValidAadhar("123456789012"))
	for _, a := range []string{"", "12345678901", "1234567890123", "12345678901a"} {
		assert.False(t, IsValidAadhar(a), a)
	}
}

func TestIsValidPAN(t *testing.T) {
	assert.True(t, IsValidPAN("ABCDE1234F"))
	assert.True(t, IsValidPAN("abcde1234f"), "lowercase accepted, uppercased later")
	for _, p := range []string{"", "ABCD1234F", "ABCDE12345", "1BCDE1234F", "ABCDE1234FF"} {
		assert.False(t, IsValidPAN(p), p)
	}
}

func TestIsValidPinCode(t *testing.T) {
	assert.True(t, IsValidPinCode("800001"))
	for _, p := range []string{"", "80001", "8000011", "80000a"} {
		assert.False(t, IsValidPinCode(p), p)
	}
}

func TestIsValidHomePhone(t *testing.T) {
	// Unlike mobiles, home phones have no leading-digit restriction.
	assert.True(t, IsValidHomePhone("0612234567"))
	assert.True(t, IsValidHomePhone("1234567890"))
	assert.False(t, IsValidHomePhone("061223456"))
	assert.False(t, IsValidHomePhone("06122345678"))
}

func TestIsStrongPassword(t *testing.T) {
	valid := []string{"Secret@1", "Aa!aaa", `Pass"word`, "X{x}yyy"}
	for _, p := range valid {
		assert.True(t, IsStrongPassword(p), p)
	}

	invalid := []string{
		"",
		"Ab@1x",     // too short
		"secret@1",  // no uppercase
		"SECRET@1",  // no lowercase
		"Secret11",  // no special character
	}
	for _, p := range invalid {
		assert.False(t, IsStrongPassword(p), p)
	}
}

func TestValidateNominee(t *testing.T) {
	full := &models.Nominee{
		Name: "Sita", Relation: "Spouse", Mobile: "9123456789",
		BankName: "SBI", AccountNo: "123", IFSC: "SBIN0001234", Branch: "Main",
	}
	assert.Empty(t, ValidateNominee("firstNominee", full))

	errs := ValidateNominee("firstNominee", &models.Nominee{
		Relation: "cousin", Mobile: "12345",
	})
	assert.Contains(t, errs, "firstNominee.name")
	assert.Contains(t, errs, "firstNominee.relation")
	assert.Contains(t, errs, "firstNominee.mobile")
	assert.Contains(t, errs, "firstNominee.bankName")

	errs = ValidateNominee("firstNominee", nil)
	assert.Contains(t, errs, "firstNominee")
}

func TestValidateSecondNominee(t *testing.T) {
	assert.Nil(t, ValidateSecondNominee(&models.Nominee{}), "all empty passes")

	// One filled field pulls in every rule.
	errs := ValidateSecondNominee(&models.Nominee{Name: "Ram"})
	assert.NotContains(t, errs, "secondNominee.name")
	assert.Contains(t, errs, "secondNominee.relation")
	assert.Contains(t, errs, "secondNominee.mobile")
	assert.Contains(t, errs, "secondNominee.ifsc")
}

func TestValidatorStructTags(t *testing.T) {
	v := New()

	type payload struct {
		Mobile   string `json:"mobile" validate:"required,in_mobile"`
		Email    string `json:"email" validate:"required,gmail"`
		Password string `json:"password" validate:"required,strong_password"`
		PAN      string `json:"pan" validate:"omitempty,pan"`
	}

	err := v.Validate(&payload{Mobile: "9876543210", Email: "a@gmail.com", Password: "Secret@1"})
	assert.NoError(t, err, "optional empty pan passes")

	err = v.Validate(&payload{Mobile: "1234", Email: "a@yahoo.com", Password: "weak", PAN: "nope"})
	vErr, ok := err.(*ValidationError)
	if assert.True(t, ok) {
		// Keys use the json names, not the Go field names.
		assert.Contains(t, vErr.Errors, "mobile")
		assert.Contains(t, vErr.Errors, "email")
		assert.Contains(t, vErr.Errors, "password")
		assert.Contains(t, vErr.Errors, "pan")
	}
}

func TestValidationErrorMessagesSorted(t *testing.T) {
	vErr := &ValidationError{Errors: map[string]string{
		"b": "second", "a": "first", "c": "third",
	}}
	assert.Equal(t, []string{"a: first", "b: second", "c: third"}, vErr.Messages())
}
