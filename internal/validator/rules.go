package validator

import (
	"log"
	"regexp"
	"strings"

	"savaan_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// Shared field predicates. These are the single source of truth for field
// rules: the wizard steps, the struct tags and the services all go through
// them, so client-facing and store-facing validation cannot drift apart.

var (
	mobileRegexp    = regexp.MustCompile(`^[6-9]\d{9}$`)
	gmailRegexp     = regexp.MustCompile(`^[^\s@]+@gmail\.com$`)
	aadharRegexp    = regexp.MustCompile(`^\d{12}$`)
	panRegexp       = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	pinCodeRegexp   = regexp.MustCompile(`^\d{6}$`)
	homePhoneRegexp = regexp.MustCompile(`^\d{10}$`)
	upperRegexp     = regexp.MustCompile(`[A-Z]`)
	lowerRegexp     = regexp.MustCompile(`[a-z]`)
	specialRegexp   = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// IsValidMobile reports whether m is exactly 10 digits starting with 6-9.
func IsValidMobile(m string) bool {
	return mobileRegexp.MatchString(m)
}

// IsValidGmail reports whether e is a well-formed address ending in @gmail.com.
// Case-insensitive; the address is lowercased before persistence.
func IsValidGmail(e string) bool {
	return gmailRegexp.MatchString(strings.ToLower(e))
}

// IsValidAadhar reports whether a is exactly 12 digits.
func IsValidAadhar(a string) bool {
	return aadharRegexp.MatchString(a)
}

// IsValidPAN reports whether p matches the PAN shape 5 letters + 4 digits +
// 1 letter. Lowercase input is accepted; PAN is uppercased before persistence.
func IsValidPAN(p string) bool {
	return panRegexp.MatchString(strings.ToUpper(p))
}

// IsValidPinCode reports whether p is exactly 6 digits.
func IsValidPinCode(p string) bool {
	return pinCodeRegexp.MatchString(p)
}

// IsValidHomePhone reports whether p is exactly 10 digits. Home phones have no
// leading-digit restriction.
func IsValidHomePhone(p string) bool {
	return homePhoneRegexp.MatchString(p)
}

// IsStrongPassword enforces the registration password policy: 6+ characters
// with at least one uppercase, one lowercase and one special character.
func IsStrongPassword(p string) bool {
	return len(p) >= 6 &&
		upperRegexp.MatchString(p) &&
		lowerRegexp.MatchString(p) &&
		specialRegexp.MatchString(p)
}

// ValidateNominee returns a field->message map for a required nominee.
// The prefix ("firstNominee" / "secondNominee") scopes the field keys.
func ValidateNominee(prefix string, n *models.Nominee) map[string]string {
	errs := make(map[string]string)
	if n == nil {
		errs[prefix] = "Nominee details are required"
		return errs
	}
	if n.Name == "" {
		errs[prefix+".name"] = "Nominee name is required"
	}
	if !models.ValidRelation(string(n.Relation)) {
		errs[prefix+".relation"] = "Must be a valid nominee relation"
	}
	if !IsValidMobile(n.Mobile) {
		errs[prefix+".mobile"] = "Must be a valid 10-digit mobile number"
	}
	if n.BankName == "" {
		errs[prefix+".bankName"] = "Nominee bank name is required"
	}
	if n.AccountNo == "" {
		errs[prefix+".accountNo"] = "Nominee account number is required"
	}
	if n.IFSC == "" {
		errs[prefix+".ifsc"] = "Nominee IFSC code is required"
	}
	if n.Branch == "" {
		errs[prefix+".branch"] = "Nominee branch is required"
	}
	return errs
}

// ValidateSecondNominee applies the all-or-nothing rule: an entirely empty
// second nominee is fine, a partially filled one must validate completely.
func ValidateSecondNominee(n *models.Nominee) map[string]string {
	if n.Empty() {
		return nil
	}
	return ValidateNominee("secondNominee", n)
}

// registerCustomRules wires the predicates into struct-tag validation.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup defect.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// Empty values pass: 'required' owns presence checks.
	stringRule := func(pred func(string) bool) validator.Func {
		return func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if value == "" {
				return true
			}
			return pred(value)
		}
	}

	mustRegister("in_mobile", stringRule(IsValidMobile))
	mustRegister("gmail", stringRule(IsValidGmail))
	mustRegister("aadhar", stringRule(IsValidAadhar))
	mustRegister("pan", stringRule(IsValidPAN))
	mustRegister("pincode", stringRule(IsValidPinCode))
	mustRegister("home_phone", stringRule(IsValidHomePhone))
	mustRegister("strong_password", stringRule(IsStrongPassword))
	mustRegister("gender", stringRule(models.ValidGender))
	mustRegister("blood_group", stringRule(models.ValidBloodGroup))
	mustRegister("nominee_relation", stringRule(models.ValidRelation))
}
