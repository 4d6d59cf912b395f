package dto

import (
	"strings"

	"savaan_backend/internal/models"
)

// RegisterRequest is the full registrant payload accepted by POST
// /api/register and assembled step by step in the wizard. Custom tags
// (in_mobile, gmail, aadhar, pan, pincode, ...) live in internal/validator;
// nominee sub-records are validated by the shared nominee helpers.
type RegisterRequest struct {
	// Verification
	Mobile string `json:"mobile" validate:"required,in_mobile"`

	// Basic details
	Name       string `json:"name" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,gmail"`
	Password   string `json:"password" validate:"required,strong_password"`
	Gender     string `json:"gender" validate:"required,gender"`
	DOB        string `json:"dob" validate:"required"`
	HomePhone  string `json:"homePhone" validate:"omitempty,home_phone"`
	BloodGroup string `json:"bloodGroup" validate:"omitempty,blood_group"`
	Aadhar     string `json:"aadhar" validate:"required,aadhar"`
	PAN        string `json:"pan" validate:"required,pan"`

	// Job details
	Department      string `json:"department" validate:"required"`
	OtherDepartment string `json:"otherDepartment"`
	DepartmentID    string `json:"departmentId" validate:"required"`
	JobDescription  string `json:"jobDescription" validate:"required"`
	Block           string `json:"block" validate:"required"`
	Post            string `json:"post" validate:"required"`
	SubPost         string `json:"subPost"`
	JobAddress      string `json:"jobAddress" validate:"required"`
	PinCode         string `json:"pinCode" validate:"required,pincode"`
	District        string `json:"district" validate:"required"`

	// Nominees
	FirstNominee  models.Nominee  `json:"firstNominee"`
	SecondNominee *models.Nominee `json:"secondNominee,omitempty"`

	// Other details
	HomeAddress    string `json:"homeAddress" validate:"required"`
	HomeDistrict   string `json:"homeDistrict" validate:"required"`
	HomePinCode    string `json:"homePinCode" validate:"required,pincode"`
	Disease        string `json:"disease"`
	CauseOfIllness string `json:"causeOfIllness"`
}

// Normalize applies the canonical transformations before persistence:
// lowercase email, uppercase PAN and IFSC codes, trimmed name, "Other"
// department resolution, nominee accountHolderName defaulting, and dropping
// an untouched second nominee. Idempotent, so a resubmission after a failed
// create reuses the same payload unchanged.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.PAN = strings.ToUpper(strings.TrimSpace(r.PAN))

	if r.Department == "Other" && r.OtherDepartment != "" {
		r.Department = r.OtherDepartment
	}

	normalizeNominee(&r.FirstNominee)
	if r.SecondNominee != nil {
		if r.SecondNominee.Empty() {
			r.SecondNominee = nil
		} else {
			normalizeNominee(r.SecondNominee)
		}
	}
}

func normalizeNominee(n *models.Nominee) {
	n.IFSC = strings.ToUpper(n.IFSC)
	if n.AccountHolderName == "" {
		n.AccountHolderName = n.Name
	}
}
