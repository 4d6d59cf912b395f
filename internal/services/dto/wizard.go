package dto

import "savaan_backend/internal/models"

// Wizard session requests. Each step payload carries exactly the fields that
// step owns; unknown or missing-shape bodies are rejected at bind time.

// StartSessionRequest opens a registration session for a mobile number and
// triggers the verification code.
type StartSessionRequest struct {
	Mobile string `json:"mobile" validate:"required,in_mobile"`
}

// VerifyCodeStep is the payload for advancing past the Verification step.
type VerifyCodeStep struct {
	OTP string `json:"otp" validate:"required"`
}

// BasicDetailsStep is the payload for the Basic Details step.
type BasicDetailsStep struct {
	Name       string `json:"name" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,gmail"`
	Password   string `json:"password" validate:"required,strong_password"`
	Gender     string `json:"gender" validate:"required,gender"`
	DOB        string `json:"dob" validate:"required"`
	HomePhone  string `json:"homePhone" validate:"omitempty,home_phone"`
	BloodGroup string `json:"bloodGroup" validate:"omitempty,blood_group"`
	Aadhar     string `json:"aadhar" validate:"required,aadhar"`
	PAN        string `json:"pan" validate:"required,pan"`
}

// JobDetailsStep is the payload for the Job Details step.
type JobDetailsStep struct {
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
}

// NomineeDetailsStep is the payload for the Nominee Details step. Nominee
// field rules are enforced by the shared nominee validators, prefixed keys
// and all.
type NomineeDetailsStep struct {
	FirstNominee  models.Nominee  `json:"firstNominee"`
	SecondNominee *models.Nominee `json:"secondNominee,omitempty"`
}

// OtherDetailsStep is the payload for the Other Details step.
type OtherDetailsStep struct {
	HomeAddress    string `json:"homeAddress" validate:"required"`
	HomeDistrict   string `json:"homeDistrict" validate:"required"`
	HomePinCode    string `json:"homePinCode" validate:"required,pincode"`
	Disease        string `json:"disease"`
	CauseOfIllness string `json:"causeOfIllness"`
}

// BackRequest jumps the wizard back to an earlier step without losing data.
type BackRequest struct {
	Step string `json:"step" validate:"required"`
}

// SessionResponse reports the wizard state to the client. Password is never
// echoed back.
type SessionResponse struct {
	SessionID string          `json:"sessionId"`
	Step      string          `json:"step"`
	Form      RegisterRequest `json:"form"`
	OTP       string          `json:"otp,omitempty"` // development only
}
