// Package wizard implements the multi-step registration state machine:
// Verification -> BasicDetails -> JobDetails -> NomineeDetails ->
// OtherDetails -> Review -> Submitted. Transitions are pure: every Advance
// takes the current state and a step payload and returns the next state plus
// a per-field error map; a non-empty map blocks the forward transition and
// leaves the state unchanged. Backward navigation never discards data.
package wizard

import (
	"errors"
	"strings"
	"time"

	"savaan_backend/internal/services/dto"
	"savaan_backend/internal/validator"
)

// State is the explicit wizard state. It is a value: transitions return new
// states instead of mutating shared memory.
type State struct {
	Step           Step
	Form           dto.RegisterRequest
	MobileVerified bool
}

// NewState opens a wizard at the Verification step for a mobile number.
func NewState(mobile string) State {
	s := State{Step: StepVerification}
	s.Form.Mobile = mobile
	return s
}

// Clone returns an independent copy. Form.SecondNominee is the only
// reference field, so a plain value copy would still alias it.
func (s State) Clone() State {
	if s.Form.SecondNominee != nil {
		n := *s.Form.SecondNominee
		s.Form.SecondNominee = &n
	}
	return s
}

// Machine validates step payloads and drives transitions. It holds no
// per-session data.
type Machine struct {
	v *validator.Validator
}

func NewMachine(v *validator.Validator) *Machine {
	return &Machine{v: v}
}

// ErrNotPriorStep rejects a Back target at or past the current step.
var ErrNotPriorStep = errors.New("can only navigate back to a prior step")

// okAdvance moves the state forward one step.
func okAdvance(s State) (State, map[string]string) {
	s.Step = s.Step.Next()
	return s, nil
}

// stepErrors converts a validator failure to the wizard error map.
func (m *Machine) stepErrors(payload interface{}) map[string]string {
	err := m.v.Validate(payload)
	if err == nil {
		return nil
	}
	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Errors
	}
	return map[string]string{"_": err.Error()}
}

// AdvanceVerification gates on the out-of-band code. The caller verifies the
// code against the issuer and passes the result; the machine only guards the
// transition.
func (m *Machine) AdvanceVerification(s State, codeOK bool) (State, map[string]string) {
	if s.Step != StepVerification {
		return s, map[string]string{"step": "not at the verification step"}
	}
	if !codeOK {
		return s, map[string]string{"otp": "Invalid OTP. Please try again."}
	}
	s.MobileVerified = true
	return okAdvance(s)
}

// AdvanceBasicDetails validates and applies the Basic Details payload.
func (m *Machine) AdvanceBasicDetails(s State, in dto.BasicDetailsStep) (State, map[string]string) {
	if s.Step != StepBasicDetails {
		return s, map[string]string{"step": "not at the basic details step"}
	}

	errs := m.stepErrors(in)
	if _, err := time.Parse("2006-01-02", in.DOB); in.DOB != "" && err != nil {
		if errs == nil {
			errs = make(map[string]string)
		}
		errs["dob"] = "Must be a valid date (YYYY-MM-DD)"
	}
	if len(errs) > 0 {
		return s, errs
	}

	s.Form.Name = in.Name
	s.Form.Email = in.Email
	s.Form.Password = in.Password
	s.Form.Gender = in.Gender
	s.Form.DOB = in.DOB
	s.Form.HomePhone = in.HomePhone
	s.Form.BloodGroup = in.BloodGroup
	s.Form.Aadhar = in.Aadhar
	s.Form.PAN = strings.ToUpper(in.PAN)
	return okAdvance(s)
}

// AdvanceJobDetails validates and applies the Job Details payload. A literal
// "Other" department requires the free-text otherDepartment.
func (m *Machine) AdvanceJobDetails(s State, in dto.JobDetailsStep) (State, map[string]string) {
	if s.Step != StepJobDetails {
		return s, map[string]string{"step": "not at the job details step"}
	}

	errs := m.stepErrors(in)
	if in.Department == "Other" && in.OtherDepartment == "" {
		if errs == nil {
			errs = make(map[string]string)
		}
		errs["otherDepartment"] = "Please specify your department"
	}
	if len(errs) > 0 {
		return s, errs
	}

	s.Form.Department = in.Department
	s.Form.OtherDepartment = in.OtherDepartment
	s.Form.DepartmentID = in.DepartmentID
	s.Form.JobDescription = in.JobDescription
	s.Form.Block = in.Block
	s.Form.Post = in.Post
	s.Form.SubPost = in.SubPost
	s.Form.JobAddress = in.JobAddress
	s.Form.PinCode = in.PinCode
	s.Form.District = in.District
	return okAdvance(s)
}

// AdvanceNomineeDetails validates and applies the nominees. The first
// nominee is required in full; the second follows the all-or-nothing rule.
func (m *Machine) AdvanceNomineeDetails(s State, in dto.NomineeDetailsStep) (State, map[string]string) {
	if s.Step != StepNomineeDetails {
		return s, map[string]string{"step": "not at the nominee details step"}
	}

	errs := validator.ValidateNominee("firstNominee", &in.FirstNominee)
	if in.SecondNominee != nil {
		for k, v := range validator.ValidateSecondNominee(in.SecondNominee) {
			errs[k] = v
		}
	}
	if len(errs) > 0 {
		return s, errs
	}

	s.Form.FirstNominee = in.FirstNominee
	s.Form.SecondNominee = in.SecondNominee
	return okAdvance(s)
}

// AdvanceOtherDetails validates and applies the residence payload, landing on
// Review.
func (m *Machine) AdvanceOtherDetails(s State, in dto.OtherDetailsStep) (State, map[string]string) {
	if s.Step != StepOtherDetails {
		return s, map[string]string{"step": "not at the other details step"}
	}

	if errs := m.stepErrors(in); len(errs) > 0 {
		return s, errs
	}

	s.Form.HomeAddress = in.HomeAddress
	s.Form.HomeDistrict = in.HomeDistrict
	s.Form.HomePinCode = in.HomePinCode
	s.Form.Disease = in.Disease
	s.Form.CauseOfIllness = in.CauseOfIllness
	return okAdvance(s)
}

// Back jumps to any prior step for edit-and-return. All entered data stays in
// the form.
func (m *Machine) Back(s State, to Step) (State, error) {
	if to >= s.Step || to < StepVerification {
		return s, ErrNotPriorStep
	}
	s.Step = to
	return s, nil
}

// Finalize re-validates the whole form at the Review step and returns the
// normalized payload for the atomic create. A failing map keeps the state at
// Review with nothing lost. Normalization is idempotent, so a retry after a
// failed create submits the identical payload.
func (m *Machine) Finalize(s State) (dto.RegisterRequest, map[string]string) {
	if s.Step != StepReview {
		return dto.RegisterRequest{}, map[string]string{"step": "not at the review step"}
	}
	if !s.MobileVerified {
		return dto.RegisterRequest{}, map[string]string{"mobile": "Mobile number is not verified"}
	}

	form := s.Form
	form.Normalize()

	errs := m.stepErrors(form)
	if errs == nil {
		errs = make(map[string]string)
	}
	for k, v := range validator.ValidateNominee("firstNominee", &form.FirstNominee) {
		errs[k] = v
	}
	if form.SecondNominee != nil {
		for k, v := range validator.ValidateSecondNominee(form.SecondNominee) {
			errs[k] = v
		}
	}
	if len(errs) > 0 {
		return dto.RegisterRequest{}, errs
	}

	return form, nil
}

// Submitted marks the terminal success state after the create lands.
func (m *Machine) Submitted(s State) State {
	s.Step = StepSubmitted
	return s
}
