package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savaan_backend/internal/models"
	"savaan_backend/internal/services/dto"
	"savaan_backend/internal/validator"
)

func newMachine() *Machine {
	return NewMachine(validator.New())
}

func basicDetails() dto.BasicDetailsStep {
	return dto.BasicDetailsStep{
		Name:     "Ravi Kumar",
		Email:    "ravi@gmail.com",
		Password: "Secret@1",
		Gender:   "Male",
		DOB:      "1990-05-15",
		Aadhar:   "123456789012",
		PAN:      "abcde1234f",
	}
}

func jobDetails() dto.JobDetailsStep {
	return dto.JobDetailsStep{
		Department:     "Education",
		DepartmentID:   "DEPT-1",
		JobDescription: "Teacher",
		Block:          "Central",
		Post:           "Senior Teacher",
		JobAddress:     "School Road 1",
		PinCode:        "800001",
		District:       "Patna",
	}
}

func nominee() models.Nominee {
	return models.Nominee{
		Name:      "Sita Kumar",
		Relation:  "Spouse",
		Mobile:    "9123456789",
		BankName:  "SBI",
		AccountNo: "123456789012",
		IFSC:      "sbin0001234",
		Branch:    "Patna Main",
	}
}

func otherDetails() dto.OtherDetailsStep {
	return dto.OtherDetailsStep{
		HomeAddress:  "Home Street 5",
		HomeDistrict: "Patna",
		HomePinCode:  "800002",
	}
}

// walkToReview drives a fresh state through every step with valid payloads.
func walkToReview(t *testing.T, m *Machine) State {
	t.Helper()

	s := NewState("9876543210")
	s, errs := m.AdvanceVerification(s, true)
	require.Empty(t, errs)
	s, errs = m.AdvanceBasicDetails(s, basicDetails())
	require.Empty(t, errs)
	s, errs = m.AdvanceJobDetails(s, jobDetails())
	require.Empty(t, errs)
	s, errs = m.AdvanceNomineeDetails(s, dto.NomineeDetailsStep{FirstNominee: nominee()})
	require.Empty(t, errs)
	s, errs = m.AdvanceOtherDetails(s, otherDetails())
	require.Empty(t, errs)
	require.Equal(t, StepReview, s.Step)
	return s
}

func TestVerificationGate(t *testing.T) {
	m := newMachine()
	s := NewState("9876543210")

	blocked, errs := m.AdvanceVerification(s, false)
	assert.Contains(t, errs, "otp")
	assert.Equal(t, StepVerification, blocked.Step)
	assert.False(t, blocked.MobileVerified)

	next, errs := m.AdvanceVerification(s, true)
	assert.Empty(t, errs)
	assert.Equal(t, StepBasicDetails, next.Step)
	assert.True(t, next.MobileVerified)
}

func TestBasicDetailsBlocksWeakPassword(t *testing.T) {
	m := newMachine()
	s := NewState("9876543210")
	s, _ = m.AdvanceVerification(s, true)

	in := basicDetails()
	in.Password = "weakpass"
	blocked, errs := m.AdvanceBasicDetails(s, in)
	assert.Contains(t, errs, "password")
	assert.Equal(t, StepBasicDetails, blocked.Step)
	assert.Empty(t, blocked.Form.Password, "rejected payload is not applied")

	// Fixing the password clears the block.
	in.Password = "Secret@1"
	next, errs := m.AdvanceBasicDetails(s, in)
	assert.Empty(t, errs)
	assert.Equal(t, StepJobDetails, next.Step)
}

func TestBasicDetailsRejectsBadDate(t *testing.T) {
	m := newMachine()
	s := NewState("9876543210")
	s, _ = m.AdvanceVerification(s, true)

	in := basicDetails()
	in.DOB = "15-05-1990"
	_, errs := m.AdvanceBasicDetails(s, in)
	assert.Contains(t, errs, "dob")
}

func TestJobDetailsOtherDepartment(t *testing.T) {
	m := newMachine()
	s := NewState("9876543210")
	s, _ = m.AdvanceVerification(s, true)
	s, _ = m.AdvanceBasicDetails(s, basicDetails())

	in := jobDetails()
	in.Department = "Other"
	_, errs := m.AdvanceJobDetails(s, in)
	assert.Contains(t, errs, "otherDepartment")

	in.OtherDepartment = "Water Resources"
	next, errs := m.AdvanceJobDetails(s, in)
	assert.Empty(t, errs)
	assert.Equal(t, StepNomineeDetails, next.Step)
}

func TestNomineeAllOrNothing(t *testing.T) {
	m := newMachine()
	s := NewState("9876543210")
	s, _ = m.AdvanceVerification(s, true)
	s, _ = m.AdvanceBasicDetails(s, basicDetails())
	s, _ = m.AdvanceJobDetails(s, jobDetails())

	// Untouched second nominee is fine.
	next, errs := m.AdvanceNomineeDetails(s, dto.NomineeDetailsStep{
		FirstNominee:  nominee(),
		SecondNominee: &models.Nominee{},
	})
	assert.Empty(t, errs)
	assert.Equal(t, StepOtherDetails, next.Step)

	// A partially filled one must validate completely.
	_, errs = m.AdvanceNomineeDetails(s, dto.NomineeDetailsStep{
		FirstNominee:  nominee(),
		SecondNominee: &models.Nominee{Name: "Ram"},
	})
	assert.Contains(t, errs, "secondNominee.relation")
}

func TestStepMismatch(t *testing.T) {
	m := newMachine()
	s := NewState("9876543210")

	// Skipping verification is rejected without changing the state.
	blocked, errs := m.AdvanceBasicDetails(s, basicDetails())
	assert.Contains(t, errs, "step")
	assert.Equal(t, StepVerification, blocked.Step)
}

func TestBackPreservesData(t *testing.T) {
	m := newMachine()
	s := walkToReview(t, m)

	back, err := m.Back(s, StepBasicDetails)
	require.NoError(t, err)
	assert.Equal(t, StepBasicDetails, back.Step)
	assert.Equal(t, "ravi@gmail.com", back.Form.Email)
	assert.Equal(t, "Patna", back.Form.District, "later-step data survives the jump")

	// Forward or same-step jumps are not "back".
	_, err = m.Back(back, StepReview)
	assert.ErrorIs(t, err, ErrNotPriorStep)
	_, err = m.Back(back, StepBasicDetails)
	assert.ErrorIs(t, err, ErrNotPriorStep)
}

func TestFinalizeNormalizes(t *testing.T) {
	m := newMachine()
	s := walkToReview(t, m)
	s.Form.Email = "Ravi.Kumar@GMAIL.com"

	form, errs := m.Finalize(s)
	require.Empty(t, errs)
	assert.Equal(t, "ravi.kumar@gmail.com", form.Email)
	assert.Equal(t, "ABCDE1234F", form.PAN)
	assert.Equal(t, "SBIN0001234", form.FirstNominee.IFSC)
	assert.Equal(t, "Sita Kumar", form.FirstNominee.AccountHolderName)
}

func TestFinalizeRequiresReviewAndVerification(t *testing.T) {
	m := newMachine()

	s := NewState("9876543210")
	_, errs := m.Finalize(s)
	assert.Contains(t, errs, "step")

	s = walkToReview(t, m)
	s.MobileVerified = false
	_, errs = m.Finalize(s)
	assert.Contains(t, errs, "mobile")
}

func TestParseStepRoundTrip(t *testing.T) {
	for _, step := range []Step{
		StepVerification, StepBasicDetails, StepJobDetails,
		StepNomineeDetails, StepOtherDetails, StepReview, StepSubmitted,
	} {
		parsed, ok := ParseStep(step.String())
		assert.True(t, ok)
		assert.Equal(t, step, parsed)
	}

	_, ok := ParseStep("nonsense")
	assert.False(t, ok)
}
