package wizard

import "fmt"

// Step identifies a wizard state. The flow is linear with backward jumps
// allowed to any earlier step.
type Step int

const (
	StepVerification Step = iota + 1
	StepBasicDetails
	StepJobDetails
	StepNomineeDetails
	StepOtherDetails
	StepReview
	StepSubmitted
)

var stepNames = map[Step]string{
	StepVerification:   "verification",
	StepBasicDetails:   "basic_details",
	StepJobDetails:     "job_details",
	StepNomineeDetails: "nominee_details",
	StepOtherDetails:   "other_details",
	StepReview:         "review",
	StepSubmitted:      "submitted",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// ParseStep resolves a wire name back to a Step.
func ParseStep(name string) (Step, bool) {
	for s, n := range stepNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}

// Next returns the following step; Submitted has no successor.
func (s Step) Next() Step {
	if s >= StepSubmitted {
		return StepSubmitted
	}
	return s + 1
}
