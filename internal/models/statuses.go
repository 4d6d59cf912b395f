package models

// UserStatus - lifecycle status of a registrant account
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// Gender values accepted at registration
type Gender string

const (
	GenderMale        Gender = "Male"
	GenderFemale      Gender = "Female"
	GenderTransgender Gender = "Transgender"
)

// NomineeRelation - relation of a nominee to the registrant
type NomineeRelation string

const (
	RelationSpouse   NomineeRelation = "Spouse"
	RelationSon      NomineeRelation = "Son"
	RelationDaughter NomineeRelation = "Daughter"
	RelationFather   NomineeRelation = "Father"
	RelationMother   NomineeRelation = "Mother"
	RelationBrother  NomineeRelation = "Brother"
	RelationSister   NomineeRelation = "Sister"
	RelationOther    NomineeRelation = "Other"
)

// BloodGroups lists the eight accepted blood group values.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// ValidBloodGroup reports whether s is one of the accepted blood groups.
func ValidBloodGroup(s string) bool {
	for _, bg := range BloodGroups {
		if s == bg {
			return true
		}
	}
	return false
}

// ValidGender reports whether s is an accepted gender value.
func ValidGender(s string) bool {
	switch Gender(s) {
	case GenderMale, GenderFemale, GenderTransgender:
		return true
	}
	return false
}

// ValidRelation reports whether s is an accepted nominee relation.
func ValidRelation(s string) bool {
	switch NomineeRelation(s) {
	case RelationSpouse, RelationSon, RelationDaughter, RelationFather,
		RelationMother, RelationBrother, RelationSister, RelationOther:
		return true
	}
	return false
}
