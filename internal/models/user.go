package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultManagementFeeAmount is the flat yearly membership fee.
const DefaultManagementFeeAmount = 499

// Nominee is a beneficiary sub-record embedded in a User document.
// AccountHolderName defaults to Name when left blank at submission.
type Nominee struct {
	Name              string          `bson:"name" json:"name"`
	Relation          NomineeRelation `bson:"relation" json:"relation"`
	Mobile            string          `bson:"mobile" json:"mobile"`
	AccountHolderName string          `bson:"accountHolderName" json:"accountHolderName"`
	BankName          string          `bson:"bankName" json:"bankName"`
	AccountNo         string          `bson:"accountNo" json:"accountNo"`
	IFSC              string          `bson:"ifsc" json:"ifsc"`
	Branch            string          `bson:"branch" json:"branch"`
}

// Empty reports whether no field of the nominee has been filled. Used for the
// all-or-nothing rule on the optional second nominee.
func (n *Nominee) Empty() bool {
	if n == nil {
		return true
	}
	return n.Name == "" && n.Relation == "" && n.Mobile == "" &&
		n.AccountHolderName == "" && n.BankName == "" && n.AccountNo == "" &&
		n.IFSC == "" && n.Branch == ""
}

// ManagementFee tracks the yearly membership fee of a registrant.
type ManagementFee struct {
	Paid        bool       `bson:"paid" json:"paid"`
	PaymentDate *time.Time `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`
	NextDue     *time.Time `bson:"nextDue,omitempty" json:"nextDue,omitempty"`
	Amount      int        `bson:"amount" json:"amount"`
}

// User is the persisted registrant document. Uniqueness is enforced jointly
// on mobile, email, aadhar, pan and departmentId by the store.
type User struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Identity
	Mobile       string `bson:"mobile" json:"mobile"`
	Email        string `bson:"email" json:"email"` // stored lowercase
	PasswordHash string `bson:"password" json:"-"`
	Aadhar       string `bson:"aadhar" json:"aadhar"`
	PAN          string `bson:"pan" json:"pan"` // stored uppercase
	DepartmentID string `bson:"departmentId" json:"departmentId"`

	// Profile
	Name       string    `bson:"name" json:"name"`
	Gender     Gender    `bson:"gender" json:"gender"`
	DOB        time.Time `bson:"dob" json:"dob"`
	HomePhone  string    `bson:"homePhone,omitempty" json:"homePhone,omitempty"`
	BloodGroup string    `bson:"bloodGroup,omitempty" json:"bloodGroup,omitempty"`

	// Employment
	Department      string `bson:"department" json:"department"`
	OtherDepartment string `bson:"otherDepartment,omitempty" json:"otherDepartment,omitempty"`
	JobDescription  string `bson:"jobDescription" json:"jobDescription"`
	Block           string `bson:"block" json:"block"`
	Post            string `bson:"post" json:"post"`
	SubPost         string `bson:"subPost,omitempty" json:"subPost,omitempty"`
	JobAddress      string `bson:"jobAddress" json:"jobAddress"`
	PinCode         string `bson:"pinCode" json:"pinCode"`
	District        string `bson:"district" json:"district"`

	// Nominees
	FirstNominee  Nominee  `bson:"firstNominee" json:"firstNominee"`
	SecondNominee *Nominee `bson:"secondNominee,omitempty" json:"secondNominee,omitempty"`

	// Residence
	HomeAddress    string `bson:"homeAddress" json:"homeAddress"`
	HomeDistrict   string `bson:"homeDistrict" json:"homeDistrict"`
	HomePinCode    string `bson:"homePinCode" json:"homePinCode"`
	Disease        string `bson:"disease,omitempty" json:"disease,omitempty"`
	CauseOfIllness string `bson:"causeOfIllness,omitempty" json:"causeOfIllness,omitempty"`

	// System fields
	IsVerified        bool          `bson:"isVerified" json:"isVerified"`
	RegistrationDate  time.Time     `bson:"registrationDate" json:"registrationDate"`
	LastLogin         *time.Time    `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	PasswordChangedAt *time.Time    `bson:"passwordChangedAt,omitempty" json:"-"`
	Status            UserStatus    `bson:"status" json:"status"`
	ManagementFee     ManagementFee `bson:"managementFee" json:"managementFee"`
}

// IdentityQuery carries the unique identity fields used for collision
// pre-checks before registration. Empty fields are ignored.
type IdentityQuery struct {
	Email        string
	Mobile       string
	Aadhar       string
	PAN          string
	DepartmentID string
}
