package dto

import "time"

// PayFeeRequest pays the yearly management fee for a registrant.
type PayFeeRequest struct {
	Mobile string `json:"mobile" validate:"required,in_mobile"`
}

// FeeReceipt is returned after a successful payment.
type FeeReceipt struct {
	PaymentDate time.Time `json:"paymentDate"`
	NextDue     time.Time `json:"nextDue"`
	Amount      int       `json:"amount"`
}

// FeeStatus reports the current fee state for a registrant.
type FeeStatus struct {
	Paid        bool       `json:"paid"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
	NextDue     *time.Time `json:"nextDue,omitempty"`
	Amount      int        `json:"amount"`
	IsExpired   bool       `json:"isExpired"`
	DaysLeft    int        `json:"daysLeft"`
}
