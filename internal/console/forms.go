package console

import "github.com/dmitrijs2005/rentdesk/internal/validation"

// Caller-side form checks. The msg tags are the texts shown to the user.

type phoneForm struct {
	Phone string `validate:"len=10,number" msg:"Please enter a valid 10-digit phone number"`
}

type newPasswordForm struct {
	Confirm  string `validate:"eqfield=Password" msg:"Passwords do not match"`
	Password string `validate:"min=6" msg:"Password must be at least 6 characters long"`
}

type registrationForm struct {
	AadharNumber       string `validate:"len=12,number" msg:"Please enter a valid 12-digit Aadhar number"`
	FamilyMembersCount int    `validate:"gte=1" msg:"Family members count must be at least 1"`
}

// check validates form and returns the message to show, or "".
func check(form any) string {
	if err := validation.Struct(form); err != nil {
		return err.Error()
	}
	return ""
}
