package models

// AuthUser identifies a signed-in shipper.
type AuthUser struct {
	ID            int    `json:"id"`
	Name          string `json:"name,omitempty"`
	ContactNumber string `json:"contact_number,omitempty"`
}

// AuthResult is the verify-otp response carrying the upstream bearer token.
type AuthResult struct {
	AccessToken string   `json:"access_token"`
	User        AuthUser `json:"user"`
}

// UserStatus reports whether registration has been completed.
type UserStatus struct {
	IsCompleted bool `json:"is_completed"`
}

// AadhaarInit carries the hosted verification URL for the identity check.
type AadhaarInit struct {
	VerificationURL string `json:"verification_url"`
}

// AadhaarAddress is the structured address block inside verified Aadhaar data.
type AadhaarAddress struct {
	State string `json:"state,omitempty"`
	Dist  string `json:"dist,omitempty"`
	VTC   string `json:"vtc,omitempty"`
}

// AadhaarData is the verified identity record returned after the hosted flow.
type AadhaarData struct {
	FullName      string         `json:"full_name"`
	DOB           string         `json:"dob,omitempty"`
	Gender        string         `json:"gender,omitempty"`
	FullAddress   string         `json:"full_address,omitempty"`
	Zip           string         `json:"zip,omitempty"`
	MaskedAadhaar string         `json:"masked_aadhaar,omitempty"`
	Address       AadhaarAddress `json:"address,omitempty"`
}

// RegistrationInput completes a shipper profile after OTP sign-in.
type RegistrationInput struct {
	Name         string `json:"name"`
	DOB          string `json:"dob,omitempty"`
	Gender       string `json:"gender,omitempty"`
	Email        string `json:"email,omitempty"`
	FullAddress  string `json:"full_address"`
	Pincode      string `json:"pincode"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	AadharNumber string `json:"aadhar_number,omitempty"`
	PanNumber    string `json:"pan_number,omitempty"`
	SameAddress  bool   `json:"same_address"`
	Declaration  bool   `json:"declaration"`
}

// BankAccount is the payout account submitted for penny-drop verification.
type BankAccount struct {
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
	HolderName    string `json:"holder_name"`
}
