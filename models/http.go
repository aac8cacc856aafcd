package models

// Request and response shapes for the JSON API. Binary values (fingerprints,
// wrapped keys, HMAC tags) travel base64-encoded; the handler layer decodes
// them before crossing into the service layer.

// InitiateRegistrationResponse is returned by registration step 1. The word
// list is shown exactly once and must be copied by the user.
type InitiateRegistrationResponse struct {
	UUID            string   `json:"uuid"`
	Words           []string `json:"words"`
	TOTPSecret      string   `json:"totp_secret"`
	ProvisioningURI string   `json:"provisioning_uri"`
	QRCode          string   `json:"qr_code,omitempty"`
}

// VerifyTOTPRequest carries the one-time code for registration step 2.
type VerifyTOTPRequest struct {
	TOTPCode string `json:"totp_code"`
}

// CompleteRegistrationRequest carries the client-side credential material
// for registration step 3.
type CompleteRegistrationRequest struct {
	UsernameHash   string `json:"username_hash"`
	WrappedKey     string `json:"wrapped_key"`
	HMACWrappedKey string `json:"hmac_wrapped_key"`
	Algorithm      string `json:"algorithm"`
	Email          string `json:"email,omitempty"`
	AuthHash       string `json:"auth_hash"`
}

// CompleteRegistrationResponse confirms the finalized account identifier.
type CompleteRegistrationResponse struct {
	UUID string `json:"uuid"`
}

// LoginIdentifyRequest identifies the account in login step 1, either by
// UUID or by username fingerprint.
type LoginIdentifyRequest struct {
	UUID         string `json:"uuid,omitempty"`
	UsernameHash string `json:"username_hash,omitempty"`
	AuthHash     string `json:"auth_hash,omitempty"`
}

// LoginIdentifyResponse returns the single-use login token for step 2.
type LoginIdentifyResponse struct {
	LoginToken   string `json:"login_token"`
	TOTPRequired bool   `json:"totp_required"`
}

// LoginTOTPRequest carries the login token and one-time code for step 2.
type LoginTOTPRequest struct {
	LoginToken string `json:"login_token"`
	TOTPCode   string `json:"totp_code"`
}

// LoginTOTPResponse returns the key material the client needs to unwrap its
// vault locally, plus the bearer token for subsequent vault calls.
type LoginTOTPResponse struct {
	WrappedKey     string `json:"wrapped_key"`
	HMACWrappedKey string `json:"hmac_wrapped_key"`
	Algorithm      string `json:"algorithm"`
	AccessToken    string `json:"access_token"`
}

// CreateVaultItemRequest carries a new encrypted item. The optional HMAC tag
// arrives in the X-HMAC header, not in the body.
type CreateVaultItemRequest struct {
	EncryptedData string `json:"encrypted_data"`
	Name          string `json:"name,omitempty"`
}

// UpdateVaultItemRequest carries replacement item fields. Omitted fields are
// left untouched.
type UpdateVaultItemRequest struct {
	EncryptedData *string `json:"encrypted_data,omitempty"`
	Name          *string `json:"name,omitempty"`
}

// VaultItemListResponse wraps the metadata-only listing of a user's vault.
type VaultItemListResponse struct {
	Items []VaultItemSummary `json:"items"`
}

// ErrorResponse is the uniform JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
