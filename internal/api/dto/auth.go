package dto

// TokenResponse carries an access token issued or refreshed for the caller
type TokenResponse struct {
	Token string `json:"token"`
}
