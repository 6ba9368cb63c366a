package dto

// CheckoutSessionResponse carries the redirect URL of a newly created
// subscription checkout session
type CheckoutSessionResponse struct {
	URL string `json:"url"`
}
