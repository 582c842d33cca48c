package domain

// ReplyOutcome is the cached result of processing a gateway reply.
// Replays of the same delivery are answered from it.
type ReplyOutcome struct {
	RedirectURL string   `json:"redirect_url"`
	Decision    Decision `json:"decision"`
	OrderNumber string   `json:"order_number"`
	Duplicate   bool     `json:"duplicate,omitempty"`
}

// BuildReplyKey constructs the replay key for a gateway transaction id.
func BuildReplyKey(transactionID string) string {
	return "reply:" + transactionID
}

// BuildPaymentStateKey constructs the key for a checkout payment method state.
func BuildPaymentStateKey(sessionID, methodKey string) string {
	return "checkout:" + sessionID + ":" + methodKey
}
