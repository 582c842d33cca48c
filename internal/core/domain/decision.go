package domain

// Decision is the gateway's coarse verdict for a transaction attempt.
// Transaction rows store it as their status; Decision Manager may write
// values outside the canonical four (e.g. REJECT).
type Decision string

const (
	DecisionAccept  Decision = "ACCEPT"
	DecisionReview  Decision = "REVIEW"
	DecisionDecline Decision = "DECLINE"
	DecisionError   Decision = "ERROR"
)

// IsCanonical reports whether d is one of the four gateway decisions.
func (d Decision) IsCanonical() bool {
	switch d {
	case DecisionAccept, DecisionReview, DecisionDecline, DecisionError:
		return true
	}
	return false
}

// IsSuccessful reports whether funds were allocated or debited (ACCEPT or REVIEW).
func (d Decision) IsSuccessful() bool {
	return d == DecisionAccept || d == DecisionReview
}

var declineReasonCodes = map[int]struct{}{
	110: {}, 200: {}, 201: {}, 202: {}, 203: {}, 204: {}, 205: {}, 207: {}, 208: {},
	210: {}, 211: {}, 221: {}, 222: {}, 230: {}, 231: {}, 232: {}, 233: {}, 234: {},
	400: {}, 481: {}, 520: {},
}

var errorReasonCodes = map[int]struct{}{
	101: {}, 102: {}, 104: {}, 150: {}, 151: {}, 152: {}, 236: {}, 240: {},
}

// Classify maps a reason code, falling back to the decision text, onto a Decision.
// A recognised reason code always wins. Anything unrecognised is an ERROR.
func Classify(reasonCode *int, decisionText string) Decision {
	if reasonCode != nil {
		code := *reasonCode
		switch {
		case code == 100:
			return DecisionAccept
		case code == 480:
			return DecisionReview
		}
		if _, ok := declineReasonCodes[code]; ok {
			return DecisionDecline
		}
		if _, ok := errorReasonCodes[code]; ok {
			return DecisionError
		}
	}
	if d := Decision(decisionText); d.IsCanonical() {
		return d
	}
	return DecisionError
}
