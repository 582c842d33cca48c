package domain

import (
	"strings"
)

// GatewayReply is a SOAP reply flattened into dotted keys,
// e.g. "ccAuthReply.amount" or "item[0].unitPrice".
type GatewayReply struct {
	Fields map[string]string
}

// Get returns the value at key, or "" when absent.
func (r *GatewayReply) Get(key string) string {
	if r == nil {
		return ""
	}
	return r.Fields[key]
}

// Has reports whether the reply carries the named section.
func (r *GatewayReply) Has(section string) bool {
	if r == nil {
		return false
	}
	if _, ok := r.Fields[section]; ok {
		return true
	}
	prefix := section + "."
	for k := range r.Fields {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

func (r *GatewayReply) Decision() string     { return r.Get("decision") }
func (r *GatewayReply) ReasonCode() *int     { return ParseReasonCode(r.Get("reasonCode")) }
func (r *GatewayReply) RequestID() string    { return r.Get("requestID") }
func (r *GatewayReply) RequestToken() string { return r.Get("requestToken") }

// Classify maps the reply onto a gateway decision. A nil reply is an ERROR.
func (r *GatewayReply) Classify() Decision {
	if r == nil {
		return DecisionError
	}
	return Classify(r.ReasonCode(), r.Decision())
}

// TransactionType infers which request produced the reply.
func (r *GatewayReply) TransactionType() string {
	switch {
	case r.Has("paySubscriptionCreateReply"):
		return TxnTypeCreateToken
	case r.Has("ccCaptureReply"):
		return TxnTypeCapture
	default:
		return TxnTypeAuthorization
	}
}

// NewSOAPReplyRecord builds a reply log entry for a SOAP reply. Billing details
// come from the order since SOAP replies do not echo them. reply may be nil.
func NewSOAPReplyRecord(order *Order, reply *GatewayReply, cardExpiry string) *ReplyRecord {
	data := map[string]string{}
	if reply != nil && reply.Fields != nil {
		data = reply.Fields
	}
	rec := &ReplyRecord{
		OrderID:            &order.ID,
		UserID:             order.UserID,
		ReplyType:          ReplyTypeSOAP,
		Data:               data,
		Decision:           reply.Decision(),
		ReasonCode:         reply.ReasonCode(),
		ReqCardExpiryDate:  cardExpiry,
		ReqReferenceNumber: reply.Get("merchantReferenceCode"),
		ReqTransactionType: reply.TransactionType(),
		RequestToken:       reply.RequestToken(),
		TransactionID:      reply.RequestID(),
	}
	if addr := order.BillingAddress; addr != nil {
		rec.ReqBillToAddressPostalCode = addr.Postcode
		rec.ReqBillToForename = addr.FirstName
		rec.ReqBillToSurname = addr.LastName
	}
	if reply.Has("ccAuthReply") {
		rec.AuthCode = reply.Get("ccAuthReply.authorizationCode")
		rec.AuthResponse = reply.Get("ccAuthReply.processorResponse")
		rec.AuthTransRefNo = reply.Get("ccAuthReply.reconciliationID")
		rec.AuthAvsCode = reply.Get("ccAuthReply.avsCode")
	}
	return rec
}
