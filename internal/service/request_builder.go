package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"secure-acceptance-gateway/config"
	"secure-acceptance-gateway/internal/core/domain"
	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// MethodKeySlot is the merchant-defined slot that echoes the checkout method.
const MethodKeySlot = 50

// Reply fields that carry data the builder put into the request.
const (
	FieldMethodKey = "merchant_defined_data50"
	FieldSessionID = "merchant_secure_data4" // 2000 chars, room for the ciphertext
)

const (
	transactionUUIDScope    = "transaction_uuid"
	transactionUUIDTTL      = 24 * time.Hour
	transactionUUIDAttempts = 5
)

// ErrTransactionUUIDExhausted means every generated transaction_uuid was already taken.
var ErrTransactionUUIDExhausted = errors.New("could not reserve a unique transaction_uuid")

// RequestKind selects the field schema of an outbound Secure Acceptance request.
type RequestKind int

const (
	KindCreateToken RequestKind = iota + 1
	KindAuthorize
)

func (k RequestKind) String() string {
	if s, ok := requestSchemas[k]; ok {
		return s.transactionType
	}
	return "unknown"
}

type requestSchema struct {
	transactionType string
	signed          []string
	unsigned        []string
}

var baseSignedNames = []string{
	"access_key", "profile_id", "transaction_uuid", "signed_field_names",
	"unsigned_field_names", "signed_date_time", "locale", "transaction_type",
}

var orderSignedNames = []string{
	"payment_method", "reference_number", "currency", "amount", "line_item_count",
	"customer_ip_address", "device_fingerprint_id", FieldMethodKey, FieldSessionID,
}

var requestSchemas = map[RequestKind]requestSchema{
	KindCreateToken: {
		transactionType: domain.TxnTypeCreateToken,
		// The browser fills the card fields in; the server never sees them.
		unsigned: []string{"card_type", "card_number", "card_expiry_date", "card_cvn"},
	},
	KindAuthorize: {
		transactionType: domain.TxnTypeAuthorization,
		signed:          []string{"payment_token"},
	},
}

// fieldGroup contributes names and values to a request.
type fieldGroup interface {
	SignedNames() []string
	UnsignedNames() []string
	Values() map[string]string
}

// ShippingFields maps the order's shipping address and method.
type ShippingFields struct {
	Address *domain.Address
	Method  string
}

func (ShippingFields) SignedNames() []string {
	return []string{
		"ship_to_forename", "ship_to_surname", "ship_to_address_line1", "ship_to_address_line2",
		"ship_to_address_city", "ship_to_address_state", "ship_to_address_postal_code",
		"ship_to_address_country", "ship_to_phone", "shipping_method",
	}
}

func (ShippingFields) UnsignedNames() []string { return nil }

func (f ShippingFields) Values() map[string]string {
	v := map[string]string{"shipping_method": f.Method}
	if a := f.Address; a != nil {
		v["ship_to_forename"] = a.FirstName
		v["ship_to_surname"] = a.LastName
		v["ship_to_address_line1"] = a.Line1
		v["ship_to_address_line2"] = a.Line2
		v["ship_to_address_city"] = a.City
		v["ship_to_address_state"] = a.State
		v["ship_to_address_postal_code"] = a.Postcode
		v["ship_to_address_country"] = a.CountryCode
		v["ship_to_phone"] = digitsOnly(a.PhoneNumber)
	}
	return v
}

// BillingFields maps the order's billing address and email.
type BillingFields struct {
	Address *domain.Address
	Email   string
}

func (BillingFields) SignedNames() []string {
	return []string{
		"bill_to_forename", "bill_to_surname", "bill_to_address_line1", "bill_to_address_line2",
		"bill_to_address_city", "bill_to_address_state", "bill_to_address_postal_code",
		"bill_to_address_country", "bill_to_email",
	}
}

// UnsignedNames leaves the phone to the browser; orders do not track a billing phone.
func (BillingFields) UnsignedNames() []string { return []string{"bill_to_phone"} }

func (f BillingFields) Values() map[string]string {
	v := map[string]string{"bill_to_email": f.Email}
	if a := f.Address; a != nil {
		v["bill_to_forename"] = a.FirstName
		v["bill_to_surname"] = a.LastName
		v["bill_to_address_line1"] = a.Line1
		v["bill_to_address_line2"] = a.Line2
		v["bill_to_address_city"] = a.City
		v["bill_to_address_state"] = a.State
		v["bill_to_address_postal_code"] = a.Postcode
		v["bill_to_address_country"] = a.CountryCode
	}
	return v
}

// LineItemFields emits item_{i}_* fields and line_item_count.
type LineItemFields struct {
	Lines []domain.OrderLine
}

func (LineItemFields) SignedNames() []string   { return nil }
func (LineItemFields) UnsignedNames() []string { return nil }

func (f LineItemFields) Values() map[string]string {
	v := make(map[string]string, len(f.Lines)*4+1)
	for i, l := range f.Lines {
		prefix := "item_" + strconv.Itoa(i) + "_"
		v[prefix+"name"] = l.Title
		v[prefix+"sku"] = l.PartnerSKU
		v[prefix+"quantity"] = strconv.Itoa(l.Quantity)
		v[prefix+"unit_price"] = l.UnitPriceInclTax.StringFixed(2)
	}
	v["line_item_count"] = strconv.Itoa(len(f.Lines))
	return v
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// OrderRequest is the input for an order-bound request.
type OrderRequest struct {
	Host         string
	Order        *domain.Order
	Session      ports.CheckoutSession
	Amount       decimal.Decimal
	PaymentToken string // KindAuthorize only
	MerchantData domain.MerchantData
	// ExtraFields are merged last and may replace any computed field. Only
	// server-side callers set them; they are never taken from a browser.
	ExtraFields map[string]string
}

// SignedRequest is a ready-to-post form.
type SignedRequest struct {
	URL      string
	Fields   map[string]string
	Editable []string // unsigned field names, sorted
}

// FormFields lists the fields sorted by name, flagging the unsigned ones as editable.
func (r *SignedRequest) FormFields() []domain.FormField {
	editable := make(map[string]bool, len(r.Editable))
	for _, n := range r.Editable {
		editable[n] = true
	}
	keys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]domain.FormField, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.FormField{Key: k, Value: r.Fields[k], Editable: editable[k]})
	}
	return out
}

// RequestBuilder assembles signed Secure Acceptance requests.
type RequestBuilder struct {
	resolver ports.ProfileResolver
	signer   ports.SignatureService
	encSvc   ports.EncryptionService
	nonces   ports.NonceStore
	cfg      *config.Holder
	log      zerolog.Logger

	now   func() time.Time
	randN func(n int) int
}

// NewRequestBuilder creates a new RequestBuilder. nonces may be nil, in which
// case transaction_uuid values are not reserved.
func NewRequestBuilder(
	resolver ports.ProfileResolver,
	signer ports.SignatureService,
	encSvc ports.EncryptionService,
	nonces ports.NonceStore,
	cfg *config.Holder,
	log zerolog.Logger,
) *RequestBuilder {
	return &RequestBuilder{
		resolver: resolver,
		signer:   signer,
		encSvc:   encSvc,
		nonces:   nonces,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		randN:    rand.IntN,
	}
}

// Build returns the signed field set for kind.
func (b *RequestBuilder) Build(ctx context.Context, kind RequestKind, in OrderRequest) (*SignedRequest, error) {
	schema, ok := requestSchemas[kind]
	if !ok {
		return nil, apperror.InternalError(fmt.Errorf("unknown request kind %d", kind))
	}
	if in.Order == nil {
		return nil, apperror.Validation("order is required")
	}
	if kind == KindAuthorize && in.PaymentToken == "" {
		return nil, apperror.Validation("payment_token is required to authorize")
	}

	profile, err := b.resolver.GetProfile(ctx, in.Host)
	if err != nil {
		return nil, err
	}
	cs := b.cfg.Current().Cybersource

	txUUID, err := b.reserveTransactionUUID(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	encSession, err := b.encSvc.Encrypt(in.Session.SessionID)
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}

	groups := []fieldGroup{
		ShippingFields{Address: in.Order.ShippingAddress, Method: cs.ShippingMethod(in.Order.ShippingCode)},
		BillingFields{Address: in.Order.BillingAddress, Email: in.Order.Email},
		LineItemFields{Lines: in.Order.Lines},
	}

	declaredSigned := append(append([]string{}, baseSignedNames...), orderSignedNames...)
	declaredSigned = append(declaredSigned, schema.signed...)
	declaredUnsigned := append([]string{}, schema.unsigned...)
	for _, g := range groups {
		declaredSigned = append(declaredSigned, g.SignedNames()...)
		declaredUnsigned = append(declaredUnsigned, g.UnsignedNames()...)
	}

	fields := make(map[string]string)
	for _, n := range declaredSigned {
		fields[n] = ""
	}
	for _, n := range declaredUnsigned {
		fields[n] = ""
	}

	currency := in.Order.Currency
	if currency == "" {
		currency = cs.DefaultCurrency
	}
	data := map[string]string{
		"access_key":       profile.AccessKey,
		"profile_id":       profile.ProfileID,
		"locale":           cs.Locale,
		"transaction_type": schema.transactionType,
		"transaction_uuid": txUUID,
		"payment_method":   "card",
		"reference_number": in.Order.Number,
		"currency":         currency,
		"amount":           in.Amount.StringFixed(2),
		FieldMethodKey:     in.Session.MethodKey,
		FieldSessionID:     encSession,
	}
	if kind == KindAuthorize {
		data["payment_token"] = in.PaymentToken
	}
	for _, g := range groups {
		for k, v := range g.Values() {
			data[k] = v
		}
	}
	if in.Session.ClientIP != "" {
		data["customer_ip_address"] = in.Session.ClientIP
	}
	if in.Session.FingerprintSessionID != "" {
		data["device_fingerprint_id"] = in.Session.FingerprintSessionID
	}
	for slot, v := range in.MerchantData {
		if slot != MethodKeySlot {
			data[domain.MerchantDataField(slot)] = v
		}
	}
	for k, v := range in.ExtraFields {
		data[k] = v
	}

	signedSet := make(map[string]struct{}, len(declaredSigned)+len(data)+3)
	for _, n := range declaredSigned {
		signedSet[n] = struct{}{}
	}
	for k, v := range data {
		signedSet[k] = struct{}{}
		fields[k] = v
	}
	for _, n := range []string{"signed_date_time", "signed_field_names", "unsigned_field_names"} {
		signedSet[n] = struct{}{}
	}

	signed := make([]string, 0, len(signedSet))
	for n := range signedSet {
		signed = append(signed, n)
	}
	var unsigned []string
	for n := range fields {
		if _, ok := signedSet[n]; !ok {
			unsigned = append(unsigned, n)
		}
	}
	sort.Strings(signed)
	sort.Strings(unsigned)

	fields["signed_date_time"] = b.now().UTC().Format(cs.DateFormat)
	fields["signed_field_names"] = strings.Join(signed, ",")
	fields["unsigned_field_names"] = strings.Join(unsigned, ",")
	fields["signature"] = b.signer.Sign(profile.SecretKey, fields, signed)

	b.log.Debug().
		Str("order", in.Order.Number).
		Str("transaction_type", schema.transactionType).
		Str("transaction_uuid", txUUID).
		Msg("built secure acceptance request")

	return &SignedRequest{URL: cs.EndpointPay, Fields: fields, Editable: unsigned}, nil
}

// reserveTransactionUUID generates unixtime followed by a number below 100,
// retrying when the value was already handed out.
func (b *RequestBuilder) reserveTransactionUUID(ctx context.Context) (string, error) {
	for range transactionUUIDAttempts {
		id := strconv.FormatInt(b.now().Unix(), 10) + strconv.Itoa(b.randN(100))
		if b.nonces == nil {
			return id, nil
		}
		fresh, err := b.nonces.CheckAndSet(ctx, transactionUUIDScope, id, transactionUUIDTTL)
		if err != nil {
			// Uniqueness is best effort; Redis being down must not block checkout.
			b.log.Warn().Err(err).Msg("transaction_uuid reservation unavailable")
			return id, nil
		}
		if fresh {
			return id, nil
		}
	}
	return "", ErrTransactionUUIDExhausted
}
