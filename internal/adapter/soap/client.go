// Package soap is the CyberSource SOAP toolkit client used for server-to-server
// token and authorization calls.
package soap

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"secure-acceptance-gateway/config"
	"secure-acceptance-gateway/internal/core/domain"
	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/pkg/metrics"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	serviceCreateToken = "paySubscriptionCreate"
	serviceLookupToken = "paySubscriptionRetrieve"
	serviceAuthorize   = "ccAuth"
	serviceCapture     = "ccCapture"

	maxReplyBytes = 1 << 20
)

// Client implements ports.GatewayClient over the SOAP transaction processor.
type Client struct {
	cfg        *config.Holder
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a SOAP client. A nil httpClient gets one with the
// configured SOAP timeout.
func NewClient(cfg *config.Holder, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Current().Cybersource.SOAP.Timeout}
	}
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		log:        log.With().Str("component", "soap").Logger(),
	}
}

var _ ports.GatewayClient = (*Client)(nil)

// CreateToken stores encrypted card data as an on-demand payment token.
func (c *Client) CreateToken(ctx context.Context, call ports.GatewayCall, payment string) (*domain.GatewayReply, error) {
	msg := c.newRequest(call, decimal.Zero)
	msg.SubscriptionCreate = &runService{Run: "true"}
	msg.RecurringSubscription = &recurringSubscription{Frequency: "on-demand"}
	msg.EncryptedPayment = &encryptedPayment{Descriptor: TerminalDescriptor, Data: payment}
	return c.run(ctx, serviceCreateToken, msg)
}

// LookupToken retrieves the card details behind a payment token.
func (c *Client) LookupToken(ctx context.Context, call ports.GatewayCall, token string) (*domain.GatewayReply, error) {
	msg := c.newRequest(call, decimal.Zero)
	msg.SubscriptionRetrieve = &runService{Run: "true"}
	msg.RecurringSubscription = &recurringSubscription{SubscriptionID: token}
	return c.run(ctx, serviceLookupToken, msg)
}

// Authorize requests an authorization against a payment token.
func (c *Client) Authorize(ctx context.Context, call ports.GatewayCall, token string, amount decimal.Decimal) (*domain.GatewayReply, error) {
	msg := c.newRequest(call, amount)
	msg.CCAuthService = &runService{Run: "true"}
	msg.RecurringSubscription = &recurringSubscription{SubscriptionID: token}
	return c.run(ctx, serviceAuthorize, msg)
}

// Capture settles a previous authorization.
func (c *Client) Capture(ctx context.Context, call ports.GatewayCall, token string, amount decimal.Decimal, authRequestID string) (*domain.GatewayReply, error) {
	msg := c.newRequest(call, amount)
	msg.CCCaptureService = &captureService{Run: "true", AuthRequestID: authRequestID}
	msg.RecurringSubscription = &recurringSubscription{SubscriptionID: token}
	return c.run(ctx, serviceCapture, msg)
}

// newRequest fills the order context shared by every service.
func (c *Client) newRequest(call ports.GatewayCall, amount decimal.Decimal) *requestMessage {
	cs := c.cfg.Current().Cybersource
	order := call.Order

	msg := &requestMessage{
		MerchantID:            cs.MerchantID,
		MerchantReferenceCode: order.Number,
		DeviceFingerprintID:   call.FingerprintSessionID,
		PurchaseTotals: purchaseTotals{
			Currency:         order.Currency,
			GrandTotalAmount: amount.StringFixed(2),
		},
	}

	bill := &billTo{Email: order.Email, IPAddress: call.ClientIP}
	if order.UserID != nil {
		bill.CustomerID = *order.UserID
	}
	if a := order.BillingAddress; a != nil {
		bill.FirstName, bill.LastName = a.FirstName, a.LastName
		bill.Street1, bill.Street2 = a.Line1, a.Line2
		bill.City, bill.State = a.City, a.State
		bill.PostalCode, bill.Country = a.Postcode, a.CountryCode
	}
	msg.BillTo = bill

	if a := order.ShippingAddress; a != nil {
		msg.ShipTo = &shipTo{
			FirstName: a.FirstName, LastName: a.LastName,
			Street1: a.Line1, Street2: a.Line2,
			City: a.City, State: a.State,
			PostalCode: a.Postcode, Country: a.CountryCode,
			PhoneNumber: a.PhoneNumber,
		}
	}

	for i, line := range order.Lines {
		msg.Items = append(msg.Items, item{
			ID:          i,
			ProductName: line.Title,
			ProductSKU:  line.PartnerSKU,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPriceInclTax.StringFixed(2),
		})
	}

	if len(call.MerchantData) > 0 {
		msg.MerchantDefinedData = &merchantDefinedData{Fields: call.MerchantData}
	}
	return msg
}

func (c *Client) run(ctx context.Context, service string, msg *requestMessage) (*domain.GatewayReply, error) {
	defer metrics.ObserveSOAP(service, time.Now())

	cs := c.cfg.Current().Cybersource
	body, err := xml.Marshal(newEnvelope(cs.MerchantID, cs.SOAP.TransactionKey, msg))
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", service, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cs.SOAP.Endpoint,
		bytes.NewReader(append([]byte(xml.Header), body...)))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", service, err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "runTransaction")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("service", service).Str("order", msg.MerchantReferenceCode).Msg("soap request failed")
		return nil, fmt.Errorf("send %s request: %w", service, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s reply: %w", service, err)
	}

	reply, err := parseReply(raw)
	if err != nil {
		c.log.Error().Err(err).
			Str("service", service).
			Int("status", resp.StatusCode).
			Str("order", msg.MerchantReferenceCode).
			Msg("soap reply rejected")
		return nil, fmt.Errorf("%s: %w", service, err)
	}

	c.log.Info().
		Str("service", service).
		Str("order", msg.MerchantReferenceCode).
		Str("decision", reply.Decision()).
		Str("request_id", reply.RequestID()).
		Msg("soap reply received")
	return reply, nil
}

// parseReply extracts replyMessage from a SOAP envelope, or the fault text.
func parseReply(raw []byte) (*domain.GatewayReply, error) {
	root, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	body := Find(root, "Envelope", "Body")
	if body == nil {
		return nil, errors.New("reply has no SOAP body")
	}
	if fault := Find(body, "Fault"); fault != nil {
		flat := Flatten(fault)
		return nil, fmt.Errorf("soap fault %s: %s", flat["faultcode"], flat["faultstring"])
	}
	msg := Find(body, "replyMessage")
	if msg == nil {
		return nil, errors.New("reply has no replyMessage")
	}
	return &domain.GatewayReply{Fields: Flatten(msg)}, nil
}
