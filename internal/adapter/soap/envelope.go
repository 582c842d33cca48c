package soap

import (
	"encoding/xml"
	"fmt"
	"sort"
)

const (
	soapEnvNS     = "http://schemas.xmlsoap.org/soap/envelope/"
	transactionNS = "urn:schemas-cybersource-com:transaction-data-1.141"
	wsseNS        = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
	passwordText  = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordText"
)

// TerminalDescriptor identifies encrypted payment data read by a card terminal.
const TerminalDescriptor = "Ymx1ZWZpbg=="

type envelope struct {
	XMLName xml.Name   `xml:"SOAP-ENV:Envelope"`
	SoapNS  string     `xml:"xmlns:SOAP-ENV,attr"`
	TxnNS   string     `xml:"xmlns:ns1,attr"`
	Header  soapHeader `xml:"SOAP-ENV:Header"`
	Body    soapBody   `xml:"SOAP-ENV:Body"`
}

type soapHeader struct {
	Security wsseSecurity `xml:"wsse:Security"`
}

type wsseSecurity struct {
	MustUnderstand string        `xml:"SOAP-ENV:mustUnderstand,attr"`
	WsseNS         string        `xml:"xmlns:wsse,attr"`
	UsernameToken  usernameToken `xml:"wsse:UsernameToken"`
}

type usernameToken struct {
	Username string       `xml:"wsse:Username"`
	Password wssePassword `xml:"wsse:Password"`
}

type wssePassword struct {
	Type  string `xml:"Type,attr"`
	Value string `xml:",chardata"`
}

type soapBody struct {
	RequestMessage *requestMessage `xml:"ns1:requestMessage"`
}

type requestMessage struct {
	MerchantID            string                 `xml:"ns1:merchantID"`
	MerchantReferenceCode string                 `xml:"ns1:merchantReferenceCode"`
	BillTo                *billTo                `xml:"ns1:billTo,omitempty"`
	ShipTo                *shipTo                `xml:"ns1:shipTo,omitempty"`
	Items                 []item                 `xml:"ns1:item,omitempty"`
	PurchaseTotals        purchaseTotals         `xml:"ns1:purchaseTotals"`
	RecurringSubscription *recurringSubscription `xml:"ns1:recurringSubscriptionInfo,omitempty"`
	MerchantDefinedData   *merchantDefinedData   `xml:"ns1:merchantDefinedData,omitempty"`
	CCAuthService         *runService            `xml:"ns1:ccAuthService,omitempty"`
	CCCaptureService      *captureService        `xml:"ns1:ccCaptureService,omitempty"`
	SubscriptionCreate    *runService            `xml:"ns1:paySubscriptionCreateService,omitempty"`
	SubscriptionRetrieve  *runService            `xml:"ns1:paySubscriptionRetrieveService,omitempty"`
	DeviceFingerprintID   string                 `xml:"ns1:deviceFingerprintID,omitempty"`
	EncryptedPayment      *encryptedPayment      `xml:"ns1:encryptedPayment,omitempty"`
}

type billTo struct {
	FirstName  string `xml:"ns1:firstName,omitempty"`
	LastName   string `xml:"ns1:lastName,omitempty"`
	Street1    string `xml:"ns1:street1,omitempty"`
	Street2    string `xml:"ns1:street2,omitempty"`
	City       string `xml:"ns1:city,omitempty"`
	State      string `xml:"ns1:state,omitempty"`
	PostalCode string `xml:"ns1:postalCode,omitempty"`
	Country    string `xml:"ns1:country,omitempty"`
	Email      string `xml:"ns1:email,omitempty"`
	IPAddress  string `xml:"ns1:ipAddress,omitempty"`
	CustomerID string `xml:"ns1:customerID,omitempty"`
}

type shipTo struct {
	FirstName   string `xml:"ns1:firstName,omitempty"`
	LastName    string `xml:"ns1:lastName,omitempty"`
	Street1     string `xml:"ns1:street1,omitempty"`
	Street2     string `xml:"ns1:street2,omitempty"`
	City        string `xml:"ns1:city,omitempty"`
	State       string `xml:"ns1:state,omitempty"`
	PostalCode  string `xml:"ns1:postalCode,omitempty"`
	Country     string `xml:"ns1:country,omitempty"`
	PhoneNumber string `xml:"ns1:phoneNumber,omitempty"`
}

type item struct {
	ID          int    `xml:"id,attr"`
	UnitPrice   string `xml:"ns1:unitPrice"`
	Quantity    int    `xml:"ns1:quantity"`
	ProductName string `xml:"ns1:productName"`
	ProductSKU  string `xml:"ns1:productSKU,omitempty"`
}

type purchaseTotals struct {
	Currency         string `xml:"ns1:currency"`
	GrandTotalAmount string `xml:"ns1:grandTotalAmount"`
}

type recurringSubscription struct {
	SubscriptionID string `xml:"ns1:subscriptionID,omitempty"`
	Frequency      string `xml:"ns1:frequency,omitempty"`
}

type runService struct {
	Run string `xml:"run,attr"`
}

type captureService struct {
	Run           string `xml:"run,attr"`
	AuthRequestID string `xml:"ns1:authRequestID"`
}

type encryptedPayment struct {
	Descriptor string `xml:"ns1:descriptor"`
	Data       string `xml:"ns1:data"`
}

// merchantDefinedData renders its fields as ns1:fieldN, in N order.
type merchantDefinedData struct {
	Fields map[int]string
}

func (m merchantDefinedData) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	keys := make([]int, 0, len(m.Fields))
	for k := range m.Fields {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		el := xml.StartElement{Name: xml.Name{Local: fmt.Sprintf("ns1:field%d", k)}}
		if err := e.EncodeElement(m.Fields[k], el); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func newEnvelope(merchantID, transactionKey string, msg *requestMessage) envelope {
	return envelope{
		SoapNS: soapEnvNS,
		TxnNS:  transactionNS,
		Header: soapHeader{Security: wsseSecurity{
			MustUnderstand: "1",
			WsseNS:         wsseNS,
			UsernameToken: usernameToken{
				Username: merchantID,
				Password: wssePassword{Type: passwordText, Value: transactionKey},
			},
		}},
		Body: soapBody{RequestMessage: msg},
	}
}
