package domain

import (
	"strings"

	"github.com/google/uuid"
)

// cardTypeNames maps gateway card type codes to display names.
var cardTypeNames = map[string]string{
	"001": "Visa",
	"002": "MasterCard",
	"003": "Amex",
	"004": "Discover",
	"005": "DINERS_CLUB",
	"006": "CARTE_BLANCHE",
	"007": "JCB",
	"014": "ENROUTE",
	"021": "JAL",
	"024": "MAESTRO_UK_DOMESTIC",
	"031": "DELTA",
	"033": "VISA_ELECTRON",
	"034": "DANKORT",
	"036": "CARTE_BLEUE",
	"037": "CARTA_SI",
	"042": "MAESTRO_INTERNATIONAL",
	"043": "GE_MONEY_UK_CARD",
	"050": "HIPERCARD",
	"054": "ELO",
}

// CardTypeName returns the display name for a card type code, or "" when unknown.
func CardTypeName(code string) string {
	return cardTypeNames[code]
}

// PaymentToken is a vaulted card reference. Only the masked number is stored.
type PaymentToken struct {
	ID               uuid.UUID `json:"id"`
	LogID            uuid.UUID `json:"log_id"`
	Token            string    `json:"token"`
	MaskedCardNumber string    `json:"masked_card_number"`
	CardType         string    `json:"card_type"`
}

// TokenDetails are display fields derived from a token and the reply that created it.
type TokenDetails struct {
	CardTypeName   string `json:"card_type_name"`
	CardLast4      string `json:"card_last4"`
	CardHolder     string `json:"card_holder"`
	BillingZipCode string `json:"billing_zip_code"`
	ExpiryMonth    string `json:"expiry_month"`
	ExpiryYear     string `json:"expiry_year"`
}

// Details derives display fields; log is the reply that created the token and may be nil.
func (t *PaymentToken) Details(log *ReplyRecord) TokenDetails {
	d := TokenDetails{CardTypeName: CardTypeName(t.CardType)}
	if n := len(t.MaskedCardNumber); n >= 4 {
		d.CardLast4 = t.MaskedCardNumber[n-4:]
	}
	if log == nil {
		return d
	}
	d.CardHolder = log.ReqBillToForename + " " + log.ReqBillToSurname
	d.BillingZipCode = log.ReqBillToAddressPostalCode
	// MM-YYYY
	if parts := strings.SplitN(log.ReqCardExpiryDate, "-", 2); len(parts) == 2 {
		d.ExpiryMonth = parts[0]
		d.ExpiryYear = parts[1]
	}
	return d
}
