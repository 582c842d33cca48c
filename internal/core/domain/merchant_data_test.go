package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMerchantData(t *testing.T) {
	got, err := ParseMerchantData(map[string]string{
		"merchant_defined_data1":   "gift <b>wrap</b>",
		"merchant_defined_data100": "",
	}, 50)
	require.NoError(t, err)
	assert.Equal(t, MerchantData{1: "gift <b>wrap</b>", 100: ""}, got)
	assert.Equal(t, []int{1, 100}, got.Slots())
	assert.Equal(t, "merchant_defined_data7", MerchantDataField(7))

	empty, err := ParseMerchantData(nil, 50)
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestParseMerchantData_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]string
	}{
		{"signed field", map[string]string{"amount": "0.01"}},
		{"reference number", map[string]string{"reference_number": "999"}},
		{"bare slot number", map[string]string{"7": "x"}},
		{"slot zero", map[string]string{"merchant_defined_data0": "x"}},
		{"leading zero", map[string]string{"merchant_defined_data07": "x"}},
		{"slot out of range", map[string]string{"merchant_defined_data101": "x"}},
		{"reserved slot", map[string]string{"merchant_defined_data50": "other-method"}},
		{"control character", map[string]string{"merchant_defined_data2": "a\nb"}},
		{"too long", map[string]string{"merchant_defined_data3": strings.Repeat("x", MaxMerchantDataLen+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMerchantData(tt.raw, 50)
			assert.ErrorIs(t, err, ErrInvalidMerchantData)
		})
	}
}

func TestMerchantDataFromReply(t *testing.T) {
	got := MerchantDataFromReply(map[string]string{
		"req_merchant_defined_data3":  "loyalty",
		"req_merchant_defined_data50": "cybersource",
		"merchant_defined_data4":      "not echoed",
		"req_amount":                  "10.00",
	}, 50)
	assert.Equal(t, MerchantData{3: "loyalty"}, got)

	assert.Nil(t, MerchantDataFromReply(map[string]string{"req_amount": "1"}, 50))
}

func TestIsPayableAmount(t *testing.T) {
	assert.True(t, IsPayableAmount(decimal.RequireFromString("0.01")))
	assert.True(t, IsPayableAmount(decimal.RequireFromString("1.500")))
	assert.False(t, IsPayableAmount(decimal.RequireFromString("0.004")))
	assert.False(t, IsPayableAmount(decimal.RequireFromString("10.001")))
	assert.False(t, IsPayableAmount(decimal.Zero))
	assert.False(t, IsPayableAmount(decimal.RequireFromString("-1")))
}
