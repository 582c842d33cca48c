package domain

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MerchantDataPrefix is the Secure Acceptance name of a merchant-defined slot.
	MerchantDataPrefix = "merchant_defined_data"
	// MaxMerchantDataSlot is the highest merchant-defined slot the gateway accepts.
	MaxMerchantDataSlot = 100
	// MaxMerchantDataLen caps a single merchant-defined value, in characters.
	MaxMerchantDataLen = 100
)

var ErrInvalidMerchantData = errors.New("invalid merchant defined data")

// MerchantData holds merchant-defined values by slot number.
type MerchantData map[int]string

// ParseMerchantData accepts keys of the form merchant_defined_data<N>. Slots
// listed in reserved belong to the gateway and are refused, as are control
// characters and values longer than MaxMerchantDataLen.
func ParseMerchantData(raw map[string]string, reserved ...int) (MerchantData, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(MerchantData, len(raw))
	for key, value := range raw {
		slot, ok := merchantDataSlot(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a merchant defined field", ErrInvalidMerchantData, key)
		}
		if slices.Contains(reserved, slot) {
			return nil, fmt.Errorf("%w: %s is reserved", ErrInvalidMerchantData, key)
		}
		if utf8.RuneCountInString(value) > MaxMerchantDataLen {
			return nil, fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidMerchantData, key, MaxMerchantDataLen)
		}
		if strings.IndexFunc(value, unicode.IsControl) >= 0 {
			return nil, fmt.Errorf("%w: %s contains control characters", ErrInvalidMerchantData, key)
		}
		out[slot] = value
	}
	return out, nil
}

// MerchantDataFromReply collects the echoed req_merchant_defined_data<N>
// fields of a reply, skipping reserved slots.
func MerchantDataFromReply(data map[string]string, reserved ...int) MerchantData {
	out := MerchantData{}
	for key, value := range data {
		name, echoed := strings.CutPrefix(key, "req_")
		slot, ok := merchantDataSlot(name)
		if !echoed || !ok || slices.Contains(reserved, slot) {
			continue
		}
		out[slot] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// MerchantDataField is the form field name of slot.
func MerchantDataField(slot int) string {
	return MerchantDataPrefix + strconv.Itoa(slot)
}

// Slots returns the used slot numbers in ascending order.
func (m MerchantData) Slots() []int {
	slots := make([]int, 0, len(m))
	for n := range m {
		slots = append(slots, n)
	}
	slices.Sort(slots)
	return slots
}

func merchantDataSlot(key string) (int, bool) {
	digits, ok := strings.CutPrefix(key, MerchantDataPrefix)
	if !ok || digits == "" || digits[0] == '0' {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n > MaxMerchantDataSlot {
		return 0, false
	}
	return n, true
}
