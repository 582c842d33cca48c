package service

import (
	"testing"

	"secure-acceptance-gateway/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint_URL(t *testing.T) {
	fp := NewFingerprint(config.NewHolder(&config.Config{Cybersource: config.CybersourceConfig{
		FingerprintProtocol: "https",
		FingerprintHost:     "h.online-metrix.net",
		OrgID:               "org",
		MerchantID:          "merchant",
	}}))

	tests := []struct {
		urlType string
		session string
		want    string
	}{
		{"img-1", "foo", "https://h.online-metrix.net/fp/clear.png?org_id=org&session_id=merchantfoo&m=1"},
		{"img-2", "bar", "https://h.online-metrix.net/fp/clear.png?org_id=org&session_id=merchantbar&m=2"},
		{"flash", "baz", "https://h.online-metrix.net/fp/fp.swf?org_id=org&session_id=merchantbaz"},
		{"js", "bat", "https://h.online-metrix.net/fp/check.js?org_id=org&session_id=merchantbat"},
	}
	for _, tt := range tests {
		t.Run(tt.urlType, func(t *testing.T) {
			got, err := fp.URL(tt.urlType, tt.session)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := fp.URL("something", "foo")
	assert.ErrorIs(t, err, ErrUnknownFingerprintType)
	assert.True(t, fp.Supports("js"))
	assert.False(t, fp.Supports("something"))
}

func TestFingerprint_NewSessionID(t *testing.T) {
	fp := NewFingerprint(config.NewHolder(&config.Config{}))
	id, err := uuid.Parse(fp.NewSessionID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(1), id.Version())
	assert.NotEqual(t, fp.NewSessionID(), fp.NewSessionID())
}
