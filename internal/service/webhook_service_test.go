package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"secure-acceptance-gateway/config"
	"secure-acceptance-gateway/internal/core/domain"
	"secure-acceptance-gateway/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// mockHTTPClient implements HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func notifyConfig(url string) *config.Holder {
	return config.NewHolder(&config.Config{Notify: config.NotifyConfig{URL: url, Secret: "notify-secret"}})
}

func testUpdate() *domain.DecisionUpdate {
	return &domain.DecisionUpdate{
		OrderNumber:   "117037850784",
		TransactionID: uuid.New(),
		Reference:     "4720554329436778504102",
		OldDecision:   domain.DecisionReview,
		NewDecision:   domain.DecisionAccept,
		Reviewer:      "Bill",
	}
}

func TestWebhookNotifier_Delivered(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockNotificationRepository(ctrl)
	update := testUpdate()

	var body []byte
	var sig string
	client := &mockHTTPClient{doFunc: func(req *http.Request) (*http.Response, error) {
		body, _ = io.ReadAll(req.Body)
		sig = req.Header.Get(SignatureHeader)
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(""))}, nil
	}}

	done := make(chan domain.NotificationDelivery, 1)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d *domain.NotificationDelivery) error {
			assert.Equal(t, domain.DeliveryStatusPending, d.Status)
			assert.Equal(t, update.TransactionID, d.TransactionID)
			assert.Equal(t, "https://downstream.example.com/dm", d.TargetURL)
			return nil
		})
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d *domain.NotificationDelivery) error {
			done <- *d
			return nil
		})

	n := NewWebhookNotifier(repo, client, notifyConfig("https://downstream.example.com/dm"), newTestLogger())
	require.NoError(t, n.Notify(context.Background(), update))

	select {
	case d := <-done:
		assert.Equal(t, domain.DeliveryStatusDelivered, d.Status)
		assert.Equal(t, 1, d.Attempt)
		require.NotNil(t, d.HTTPStatus)
		assert.Equal(t, http.StatusOK, *d.HTTPStatus)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not delivered")
	}

	var payload WebhookPayload
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, EventDecisionUpdate, payload.EventType)
	assert.Equal(t, "4720554329436778504102", payload.Data.Reference)

	mac := hmac.New(sha256.New, []byte("notify-secret"))
	mac.Write(body)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), sig)
}

func TestWebhookNotifier_RetriesThenFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockNotificationRepository(ctrl)

	calls := 0
	client := &mockHTTPClient{doFunc: func(req *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection refused")
		}
		return &http.Response{StatusCode: http.StatusBadGateway, Body: io.NopCloser(strings.NewReader(""))}, nil
	}}

	attempts := make(chan domain.NotificationDelivery, 3)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(3).DoAndReturn(
		func(_ context.Context, d *domain.NotificationDelivery) error {
			attempts <- *d
			return nil
		})

	n := NewWebhookNotifier(repo, client, notifyConfig("https://downstream.example.com/dm"), newTestLogger())
	n.intervals = []time.Duration{time.Millisecond, time.Millisecond}
	require.NoError(t, n.Notify(context.Background(), testUpdate()))

	var seen []domain.NotificationDelivery
	for len(seen) < 3 {
		select {
		case d := <-attempts:
			seen = append(seen, d)
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d attempts recorded", len(seen))
		}
	}

	assert.Equal(t, domain.DeliveryStatusPending, seen[0].Status)
	assert.Nil(t, seen[0].HTTPStatus)
	require.NotNil(t, seen[0].LastError)
	assert.Equal(t, "connection refused", *seen[0].LastError)
	assert.NotNil(t, seen[0].NextRetryAt)

	last := seen[2]
	assert.Equal(t, 3, last.Attempt)
	assert.Equal(t, domain.DeliveryStatusFailed, last.Status)
	require.NotNil(t, last.HTTPStatus)
	assert.Equal(t, http.StatusBadGateway, *last.HTTPStatus)
	assert.Nil(t, last.NextRetryAt)
}

func TestWebhookNotifier_NoURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockNotificationRepository(ctrl)
	client := &mockHTTPClient{doFunc: func(*http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	}}

	n := NewWebhookNotifier(repo, client, notifyConfig(""), newTestLogger())
	assert.NoError(t, n.Notify(context.Background(), testUpdate()))
}

func TestWebhookNotifier_CreateFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockNotificationRepository(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	n := NewWebhookNotifier(repo, &mockHTTPClient{}, notifyConfig("https://downstream.example.com/dm"), newTestLogger())
	err := n.Notify(context.Background(), testUpdate())
	assert.ErrorContains(t, err, "db down")
}
