package mailgateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlegeay/examslots/pkg/metrics"
)

// метрики регистрируются в глобальном реестре, поэтому создаются один раз
// на тестовый бинарник
var testMetrics = metrics.New("mailgateway-test")

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mailCount(kind, status string) float64 {
	return testutil.ToFloat64(testMetrics.MailSendTotal.WithLabelValues(kind, status))
}

func TestClient_SendBookingConfirmation_CountsSuccess(t *testing.T) {
	var gotPath, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, testMetrics, nopLogger{})
	before := mailCount("convocation", "ok")

	err := c.SendBookingConfirmation(context.Background(), &BookingMessage{Email: "dupont@test.fr"})
	require.NoError(t, err)

	assert.Equal(t, "/v1/messages/convocation", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, before+1, mailCount("convocation", "ok"))
}

func TestClient_SendCancellation_CountsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, testMetrics, nopLogger{})
	before := mailCount("annulation", "error")

	err := c.SendCancellation(context.Background(), &CancellationMessage{Email: "dupont@test.fr"})
	require.ErrorIs(t, err, ErrSendFailed)

	assert.Equal(t, before+1, mailCount("annulation", "error"))
}

func TestClient_NilMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil, nopLogger{})
	err := c.SendBookingConfirmation(context.Background(), &BookingMessage{Email: "dupont@test.fr"})
	require.NoError(t, err)
}
