package mailgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mlegeay/examslots/pkg/metrics"
)

const (
	kindConvocation = "convocation"
	kindAnnulation  = "annulation"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент почтового шлюза
//
// Отправка писем идет после фиксации транзакции брони и является best-effort:
// таймаут клиента ограничивает время ожидания, любая ошибка конвертируется
// вызывающим кодом в статус-флаг, а не в откат брони.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
	log        Logger
}

// NewClient создает новый экземпляр клиента почтового шлюза
// m может быть nil, тогда счетчики отправок не записываются
func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: m,
		log:     log,
	}
}

// SendBookingConfirmation отправляет кандидату письмо-приглашение на экзамен
func (c *Client) SendBookingConfirmation(ctx context.Context, msg *BookingMessage) error {
	c.log.Info("Sending booking confirmation to %s (centre=%s, date=%s)",
		msg.Email, msg.NomCentre, msg.Date.Format(time.RFC3339))
	return c.post(ctx, "/v1/messages/convocation", kindConvocation, msg)
}

// SendCancellation отправляет кандидату письмо об отмене брони
func (c *Client) SendCancellation(ctx context.Context, msg *CancellationMessage) error {
	c.log.Info("Sending cancellation notice to %s (centre=%s, date=%s, byAdmin=%v)",
		msg.Email, msg.NomCentre, msg.Date.Format(time.RFC3339), msg.ByAdmin)
	return c.post(ctx, "/v1/messages/annulation", kindAnnulation, msg)
}

func (c *Client) post(ctx context.Context, path, kind string, payload interface{}) (err error) {
	defer func() {
		c.observe(kind, err)
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrSendFailed, resp.StatusCode, string(respBody))
	}
}

func (c *Client) observe(kind string, err error) {
	if c.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.metrics.MailSendTotal.WithLabelValues(kind, status).Inc()
}
