// Package intake реализует клиент внешнего endpoint приёма записей
// (Google Apps Script, пишущий в таблицу). Тело — JSON, но Content-Type
// объявлен как text/plain: скрипт принимает только простые запросы.
// В отличие от браузерного no-cors вызова статус ответа здесь проверяется.
package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shivaniarts/enrollment-service/internal/models"
)

type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient создаёт клиент intake endpoint с фиксированным адресом.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Send сериализует запись и отправляет её на endpoint.
func (c *Client) Send(ctx context.Context, record models.PaymentRecord) error {
	const op = "intake.Send"
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return c.SendPayload(ctx, payload)
}

// SendPayload отправляет уже сериализованную запись. Используется
// воркером доотправки, который хранит полезную нагрузку в outbox.
func (c *Client) SendPayload(ctx context.Context, payload []byte) error {
	const op = "intake.SendPayload"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}
	return nil
}
