// Package reportclient содержит HTTP-клиент внешнего сервиса генерации отчетов.
package reportclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUpstream возвращается, когда сервис отчетов ответил не 2xx.
// Текст статуса ответа сохраняется в сообщении ошибки.
var ErrUpstream = errors.New("report service error")

type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент сервиса генерации отчетов.
func NewClient(apiURL string) *Client {
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// GenerateReport отправляет данные встречи сервису отчетов и возвращает
// сгенерированный документ. Запрос выполняется один раз, без повторов.
func (c *Client) GenerateReport(ctx context.Context, reqParams GenerateReportRequest) (*Report, error) {
	req, err := c.newRequest(ctx, "POST", "/report", reqParams)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Report{Content: content, ContentType: contentType}, nil
}
