// Package client — HTTP-клиент к API newsadmin, которым пользуется терминальная админка.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"newsadmin/internal/apperr"
	"newsadmin/internal/logger"
	"newsadmin/internal/models"

	"go.uber.org/zap"
)

// envelope — тот же конверт {"data":..., "error":...}, что пишет сервер.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New создаёт клиента. Таймаут запросов задаёт вызывающий через ctx.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// ListNewsPosts — GET /api/newsposts?limit&offset.
func (c *Client) ListNewsPosts(ctx context.Context, limit, offset int) (*models.Page, error) {
	const op = "client.Client.ListNewsPosts"

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/newsposts?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var page models.Page
	if err := c.do(req, &page); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &page, nil
}

// DeleteNewsPost — DELETE /api/admin/newsposts/{id}. Возвращает data из конверта как есть.
func (c *Client) DeleteNewsPost(ctx context.Context, credential string, id int) (json.RawMessage, error) {
	const op = "client.Client.DeleteNewsPost"

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/api/admin/newsposts/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)

	var payload json.RawMessage
	if err := c.do(req, &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payload, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	log := logger.WithCtx(req.Context()).With(
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("Запрос к API не выполнен", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	var env envelope
	if len(body) > 0 {
		if err := json.Unmarshal(body, &env); err != nil && resp.StatusCode < 300 {
			return fmt.Errorf("decode envelope: %w", err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("API вернул ошибку", zap.Int("status", resp.StatusCode), zap.String("error", env.Error))
		return apperr.FromStatus(resp.StatusCode, env.Error)
	}

	log.Debug("Ответ API получен", zap.Int("status", resp.StatusCode))
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], env.Data...)
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
