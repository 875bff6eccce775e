package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"ripple/dto"
	"time"
)

const (
	apiKeyHeader   = "X-API-KEY"
	viewerIdHeader = "X-Viewer-Id"
)

// ApiError is a non-2xx answer from the server. Message is the server's own text.
type ApiError struct {
	Status  int
	Message string
	Period  string
}

func (e *ApiError) Error() string {
	return e.Message
}

// Client calls the ripple API on behalf of one viewer.
type Client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) ViewerId() string {
	return c.cfg.ViewerId
}

func (c *Client) Timeline(ctx context.Context) (*dto.TimelineResp, error) {
	var res dto.TimelineResp
	path := "/api/timeline"
	if c.cfg.TimeZone != "" {
		path += "?tz=" + url.QueryEscape(c.cfg.TimeZone)
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateDrop(ctx context.Context, body string) (*dto.Drop, error) {
	var res dto.Drop
	req := dto.CreateDropReq{Body: body, TimeZone: c.cfg.TimeZone}
	if err := c.do(ctx, http.MethodPost, "/api/drops", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteDrop(ctx context.Context, dropId string) error {
	return c.do(ctx, http.MethodDelete, "/api/drops/"+url.PathEscape(dropId), nil, nil)
}

func (c *Client) ToggleHeart(ctx context.Context, dropId string) (*dto.HeartState, error) {
	var res dto.HeartState
	if err := c.do(ctx, http.MethodPost, "/api/drops/"+url.PathEscape(dropId)+"/heart", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateRipple(ctx context.Context, dropId, body string) (*dto.RippleView, error) {
	var res dto.RippleView
	path := "/api/drops/" + url.PathEscape(dropId) + "/ripples"
	if err := c.do(ctx, http.MethodPost, path, dto.CreateRippleReq{Body: body}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteRipple(ctx context.Context, rippleId string) error {
	return c.do(ctx, http.MethodDelete, "/api/ripples/"+url.PathEscape(rippleId), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, reqObj, respObj interface{}) error {
	var body io.Reader
	if reqObj != nil {
		b, err := json.Marshal(reqObj)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.ServerUrl+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.cfg.ApiKey)
	req.Header.Set(viewerIdHeader, c.cfg.ViewerId)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &ApiError{Status: resp.StatusCode, Message: fmt.Sprintf("%s %s returned %d", method, path, resp.StatusCode)}
		var errResp dto.ErrorResp
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
			apiErr.Period = string(errResp.Period)
		}
		return apiErr
	}
	if respObj == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, respObj); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}
