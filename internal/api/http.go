package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerUserAgent     = "User-Agent"
	contentTypeJSON     = "application/json"
)

// doRequest performs an HTTP request and funnels every failure into *Error.
// op names the façade operation for the localized message catalog.
func (c *Client) doRequest(ctx context.Context, op, method, path string, body interface{}, result interface{}) error {
	reqURL, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return clientError(op, err)
	}

	// JoinPath escapes query strings, so splice them back untouched.
	if strings.Contains(path, "?") {
		reqURL = c.baseURL + path
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return clientError(op, err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return clientError(op, err)
	}

	req.Header.Set(headerUserAgent, c.userAgent)
	if body != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set(headerAuthorization, "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("op", op), zap.Error(err))
		return connectionError(op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return connectionError(op, err)
	}

	c.log.Debug("request",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	if resp.StatusCode >= 400 {
		return parseError(op, resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return clientError(op, fmt.Errorf("parsing response: %w", err))
		}
	}

	return nil
}

// get performs a GET request.
func (c *Client) get(ctx context.Context, op, path string, result interface{}) error {
	return c.doRequest(ctx, op, http.MethodGet, path, nil, result)
}

// post performs a POST request.
func (c *Client) post(ctx context.Context, op, path string, body interface{}, result interface{}) error {
	return c.doRequest(ctx, op, http.MethodPost, path, body, result)
}

// put performs a PUT request.
func (c *Client) put(ctx context.Context, op, path string, body interface{}, result interface{}) error {
	return c.doRequest(ctx, op, http.MethodPut, path, body, result)
}

// patch performs a PATCH request.
func (c *Client) patch(ctx context.Context, op, path string, body interface{}, result interface{}) error {
	return c.doRequest(ctx, op, http.MethodPatch, path, body, result)
}

// del performs a DELETE request.
func (c *Client) del(ctx context.Context, op, path string) error {
	return c.doRequest(ctx, op, http.MethodDelete, path, nil, nil)
}
