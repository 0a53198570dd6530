package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Upstream endpoint paths, relative to the configured base URL.
const (
	EndpointLogin               = "HotelUser/login"
	EndpointBookingGuestDetails = "HotelGuestRead/booking_guest_details"
	EndpointGuestAadhaarImage   = "HotelGuestRead/aadhar/image"
	EndpointPropertyByID        = "HotelPropertyRead/property_by_id"
)

// APIClient talks to the upstream guest-verification API. It resolves the
// bearer token for the acting session from the store on every request and
// wipes the session's stored auth state when the upstream answers 401.
type APIClient struct {
	BaseURL string
	HTTP    *http.Client
	Store   *SessionStore

	log *zap.SugaredLogger
}

func NewAPIClient(baseURL string, timeout time.Duration, store *SessionStore, log *zap.SugaredLogger) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Store:   store,
		log:     log,
	}
}

// transportError distinguishes "the wire failed" from "the server answered
// with an error status" so the fetch taxonomy can map them separately.
type transportError struct {
	timeout bool
	err     error
}

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

// IsTimeoutError reports whether err was a request timeout.
func IsTimeoutError(err error) bool {
	var te *transportError
	return errors.As(err, &te) && te.timeout
}

// IsNetworkError reports whether err was a transport failure of any kind.
func IsNetworkError(err error) bool {
	var te *transportError
	return errors.As(err, &te)
}

// Do performs one JSON request. sessionID may be empty for unauthenticated
// calls (login). The response body and status are returned for any completed
// HTTP exchange; only transport failures produce an error.
func (c *APIClient) Do(ctx context.Context, method, path string, query url.Values, body any, sessionID string) ([]byte, int, error) {
	u := c.BaseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if sessionID != "" {
		sess, err := c.Store.Get(sessionID)
		if err != nil {
			return nil, 0, fmt.Errorf("resolve session: %w", err)
		}
		if sess != nil {
			req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, c.classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &transportError{err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized && sessionID != "" {
		c.log.Warnw("upstream returned 401, clearing stored auth state", "session_id", sessionID)
		if clearErr := c.Store.Clear(sessionID); clearErr != nil {
			c.log.Errorw("failed to clear session after 401", "session_id", sessionID, "error", clearErr)
		}
	}

	return respBody, resp.StatusCode, nil
}

func (c *APIClient) classifyTransportError(ctx context.Context, err error) error {
	timeout := errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		timeout = true
	}
	return &transportError{timeout: timeout, err: err}
}

// UpstreamMessage pulls the human-readable message out of an upstream error
// body, if there is one.
func UpstreamMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}
