// Package cloud mirrors a trip bundle to a remote document store as one
// document per trip, keyed by a short human-typed code. Sync is manual and
// last-writer-wins: one push or pull at a time, no conflict detection.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/chobits1012/japantriphelper/pkg/trip"
)

// Failure classes. Each maps to a different user-facing remedy: fix the
// remote configuration, fix the remote rules, retype the code, or retry.
var (
	ErrAuth       = errors.New("cloud: authentication failed, check the remote configuration")
	ErrPermission = errors.New("cloud: the remote rejected the request, check its access rules")
	ErrNotFound   = errors.New("cloud: no backup found for that code")
	ErrTimeout    = errors.New("cloud: request timed out")
	ErrBadCode    = errors.New("cloud: sync code must be 6 letters or digits")
)

// Config identifies the remote document store. Changing any field between
// calls tears down the previous session.
type Config struct {
	Endpoint string `json:"endpoint"`
	APIKey   string `json:"apiKey"`
	Project  string `json:"project"`
}

// Document is the remote representation of one mirrored trip.
type Document struct {
	Data      trip.Bundle `json:"data"`
	UpdatedAt string      `json:"updatedAt"`
}

const (
	codeLength     = 6
	codeAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	requestTimeout = 15 * time.Second
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// NormalizeCode upper-cases and validates a human-typed sync code.
func NormalizeCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if !codePattern.MatchString(code) {
		return "", ErrBadCode
	}
	return code, nil
}

type session struct {
	cfg   Config
	token string
}

// Client talks to the remote store. Now and Rand are injectable for tests;
// Timeout defaults to requestTimeout.
type Client struct {
	HTTP    *http.Client
	Now     func() time.Time
	Rand    *rand.Rand
	Timeout time.Duration

	session *session
}

// New creates a Client with default wiring.
func New() *Client {
	return &Client{
		HTTP:    http.DefaultClient,
		Now:     time.Now,
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		Timeout: requestTimeout,
	}
}

// connect returns an authenticated session for cfg, reusing the cached one
// only when the configuration is unchanged. A stale-configuration session
// is torn down and replaced, never reused.
func (c *Client) connect(ctx context.Context, cfg Config) (*session, error) {
	if cfg.Endpoint == "" || cfg.APIKey == "" || cfg.Project == "" {
		return nil, fmt.Errorf("%w: incomplete configuration", ErrAuth)
	}
	if c.session != nil && c.session.cfg == cfg {
		return c.session, nil
	}
	c.session = nil

	endpoint := fmt.Sprintf("%s/v1/projects/%s/auth:signInAnonymously",
		strings.TrimRight(cfg.Endpoint, "/"), url.PathEscape(cfg.Project))
	body, status, err := c.do(ctx, http.MethodPost, endpoint, cfg.APIKey, "", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, classify(status)
	}
	var auth struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &auth); err != nil || auth.Token == "" {
		return nil, fmt.Errorf("%w: unexpected auth response", ErrAuth)
	}
	c.session = &session{cfg: cfg, token: auth.Token}
	return c.session, nil
}

// Push writes the bundle as one remote document. When existingID is empty a
// fresh code is minted; otherwise the document at existingID is overwritten
// in place. Returns the code the bundle lives under.
func (c *Client) Push(ctx context.Context, cfg Config, b trip.Bundle, existingID string) (string, error) {
	sess, err := c.connect(ctx, cfg)
	if err != nil {
		return "", err
	}

	code := existingID
	if code == "" {
		code = c.newCode()
	} else {
		if code, err = NormalizeCode(code); err != nil {
			return "", err
		}
	}

	doc := Document{Data: b, UpdatedAt: c.Now().UTC().Format(time.RFC3339)}
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("cloud: encode document: %w", err)
	}

	_, status, err := c.do(ctx, http.MethodPut, c.documentURL(cfg, code), cfg.APIKey, sess.token, payload)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK && status != http.StatusCreated && status != http.StatusNoContent {
		return "", classify(status)
	}
	return code, nil
}

// Pull reads the document at the given code.
func (c *Client) Pull(ctx context.Context, cfg Config, code string) (trip.Bundle, error) {
	normalized, err := NormalizeCode(code)
	if err != nil {
		return trip.Bundle{}, err
	}
	sess, err := c.connect(ctx, cfg)
	if err != nil {
		return trip.Bundle{}, err
	}

	body, status, err := c.do(ctx, http.MethodGet, c.documentURL(cfg, normalized), cfg.APIKey, sess.token, nil)
	if err != nil {
		return trip.Bundle{}, err
	}
	if status != http.StatusOK {
		return trip.Bundle{}, classify(status)
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return trip.Bundle{}, fmt.Errorf("cloud: decode document: %w", err)
	}
	return doc.Data, nil
}

func (c *Client) documentURL(cfg Config, code string) string {
	return fmt.Sprintf("%s/v1/projects/%s/documents/%s",
		strings.TrimRight(cfg.Endpoint, "/"), url.PathEscape(cfg.Project), code)
}

func (c *Client) do(ctx context.Context, method, endpoint, apiKey, token string, payload []byte) ([]byte, int, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, 0, fmt.Errorf("cloud: build request: %w", err)
	}
	req.Header.Set("X-Api-Key", apiKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, 0, ErrTimeout
		}
		return nil, 0, fmt.Errorf("cloud: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("cloud: read response: %w", err)
	}
	return data, resp.StatusCode, nil
}

func (c *Client) newCode() string {
	rng := c.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	buf := make([]byte, codeLength)
	for i := range buf {
		buf[i] = codeAlphabet[rng.Intn(len(codeAlphabet))]
	}
	return string(buf)
}

func classify(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrAuth
	case http.StatusForbidden:
		return ErrPermission
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("cloud: unexpected status %d", status)
	}
}
