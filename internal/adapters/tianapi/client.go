// Package tianapi provides the outbound client for the Tian API free tier
package tianapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lambilly/hass-tian-free/internal/core/catalog"
	"github.com/lambilly/hass-tian-free/internal/core/present"
	perr "github.com/lambilly/hass-tian-free/internal/platform/errors"
	"github.com/lambilly/hass-tian-free/internal/platform/logger"
)

const (
	defaultTimeout = 15 * time.Second
	defaultUA      = "tianfree-bridge"

	// provider application codes
	codeOK          = 200
	codeBadKey      = 100
	codeRateLimited = 130
)

// Options configures the Client
type Options struct {
	// Key is the 32-char API key appended to every request
	Key string

	UserAgent string
	Timeout   time.Duration
}

// Client is a minimal Tian API client. One call per content type; all
// retry policy lives with the schedulers, not here
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// New creates a Client with sane defaults
func New(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("tianapi"),
		now:  time.Now,
	}
}

// buildURL appends key and the descriptor's paging params
func (c *Client) buildURL(d catalog.Descriptor) string {
	q := url.Values{}
	q.Set("key", c.opts.Key)
	if d.Num > 0 {
		q.Set("num", strconv.Itoa(d.Num))
	}
	if d.Page > 0 {
		q.Set("page", strconv.Itoa(d.Page))
	}
	return d.Endpoint + "?" + q.Encode()
}

// Fetch performs one request for the descriptor and returns the decoded
// envelope. Every failure mode maps to a project error code:
// timeout, transport (connection or non-2xx), malformed payload, or a
// provider application code (130 rate limited, 100 bad key, other)
func (c *Client) Fetch(ctx context.Context, d catalog.Descriptor) (present.Envelope, error) {
	var zero present.Envelope

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(d), nil)
	if err != nil {
		return zero, perr.Wrapf(err, perr.ErrorCodeUnknown, "tianapi new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)

	if err != nil {
		if isTimeout(err) {
			return zero, perr.Wrapf(err, perr.ErrorCodeTimeout, "tianapi %s timed out", d.Type)
		}
		return zero, perr.Wrapf(err, perr.ErrorCodeTransport, "tianapi %s request failed", d.Type)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("type", string(d.Type)).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("tianapi http response")

	if resp.StatusCode != http.StatusOK {
		return zero, perr.Transportf("tianapi %s http status %d", d.Type, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, perr.Wrapf(err, perr.ErrorCodeMalformedPayload, "tianapi %s body read failed", d.Type)
	}

	var env present.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return zero, perr.Wrapf(err, perr.ErrorCodeMalformedPayload, "tianapi %s body undecodable", d.Type)
	}

	switch env.Code {
	case codeOK:
		return env, nil
	case codeRateLimited:
		return zero, perr.WithUpstream(
			perr.RateLimitedf("tianapi %s rate limited: %s", d.Type, env.Msg), env.Code)
	case codeBadKey:
		return zero, perr.WithUpstream(
			perr.InvalidCredentialf("tianapi %s bad api key: %s", d.Type, env.Msg), env.Code)
	default:
		return zero, perr.WithUpstream(
			perr.Applicationf("tianapi %s error %d: %s", d.Type, env.Code, env.Msg), env.Code)
	}
}

// isTimeout classifies client-side timeouts, including context deadlines
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
