// Package voicevox provides an HTTP client for a VOICEVOX-compatible
// speech engine
//
// The engine owns all phonetic analysis and waveform synthesis. This
// client only builds AudioQuery objects from text and renders finished
// queries to WAV; query mutation happens upstream of it
package voicevox

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pitchfork/internal/core/audioquery"
	perr "pitchfork/internal/platform/errors"
	"pitchfork/internal/platform/logger"
)

const (
	baseURLDefault = "http://localhost:50021"
	defaultTimeout = 30 * time.Second
	defaultUA      = "pitchfork-api"
)

// Engine is the upstream speech engine surface the rest of the service
// depends on. Implemented by Client; tests substitute fakes
type Engine interface {
	// BuildQuery asks the engine to analyze text into an AudioQuery
	BuildQuery(ctx context.Context, text string, speaker int) (*audioquery.AudioQuery, error)

	// Render synthesizes a finished AudioQuery into WAV bytes
	Render(ctx context.Context, q *audioquery.AudioQuery, speaker int) ([]byte, error)

	// Version returns the engine's version string
	Version(ctx context.Context) (string, error)

	// Speakers returns the engine's speaker catalog as raw JSON
	Speakers(ctx context.Context) (json.RawMessage, error)
}

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client talks to one VOICEVOX engine instance
//
// Failures are not retried here. The engine runs as a sidecar and a dead
// sidecar should surface immediately as an unavailable error rather than
// stall the synthesis request
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// New creates a Client with sane defaults
func New(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("voicevox"),
	}
}

// BuildQuery implements Engine
func (c *Client) BuildQuery(ctx context.Context, text string, speaker int) (*audioquery.AudioQuery, error) {
	params := url.Values{}
	params.Set("text", text)
	params.Set("speaker", strconv.Itoa(speaker))

	body, err := c.do(ctx, http.MethodPost, "/audio_query?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var q audioquery.AudioQuery
	if err := json.Unmarshal(body, &q); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "voicevox audio_query decode failed")
	}
	return &q, nil
}

// Render implements Engine
func (c *Client) Render(ctx context.Context, q *audioquery.AudioQuery, speaker int) ([]byte, error) {
	params := url.Values{}
	params.Set("speaker", strconv.Itoa(speaker))

	payload, err := json.Marshal(q)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "voicevox synthesis encode failed")
	}

	return c.do(ctx, http.MethodPost, "/synthesis?"+params.Encode(), payload)
}

// Version implements Engine
//
// The engine returns the version as a bare JSON string
func (c *Client) Version(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodGet, "/version", nil)
	if err != nil {
		return "", err
	}

	var v string
	if err := json.Unmarshal(body, &v); err != nil {
		// some engine builds reply with unquoted plain text
		v = strings.Trim(strings.TrimSpace(string(body)), `"`)
	}
	return v, nil
}

// Speakers implements Engine
func (c *Client) Speakers(ctx context.Context) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, "/speakers", nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// do issues one request to the engine and returns the response body
//
// Transport failures and 5xx map to unavailable; a 422 from the engine
// means the text or query was rejected and maps to invalid argument
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	u := c.opts.BaseURL + path

	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "voicevox new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json, audio/wav")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	lat := time.Since(start)

	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "voicevox %s %s failed", method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("voicevox http response")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "voicevox read body failed")
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, perr.InvalidArgf("voicevox rejected request: %s", truncate(body, 512))
	case resp.StatusCode >= 500:
		return nil, perr.Unavailablef("voicevox server error %d", resp.StatusCode)
	default:
		return nil, perr.Unavailablef("voicevox unexpected status %d body %s", resp.StatusCode, truncate(body, 512))
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
