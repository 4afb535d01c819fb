package mirrors

import (
	"context"
	"io"
	"net/http"
	"time"

	"mirrorpick/internal/errors"
	"mirrorpick/internal/log"
)

// DefaultURL is the Arch Linux mirror status endpoint.
const DefaultURL = "https://archlinux.org/mirrors/status/json/"

// DefaultTimeout bounds a single status request.
const DefaultTimeout = 15 * time.Second

// Client retrieves the mirror status document.
type Client struct {
	URL        string
	HTTPClient *http.Client
	UserAgent  string
}

// NewClient returns a client for url with the default timeout.
func NewClient(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		URL:        url,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		UserAgent:  "mirrorpick",
	}
}

// fetchRaw returns the raw status document.
func (c *Client) fetchRaw(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, errors.NewFetchError("invalid status url", c.URL, 0, errors.FetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	log.Debugf("requesting mirror status from %s", c.URL)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.NewFetchError("request failed", c.URL, 0, errors.FetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewFetchError("unexpected response", c.URL, resp.StatusCode, errors.FetchFailed, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewFetchError("reading response", c.URL, resp.StatusCode, errors.FetchFailed, err)
	}
	return body, nil
}

// Fetch retrieves and decodes the status document. The raw body is returned alongside
// so callers can cache exactly what the server sent.
func (c *Client) Fetch(ctx context.Context) (Status, []byte, error) {
	body, err := c.fetchRaw(ctx)
	if err != nil {
		return Status{}, nil, err
	}
	st, err := DecodeBytes(body)
	if err != nil {
		return Status{}, nil, errors.Wrapf(err, "decoding %s", c.URL)
	}
	log.LogWithFields(log.F("countries", len(st.Countries)), log.F("url", c.URL)).Info("located mirrors")
	return st, body, nil
}
