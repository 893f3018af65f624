package moodle

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/muddle/form"
)

const (
	// Endpoint is the REST server path appended to a site's base URL
	Endpoint = "/webservice/rest/server.php"
	// ResponseFormat is the response format requested on every call
	ResponseFormat = "json"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "muddle"
)

// Client represents a connection to one Moodle site's web-service endpoint.
// It is immutable after construction and safe for concurrent use.
type Client struct {
	apiURL     string
	token      string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new Moodle client
func NewClient(baseURL, token string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: moodle URL is required", ErrInvalidConfig)
	}
	if token == "" {
		return nil, fmt.Errorf("%w: moodle token is required", ErrInvalidConfig)
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid moodle URL %q", ErrInvalidConfig, baseURL)
	}

	o := clientOptions{
		timeout:    defaultTimeout,
		userAgent:  defaultUserAgent,
		verifyCert: true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if !o.verifyCert {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		}
		httpClient = &http.Client{
			Timeout:   o.timeout,
			Transport: transport,
		}
	}

	return &Client{
		apiURL:     apiURL(baseURL),
		token:      token,
		userAgent:  o.userAgent,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// apiURL appends the endpoint to the site URL exactly once
func apiURL(baseURL string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	if strings.HasSuffix(baseURL, Endpoint) {
		return baseURL
	}
	return baseURL + Endpoint
}

// URL returns the web-service endpoint URL
func (c *Client) URL() string {
	return c.apiURL
}

// RequestParams returns a fresh copy of the parameters sent with every call
func (c *Client) RequestParams() url.Values {
	return url.Values{
		"wstoken":            {c.token},
		"moodlewsrestformat": {ResponseFormat},
	}
}

// Get calls a read-only web-service function and decodes the result into out
func (c *Client) Get(ctx context.Context, function string, params url.Values, out any) (*Response, error) {
	return c.Call(ctx, http.MethodGet, function, params, out)
}

// Post calls a web-service function that changes state and decodes the result into out
func (c *Client) Post(ctx context.Context, function string, params url.Values, out any) (*Response, error) {
	return c.Call(ctx, http.MethodPost, function, params, out)
}

// Call performs one round trip to the web-service endpoint. params are merged
// with the connection parameters; out may be nil when the result is not needed.
// The returned Response is non-nil whenever the server answered.
func (c *Client) Call(ctx context.Context, method, function string, params url.Values, out any) (*Response, error) {
	if err := form.Require(map[string]any{"wsfunction": function}); err != nil {
		return nil, err
	}

	values := c.RequestParams()
	values.Set("wsfunction", function)
	for key, v := range params {
		if _, ok := values[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrReservedParam, key)
		}
		values[key] = v
	}

	req, err := c.newRequest(ctx, method, values)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Function: function, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Function: function, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug().
		Str("function", function).
		Str("method", method).
		Int("status", resp.StatusCode).
		Int("params", len(params)).
		Dur("duration", time.Since(start)).
		Msg("Moodle web service call")

	r := &Response{
		Function:   function,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return r, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       string(body),
		}
	}

	if err := r.Decode(out); err != nil {
		return r, err
	}
	return r, nil
}

// newRequest sends GET parameters in the query string and POST parameters as a form body
func (c *Client) newRequest(ctx context.Context, method string, values url.Values) (*http.Request, error) {
	var (
		req *http.Request
		err error
	)

	switch method {
	case http.MethodGet:
		req, err = http.NewRequestWithContext(ctx, method, c.apiURL+"?"+values.Encode(), nil)
	case http.MethodPost:
		req, err = http.NewRequestWithContext(ctx, method, c.apiURL, strings.NewReader(values.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}
