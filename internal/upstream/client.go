package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront/internal/util"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// maxBodyBytes caps how much of an upstream response is read into memory
const maxBodyBytes = 10 << 20

// Error is a non-success HTTP answer from an upstream service
type Error struct {
	Service    string
	StatusCode int
	Status     string
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s service error: %d %s - %s", e.Service, e.StatusCode, e.Status, e.Body)
}

// Response is a fully read upstream answer
type Response struct {
	StatusCode  int
	Status      string
	ContentType string
	Body        []byte
}

// OK reports a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client sends requests to one upstream service and reads the whole answer
type Client struct {
	service    string
	url        string
	httpClient *http.Client
}

// NewClient creates a client for the service reachable at url
func NewClient(service, url string, timeout time.Duration) *Client {
	return &Client{
		service:    service,
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// URL returns the upstream address
func (c *Client) URL() string {
	return c.url
}

// Do performs the request. An error is returned only when no response was received;
// any HTTP status, including 5xx, comes back as a Response.
func (c *Client) Do(ctx context.Context, method string, body []byte, header http.Header) (*Response, error) {
	ctx, span := util.StartSpan(ctx, "upstream."+c.service)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.url", c.url),
	)

	start := time.Now()
	defer func() {
		util.UpstreamLatency.WithLabelValues(c.service).Observe(time.Since(start).Seconds())
	}()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", c.service, err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		util.UpstreamFailuresTotal.WithLabelValues(c.service).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("failed to reach %s service: %w", c.service, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		util.UpstreamFailuresTotal.WithLabelValues(c.service).Inc()
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read %s response: %w", c.service, err)
	}

	util.UpstreamRequestsTotal.WithLabelValues(c.service, fmt.Sprint(resp.StatusCode)).Inc()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	return &Response{
		StatusCode:  resp.StatusCode,
		Status:      statusText(resp),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// asError turns a non-2xx response into an *Error
func (c *Client) asError(resp *Response) error {
	return &Error{
		Service:    c.service,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(resp.Body)),
	}
}

// statusText strips the numeric code from resp.Status ("500 Internal Server Error")
func statusText(resp *http.Response) string {
	if text := strings.TrimPrefix(resp.Status, fmt.Sprint(resp.StatusCode)); text != resp.Status {
		return strings.TrimSpace(text)
	}
	return http.StatusText(resp.StatusCode)
}
