// Package convert renders reference strings to PDF and sends them through
// the conversion service that annotates court and statute references with
// links.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/iurcrowd/lawlinks/internal/config"
	"github.com/iurcrowd/lawlinks/internal/logging"
)

// maxErrorBody bounds how much of an error response is kept
const maxErrorBody = 512

// StatusError is returned when the service answers with a non-200 status
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("pdf conversion failed: %s", e.Status)
	}
	return fmt.Sprintf("pdf conversion failed: %s: %s", e.Status, e.Body)
}

// Client talks to the conversion service
type Client struct {
	url            string
	highlightLinks bool
	http           *http.Client
	logger         *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithLogger sets the logger for conversion timings
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// NewClient creates a client for the configured service
func NewClient(cfg config.ConverterConfig, opts ...Option) *Client {
	c := &Client{
		url:            cfg.URL,
		highlightLinks: cfg.HighlightLinks,
		http:           &http.Client{Timeout: cfg.Timeout},
		logger:         logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert uploads pdf and returns the converted document
func (c *Client) Convert(ctx context.Context, pdf []byte) ([]byte, error) {
	body, contentType, err := c.form(pdf)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, fmt.Errorf("create conversion request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send conversion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read converted pdf: %w", err)
	}

	c.logger.Info("pdf conversion successful", "elapsed", time.Since(start), "bytes", len(out))
	return out, nil
}

// form builds the multipart upload: the document as "file" and the
// highlightLinks switch
func (c *Client) form(pdf []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="input.pdf"`)
	h.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(pdf); err != nil {
		return nil, "", fmt.Errorf("write file part: %w", err)
	}

	if c.highlightLinks {
		if err := w.WriteField("highlightLinks", "true"); err != nil {
			return nil, "", fmt.Errorf("write highlightLinks field: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
