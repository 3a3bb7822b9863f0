// Package services provides external service integrations and technical
// concerns like the academy backend client and session tokens
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/alfurqan/academy-admin/utils"
)

// UpstreamError is the single normalized error for every academy backend
// failure: transport errors, non-2xx statuses and success=false envelopes
// all carry a human-readable message. Transient errors are retryable by
// re-invoking the same operation; the client never retries on its own.
type UpstreamError struct {
	Code      string
	Message   string
	Status    int
	Transient bool
	Err       error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a retryable upstream failure.
func IsTransient(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Transient
}

// Envelope is the fixed response wrapper used by every backend endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   any             `json:"error,omitempty"`
}

// Upload is a file forwarded opaquely with a multipart create or update.
type Upload struct {
	FieldName   string
	FileName    string
	ContentType string
	Content     []byte
}

// AcademyClient talks to the academy REST backend and unwraps its
// {success, data, message} envelopes.
type AcademyClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// NewAcademyClient creates a client for the given base URL.
func NewAcademyClient(baseURL string, timeout time.Duration) *AcademyClient {
	if timeout <= 0 {
		timeout = utils.UpstreamTimeout
	}
	return &AcademyClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Timeout:    timeout,
	}
}

// GetJSON issues a GET and decodes the envelope's data into out.
func (c *AcademyClient) GetJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

// PostJSON issues a POST with a JSON body.
func (c *AcademyClient) PostJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &UpstreamError{Code: "ENCODE_FAILED", Message: "Failed to encode request payload", Err: err}
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(body), out)
}

// PutJSON issues a PUT with a JSON body.
func (c *AcademyClient) PutJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &UpstreamError{Code: "ENCODE_FAILED", Message: "Failed to encode request payload", Err: err}
	}
	return c.do(ctx, http.MethodPut, path, "application/json", bytes.NewReader(body), out)
}

// Patch issues a PATCH with no body, used by the toggle-status endpoints.
func (c *AcademyClient) Patch(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodPatch, path, "", nil, out)
}

// Delete issues a DELETE.
func (c *AcademyClient) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, "", nil, nil)
}

// PostMultipart issues a POST with multipart/form-data: the payload's JSON
// fields become form fields and the upload is attached as a file part.
func (c *AcademyClient) PostMultipart(ctx context.Context, path string, payload any, upload *Upload, out any) error {
	contentType, body, err := encodeMultipart(payload, upload)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, contentType, body, out)
}

// PutMultipart issues a PUT with multipart/form-data.
func (c *AcademyClient) PutMultipart(ctx context.Context, path string, payload any, upload *Upload, out any) error {
	contentType, body, err := encodeMultipart(payload, upload)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, contentType, body, out)
}

func encodeMultipart(payload any, upload *Upload) (string, io.Reader, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", nil, &UpstreamError{Code: "ENCODE_FAILED", Message: "Failed to encode request payload", Err: err}
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", nil, &UpstreamError{Code: "ENCODE_FAILED", Message: "Failed to encode request payload", Err: err}
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		var text string
		switch v := value.(type) {
		case string:
			text = v
		case nil:
			continue
		default:
			b, err := json.Marshal(v)
			if err != nil {
				continue
			}
			text = string(b)
		}
		if err := w.WriteField(name, text); err != nil {
			return "", nil, &UpstreamError{Code: "ENCODE_FAILED", Message: "Failed to encode form field", Err: err}
		}
	}
	if upload != nil {
		part, err := w.CreateFormFile(upload.FieldName, upload.FileName)
		if err != nil {
			return "", nil, &UpstreamError{Code: "ENCODE_FAILED", Message: "Failed to attach upload", Err: err}
		}
		if _, err := part.Write(upload.Content); err != nil {
			return "", nil, &UpstreamError{Code: "ENCODE_FAILED", Message: "Failed to attach upload", Err: err}
		}
	}
	if err := w.Close(); err != nil {
		return "", nil, &UpstreamError{Code: "ENCODE_FAILED", Message: "Failed to finalize multipart body", Err: err}
	}
	return w.FormDataContentType(), &buf, nil
}

// do performs the request and normalizes every failure mode into a single
// UpstreamError. The envelope's data field is decoded into out when the
// call succeeds and out is non-nil.
func (c *AcademyClient) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	start := time.Now()
	outcome := "success"
	defer func() {
		observeUpstreamRequest(method, path, outcome, time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		outcome = "error"
		return &UpstreamError{Code: "REQUEST_FAILED", Message: "Failed to build backend request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if requestID, ok := ctx.Value(utils.RequestIDKey).(string); ok && requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		outcome = "unreachable"
		return &UpstreamError{
			Code:      "BACKEND_UNREACHABLE",
			Message:   "Academy backend is unreachable",
			Transient: true,
			Err:       err,
		}
	}
	defer resp.Body.Close()

	var env Envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = "error"
		message := strings.TrimSpace(env.Message)
		if message == "" {
			message = fmt.Sprintf("Academy backend returned status %d", resp.StatusCode)
		}
		return &UpstreamError{
			Code:      "BACKEND_ERROR",
			Message:   message,
			Status:    resp.StatusCode,
			Transient: resp.StatusCode >= 500,
		}
	}
	if decodeErr != nil {
		outcome = "error"
		return &UpstreamError{
			Code:    "DECODE_FAILED",
			Message: "Academy backend returned an unreadable response",
			Status:  resp.StatusCode,
			Err:     decodeErr,
		}
	}
	if !env.Success {
		outcome = "rejected"
		message := strings.TrimSpace(env.Message)
		if message == "" {
			message = "Academy backend rejected the request"
		}
		return &UpstreamError{Code: "BACKEND_REJECTED", Message: message, Status: resp.StatusCode}
	}

	if out != nil {
		if len(env.Data) == 0 {
			return &UpstreamError{
				Code:    "EMPTY_DATA",
				Message: "Academy backend response is missing data",
				Status:  resp.StatusCode,
			}
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			outcome = "error"
			return &UpstreamError{
				Code:    "DECODE_FAILED",
				Message: "Academy backend returned malformed data",
				Status:  resp.StatusCode,
				Err:     err,
			}
		}
	}
	return nil
}
