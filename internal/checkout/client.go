package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"agencylms/internal/validation"
)

const maxErrorBody = 4 << 10

// TokenSource supplies the learner's session token, if any.
type TokenSource interface {
	Token() (string, bool)
}

// StaticToken is a fixed token; the empty string means anonymous.
type StaticToken string

func (t StaticToken) Token() (string, bool) {
	s := strings.TrimSpace(string(t))
	return s, s != ""
}

// Result is the decoded success body.
type Result struct {
	Message      string
	EnrollmentID int64
}

type enrollResponse struct {
	Success      *bool  `json:"success"`
	Message      string `json:"message"`
	Error        string `json:"error"`
	EnrollmentID int64  `json:"enrollmentId"`
}

// Client posts the checkout form. It never retries.
type Client struct {
	Endpoint string
	HTTP     *http.Client
	Tokens   TokenSource
}

func NewClient(endpoint string, tokens TokenSource) *Client {
	return &Client{Endpoint: endpoint, HTTP: &http.Client{Timeout: 30 * time.Second}, Tokens: tokens}
}

func (c *Client) Enroll(ctx context.Context, form FormData) (Result, error) {
	body, contentType, err := encodeForm(form)
	if err != nil {
		return Result{}, &SubmitError{Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, body)
	if err != nil {
		return Result{}, &SubmitError{Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.Tokens != nil {
		if tok, ok := c.Tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return Result{}, &SubmitError{Err: err}
	}
	defer resp.Body.Close()
	return decodeResponse(resp)
}

func encodeForm(f FormData) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, kv := range f.fields() {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}
	if file := f.PaymentScreenshot; file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			validation.FieldPaymentScreenshot, escapeQuotes(file.Name)))
		h.Set("Content-Type", file.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }

// decodeResponse branches on the response content type. JSON bodies carry
// message or error; anything else is read as plain text.
func decodeResponse(resp *http.Response) (Result, error) {
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))

	if mediaType == "application/json" {
		var out enrollResponse
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
			return Result{}, &SubmitError{Status: resp.StatusCode, Err: fmt.Errorf("malformed response: %w", err)}
		}
		msg := out.Message
		if msg == "" {
			msg = out.Error
		}
		if !ok || (out.Success != nil && !*out.Success) {
			return Result{}, &SubmitError{Status: resp.StatusCode, Message: msg}
		}
		return Result{Message: msg, EnrollmentID: out.EnrollmentID}, nil
	}

	text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(text))
	if !ok {
		return Result{}, &SubmitError{Status: resp.StatusCode, Message: msg}
	}
	return Result{Message: msg}, nil
}

var errNoEndpoint = errors.New("checkout: no endpoint configured")
