package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/dmitrijs2005/cmsadmin/internal/common"
	"github.com/dmitrijs2005/cmsadmin/internal/logging"
	"github.com/google/uuid"
)

// HTTPClient is the REST implementation of Client.
type HTTPClient struct {
	baseURL        *url.URL
	http           *http.Client
	tokens         TokenStore
	onUnauthorized func(ctx context.Context)
	log            logging.Logger
	newRequestID   func() string
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout bounds each request, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.http.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.log = l }
}

// WithUnauthorizedHandler registers the side effect run after a 401 has
// cleared the session, typically forcing navigation to the login screen.
func WithUnauthorizedHandler(fn func(ctx context.Context)) Option {
	return func(h *HTTPClient) { h.onUnauthorized = fn }
}

// NewHTTPClient binds a client to baseURL (scheme and host, optionally a
// path prefix; "/api/..." is appended to it).
func NewHTTPClient(baseURL string, tokens TokenStore, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	h := &HTTPClient{
		baseURL:      u,
		http:         &http.Client{Timeout: 30 * time.Second},
		tokens:       tokens,
		log:          logging.Nop(),
		newRequestID: func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(h)
	}
	return h, nil
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	// public requests skip token injection and the 401 handler.
	public bool
}

func (h *HTTPClient) endpoint(path string, query url.Values) string {
	u := *h.baseURL
	u.Path = u.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends r and decodes a 2xx JSON body into out (if non-nil).
func (h *HTTPClient) do(ctx context.Context, r request, out any) error {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, h.endpoint(r.path, r.query), body)
	if err != nil {
		return err
	}

	requestID := h.newRequestID()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if !r.public {
		if token, ok := h.tokens.Peek(ctx); ok {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	log := h.log.With("request_id", requestID, "method", r.method, "path", r.path)
	started := time.Now()

	resp, err := h.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Warn(ctx, "request failed", "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "response", "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return h.handleFailure(ctx, log, r, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", r.method, r.path, err)
	}
	return nil
}

func (h *HTTPClient) handleFailure(ctx context.Context, log logging.Logger, r request, resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	serr := &StatusError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(msg)),
		Err:        mapStatus(resp.StatusCode),
	}

	if resp.StatusCode == http.StatusUnauthorized && !r.public {
		log.Warn(ctx, "unauthorized response, clearing session")
		if err := h.tokens.Clear(ctx); err != nil {
			log.Error(ctx, "failed to clear session", "error", err)
		}
		if h.onUnauthorized != nil {
			h.onUnauthorized(ctx)
		}
		return serr
	}

	log.Info(ctx, "request rejected", "status", resp.StatusCode)
	return serr
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a token. Credentials travel as query
// parameters, as the API expects. Failures do not touch the session.
func (h *HTTPClient) Login(ctx context.Context, email string, password []byte) (string, error) {
	q := url.Values{}
	q.Set("email", email)
	q.Set("password", string(password))

	var out loginResponse
	err := h.do(ctx, request{method: http.MethodPost, path: "/api/auth/login", query: q, public: true}, &out)
	if err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", common.ErrInvalidToken
	}
	return out.Token, nil
}

// Ping is the authenticated request used by session validation.
func (h *HTTPClient) Ping(ctx context.Context) error {
	return h.do(ctx, request{method: http.MethodGet, path: "/api/news"}, nil)
}

func (h *HTTPClient) ListBanners(ctx context.Context, t models.BannerType) ([]models.Banner, error) {
	var out []models.Banner
	path := "/api/banners/type/" + url.PathEscape(string(t))
	if err := h.do(ctx, request{method: http.MethodGet, path: path}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *HTTPClient) UploadBanner(ctx context.Context, u models.BannerUpload) (models.Banner, error) {
	var out models.Banner

	body, contentType, err := buildMultipart(
		map[string]string{"type": string(u.Type)},
		map[string]*models.File{"desktopImage": u.Desktop, "mobileImage": u.Mobile},
	)
	if err != nil {
		return out, err
	}

	err = h.do(ctx, request{method: http.MethodPost, path: "/api/banners/upload", body: body, contentType: contentType}, &out)
	return out, err
}

func (h *HTTPClient) DeleteBanner(ctx context.Context, id models.ID) error {
	return h.do(ctx, request{method: http.MethodDelete, path: "/api/banners/" + url.PathEscape(id.String())}, nil)
}

func (h *HTTPClient) ListNews(ctx context.Context) ([]models.News, error) {
	var out []models.News
	if err := h.do(ctx, request{method: http.MethodGet, path: "/api/news"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *HTTPClient) UploadNews(ctx context.Context, u models.NewsUpload) (models.News, error) {
	var out models.News

	files := map[string]*models.File{}
	if !u.PDF.Empty() {
		files["pdf"] = u.PDF
	}
	body, contentType, err := buildMultipart(
		map[string]string{"title": u.Title, "description": u.Description, "author": u.Author},
		files,
	)
	if err != nil {
		return out, err
	}

	err = h.do(ctx, request{method: http.MethodPost, path: "/api/news/upload", body: body, contentType: contentType}, &out)
	return out, err
}

func (h *HTTPClient) DeleteNews(ctx context.Context, id models.ID) error {
	return h.do(ctx, request{method: http.MethodDelete, path: "/api/news/" + url.PathEscape(id.String())}, nil)
}

// buildMultipart encodes fields and files as multipart/form-data. Each file
// part carries a sniffed Content-Type. Nil files are skipped.
func buildMultipart(fields map[string]string, files map[string]*models.File) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	for field, f := range files {
		if f == nil {
			continue
		}
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, f.Name))
		hdr.Set("Content-Type", http.DetectContentType(f.Data))
		part, err := w.CreatePart(hdr)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// IsAuthFailure reports whether err means the session is gone.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
