package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oceanticsports/oceantic-admin/internal/client/models"
	"github.com/oceanticsports/oceantic-admin/internal/client/resource"
	"github.com/oceanticsports/oceantic-admin/internal/common"
	"github.com/oceanticsports/oceantic-admin/internal/logging"
	"github.com/oceanticsports/oceantic-admin/internal/netx"
)

// HTTPClient implements Client over the backend REST API.
type HTTPClient struct {
	baseURL *url.URL
	tokens  TokenSource
	http    *http.Client
	timeout time.Duration
	log     logging.Logger
	newID   func() string
}

type Option func(*HTTPClient)

// WithTimeout bounds every request. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// NewHTTPClient returns a client rooted at baseURL, e.g.
// "https://api.oceanticsports.com/oceantic/v1". tokens may be nil.
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host required", baseURL)
	}
	if tokens == nil {
		tokens = TokenFunc(func() string { return "" })
	}

	c := &HTTPClient{
		baseURL: u,
		tokens:  tokens,
		http:    &http.Client{},
		log:     logging.Nop(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type response struct {
	status int
	header http.Header
	body   []byte
}

// endpoint resolves an already escaped relative path against the base URL.
func (c *HTTPClient) endpoint(path string) (string, error) {
	ref, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target, err := c.endpoint(path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestID := c.newID()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		if netx.IsTransportError(err) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, data)
	}
	return &response{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, payload any) (*response, error) {
	if payload == nil {
		return c.do(ctx, method, path, nil, "")
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	return c.do(ctx, method, path, bytes.NewReader(b), "application/json")
}

func (c *HTTPClient) send(ctx context.Context, method, path string, p Payload) (*response, error) {
	if !p.IsMultipart() {
		return c.doJSON(ctx, method, path, p.Fields)
	}
	body, contentType, err := encodeMultipart(p.Fields, p.Files)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, method, path, body, contentType)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var res models.LoginResult
	dec := json.NewDecoder(bytes.NewReader(resp.body))
	dec.UseNumber()
	if err := dec.Decode(&res); err != nil {
		return nil, malformed(resp.status, "invalid login response: %v", err)
	}
	if res.Token == "" {
		return nil, malformed(resp.status, "login response carries no token")
	}
	return &res, nil
}

func (c *HTTPClient) List(ctx context.Context, d *resource.Descriptor, parentID string) ([]models.Record, error) {
	if !d.Supports(resource.OpList) {
		return nil, fmt.Errorf("%s list: %w", d.Name, common.ErrUnsupportedOperation)
	}
	if d.Dependent() && parentID == "" {
		return nil, fmt.Errorf("%s list: %w", d.Name, common.ErrParentRequired)
	}
	return c.ListPath(ctx, d.Path(resource.OpList, "", parentID))
}

func (c *HTTPClient) ListPath(ctx context.Context, path string) ([]models.Record, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	return decodeList(resp.status, resp.body)
}

func (c *HTTPClient) Get(ctx context.Context, d *resource.Descriptor, id string) (models.Record, error) {
	if !d.Supports(resource.OpGet) {
		return nil, fmt.Errorf("%s get: %w", d.Name, common.ErrUnsupportedOperation)
	}
	resp, err := c.do(ctx, http.MethodGet, d.Path(resource.OpGet, id, ""), nil, "")
	if err != nil {
		return nil, err
	}
	return decodeRecord(resp.status, resp.body)
}

func (c *HTTPClient) Create(ctx context.Context, d *resource.Descriptor, p Payload) error {
	if !d.Supports(resource.OpCreate) {
		return fmt.Errorf("%s create: %w", d.Name, common.ErrUnsupportedOperation)
	}
	_, err := c.send(ctx, http.MethodPost, d.Path(resource.OpCreate, "", ""), p)
	return err
}

func (c *HTTPClient) Update(ctx context.Context, d *resource.Descriptor, id string, p Payload) error {
	if !d.Supports(resource.OpUpdate) {
		return fmt.Errorf("%s update: %w", d.Name, common.ErrUnsupportedOperation)
	}
	_, err := c.send(ctx, http.MethodPut, d.Path(resource.OpUpdate, id, ""), p)
	return err
}

func (c *HTTPClient) Delete(ctx context.Context, d *resource.Descriptor, id string) error {
	if !d.Supports(resource.OpDelete) {
		return fmt.Errorf("%s delete: %w", d.Name, common.ErrUnsupportedOperation)
	}
	_, err := c.do(ctx, http.MethodDelete, d.Path(resource.OpDelete, id, ""), nil, "")
	return err
}

func (c *HTTPClient) Action(ctx context.Context, a *resource.Action, body map[string]any) error {
	method := a.Method
	if method == "" {
		method = http.MethodPost
	}
	_, err := c.doJSON(ctx, method, a.Path, body)
	return err
}

// Download posts body to path and returns the raw response as a blob.
func (c *HTTPClient) Download(ctx context.Context, path string, body any) (*models.Blob, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	blob := &models.Blob{
		ContentType: resp.header.Get("Content-Type"),
		Data:        resp.body,
	}
	if cd := resp.header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			blob.FileName = params["filename"]
		}
	}
	return blob, nil
}

// AssetURL resolves a backend-relative asset path (such as an uploaded
// payment proof) against the API host, dropping the API path. Absolute URLs
// are returned unchanged.
func AssetURL(apiBase, assetBase, ref string) string {
	if ref == "" {
		return ""
	}
	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		return ref
	}
	base := assetBase
	if base == "" {
		u, err := url.Parse(apiBase)
		if err != nil || u.Host == "" {
			return ref
		}
		base = u.Scheme + "://" + u.Host
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}
