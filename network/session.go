package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/echodl/echodl/filesystem"
	"github.com/echodl/echodl/log"
	"github.com/samber/lo"
)

// Cookie is one name=value pair of the session cookie string.
type Cookie struct {
	Name  string
	Value string
}

// ParseCookies splits a "name=value; name=value" string. Items without an
// "=" are ignored and values may themselves contain "=".
func ParseCookies(raw string) []Cookie {
	raw = strings.Trim(raw, "\r\n\t ")

	return lo.FilterMap(strings.Split(raw, ";"), func(item string, _ int) (Cookie, bool) {
		name, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok || name == "" {
			return Cookie{}, false
		}
		return Cookie{Name: name, Value: value}, true
	})
}

// CookieHeader renders cookies back into a Cookie header value.
func CookieHeader(cookies []Cookie) string {
	return strings.Join(lo.Map(cookies, func(c Cookie, _ int) string {
		return c.Name + "=" + c.Value
	}), "; ")
}

// ProgressFunc is called while a download is written to disk. total is -1
// when the server did not announce a length.
type ProgressFunc func(url string, written, total int64)

// Session issues authenticated requests to the platform.
type Session struct {
	Client    *http.Client
	UserAgent string
	Cookies   []Cookie
	// OnProgress, if set, is notified while downloads are written.
	OnProgress ProgressFunc
	// IdleTimeout aborts a download that receives no data for this long.
	// Zero disables the watchdog.
	IdleTimeout time.Duration
}

// NewSession creates a session on the shared Client.
func NewSession(userAgent, cookies string) *Session {
	return &Session{
		Client:      Client,
		UserAgent:   userAgent,
		Cookies:     ParseCookies(cookies),
		IdleTimeout: DownloadIdleTimeout,
	}
}

// Headers are the fixed headers sent with every request.
func (s *Session) Headers() http.Header {
	h := make(http.Header, 5)
	h.Set("User-Agent", s.UserAgent)
	h.Set("Accept", "*/*")
	h.Set("Connection", "keep-alive")
	h.Set("Accept-Encoding", "gzip, deflate, br")
	return h
}

// HeadersWithCookie adds the session cookie to Headers. These are also the
// headers handed to the muxer when it reads a remote source.
func (s *Session) HeadersWithCookie() http.Header {
	h := s.Headers()
	if len(s.Cookies) > 0 {
		h.Set("Cookie", CookieHeader(s.Cookies))
	}
	return h
}

// get performs a GET and fails on any status other than 200.
// A streamed body is not bounded by the client timeout, Download guards it
// with an idle watchdog instead.
// The caller must close the returned body.
func (s *Session) get(ctx context.Context, url string, stream bool) (*http.Response, io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header = s.HeadersWithCookie()

	log.Debugf("GET %s", url)

	client := s.Client
	if client == nil {
		client = Client
	}
	if stream && client.Timeout > 0 {
		unbounded := *client
		unbounded.Timeout = 0
		client = &unbounded
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request %s: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := decodeBody(resp)
	if err != nil {
		resp.Body.Close()
		return nil, nil, err
	}

	return resp, body, nil
}

// FetchText retrieves a text document.
func (s *Session) FetchText(ctx context.Context, url string) (string, error) {
	_, body, err := s.get(ctx, url, false)
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}

	return string(data), nil
}

// FetchJSON retrieves a JSON document and decodes it into v.
func (s *Session) FetchJSON(ctx context.Context, url string, v any) error {
	_, body, err := s.get(ctx, url, false)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}

	return nil
}

// Download streams url into path. A partially written file is removed on failure.
// The download fails with ErrStalled when no data arrives for IdleTimeout.
func (s *Session) Download(ctx context.Context, url, path string) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var watchdog *time.Timer
	if s.IdleTimeout > 0 {
		watchdog = time.AfterFunc(s.IdleTimeout, func() { cancel(ErrStalled) })
		defer watchdog.Stop()
	}

	resp, body, err := s.get(ctx, url, true)
	if err != nil {
		return s.stalled(ctx, err)
	}
	defer body.Close()

	file, err := filesystem.API().OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			_ = filesystem.API().Remove(path)
		}
	}()

	total := resp.ContentLength
	if resp.Header.Get("Content-Encoding") != "" {
		total = -1
	}

	var src io.Reader = body
	if watchdog != nil {
		src = &idleReader{r: body, timer: watchdog, idle: s.IdleTimeout}
	}

	var dst io.Writer = file
	if s.OnProgress != nil {
		dst = &progressWriter{w: file, url: url, total: total, notify: s.OnProgress}
	}

	if _, err = io.Copy(dst, src); err != nil {
		return fmt.Errorf("download %s: %w", url, s.stalled(ctx, err))
	}

	return nil
}

// stalled replaces the cancellation error caused by the watchdog.
func (s *Session) stalled(ctx context.Context, err error) error {
	if errors.Is(context.Cause(ctx), ErrStalled) {
		return fmt.Errorf("%w: no data for %s", ErrStalled, s.IdleTimeout)
	}
	return err
}

// idleReader rearms timer after every read that returned data.
type idleReader struct {
	r     io.Reader
	timer *time.Timer
	idle  time.Duration
}

func (i *idleReader) Read(b []byte) (int, error) {
	n, err := i.r.Read(b)
	if n > 0 {
		i.timer.Reset(i.idle)
	}
	return n, err
}

type progressWriter struct {
	w       io.Writer
	url     string
	written int64
	total   int64
	notify  ProgressFunc
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	p.notify(p.url, p.written, p.total)
	return n, err
}
