package network

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// decodeBody undoes the Content-Encoding of a response. Setting
// Accept-Encoding by hand turns off the transport's transparent gzip
// handling, so every advertised encoding is handled here.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))

	switch encoding {
	case "", "identity":
		return resp.Body, nil
	case "gzip", "x-gzip":
		r, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip body: %w", err)
		}
		return wrap(r, resp.Body), nil
	case "deflate":
		r, err := zlib.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("deflate body: %w", err)
		}
		return wrap(r, resp.Body), nil
	case "br":
		return wrap(brotli.NewReader(resp.Body), resp.Body), nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
}

type decodedBody struct {
	io.Reader
	closers []io.Closer
}

func wrap(r io.Reader, body io.Closer) io.ReadCloser {
	closers := []io.Closer{body}
	if c, ok := r.(io.Closer); ok {
		closers = append([]io.Closer{c}, closers...)
	}
	return &decodedBody{Reader: r, closers: closers}
}

func (d *decodedBody) Close() error {
	var first error
	for _, c := range d.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
