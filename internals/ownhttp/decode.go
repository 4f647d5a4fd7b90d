package ownhttp

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// DecodedBody returns the response body decoded according to its Content-Encoding.
// Go only decompresses transparently when it set Accept-Encoding itself,
// requests that set the header by hand have to decode here.
func DecodedBody(res *http.Response) (io.ReadCloser, error) {
	encoding := strings.ToLower(strings.TrimSpace(res.Header.Get("Content-Encoding")))
	switch encoding {
	case "", "identity":
		return res.Body, nil
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(res.Body)
		if err != nil {
			return nil, fmt.Errorf("decoding gzip body: %w", err)
		}
		return &decodedBody{zr, res.Body}, nil
	case "deflate":
		zr, err := zlib.NewReader(res.Body)
		if err != nil {
			return nil, fmt.Errorf("decoding deflate body: %w", err)
		}
		return &decodedBody{zr, res.Body}, nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
}

type decodedBody struct {
	io.ReadCloser
	raw io.Closer
}

func (d *decodedBody) Close() error {
	d.ReadCloser.Close()
	return d.raw.Close()
}
