
package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// ImageFileName derives a local file name from the last path segment of
// rawURL, percent-decoded.
func ImageFileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	p := u.EscapedPath()
	seg := p[strings.LastIndex(p, "/")+1:]
	name, err := url.PathUnescape(seg)
	if err != nil {
		return "", err
	}
	name = strings.NewReplacer("/", "-", `\`, "-").Replace(name)
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("no file name in %q", rawURL)
	}
	return name, nil
}

// Download streams rawURL into dir. The file is created before the request
// is sent and is left behind, possibly partial, if anything fails.
// A non-OK status is only logged.
func (h *HTTPClient) Download(ctx context.Context, dir, rawURL string) (string, int64, error) {
	name, err := ImageFileName(rawURL)
	if err != nil {
		return "", 0, err
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	resp, err := h.images.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(rawURL)
	if err != nil {
		if ctx.Err() != nil {
			return path, 0, ctx.Err()
		}
		return path, 0, &TransportError{Kind: classify(err), URL: rawURL, Err: err}
	}
	body := resp.RawBody()
	defer body.Close()

	if !resp.IsSuccess() {
		h.log.Warnf("image %s: %s", rawURL, resp.Status())
	}

	n, err := copyChunks(f, body, h.chunkSize)
	if err != nil {
		return path, n, err
	}
	h.log.Debugf("saved %s (%s)", path, humanize.Bytes(uint64(n)))
	return path, n, nil
}

// copyChunks copies r to w size bytes at a time and stops at the first
// empty read.
func copyChunks(w io.Writer, r io.Reader, size int) (int64, error) {
	buf := make([]byte, size)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return total, werr
			}
			total += int64(n)
		}
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, nil
		}
	}
}
