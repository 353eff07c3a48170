package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoplist-csv/internal/config"
	"shoplist-csv/internal/crawler"
	"shoplist-csv/internal/ioformats"
	"shoplist-csv/internal/models"
	"shoplist-csv/internal/parser"
	"shoplist-csv/pkg/logger"
)

func listHTML(base string) string {
	var b strings.Builder
	b.WriteString(`<html><body><h3><span>Test List</span></h3>`)
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, `<span class="a-text-bold">chrome %d</span>`, i)
	}
	b.WriteString(`<table>`)
	for i, name := range []string{"Widget", "Gadget"} {
		fmt.Fprintf(&b, `<tr>
<td class="a-text-center a-align-center g-image"><img src="%s/img/%s%%20%d.jpg"></td>
<td class="a-align-center"><span class="a-text-bold">%s</span></td>
<td class="a-text-center a-align-center">€%d,00</td>
<td class="a-text-center a-align-center">%d</td>
<td class="a-text-center a-align-center">0</td>
</tr>`, base, name, i, name, i+1, i+1)
	}
	b.WriteString(`</table></body></html>`)
	return b.String()
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	var ts *httptest.Server
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/list":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(listHTML(ts.URL)))
		case r.URL.Path == "/empty":
			_, _ = w.Write([]byte(`<html><body><p>nothing</p></body></html>`))
		case strings.HasPrefix(r.URL.Path, "/img/"):
			_, _ = w.Write([]byte("jpeg:" + r.URL.Path))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newRunner(out *bytes.Buffer) *Runner {
	r := New(crawler.NewHTTPClient(config.DefaultHTTP(), logger.NewNop()), logger.NewNop(), out)
	r.now = func() time.Time { return time.Date(2023, 10, 6, 12, 0, 0, 0, time.UTC) }
	return r
}

func TestRunWritesCSVImagesAndTable(t *testing.T) {
	ts := newServer(t)
	dst := filepath.Join(t.TempDir(), "out")
	var out bytes.Buffer

	res, err := newRunner(&out).Run(context.Background(), config.Options{
		URL:    ts.URL + "/list",
		CSV:    "gifts",
		Dst:    dst,
		Images: true,
		Table:  true,
		Style:  "dark",
	})
	require.NoError(t, err)
	assert.Equal(t, "Test List", res.Title)
	assert.Equal(t, filepath.Join(dst, "Test List_gifts_20231006120000.csv"), res.Path)
	assert.Equal(t, 2, res.Images)

	want := []models.Item{
		{Image: ts.URL + "/img/Widget%200.jpg", Description: "Widget", Price: "€1,00", Quantity: "1", Flag: "0"},
		{Image: ts.URL + "/img/Gadget%201.jpg", Description: "Gadget", Price: "€2,00", Quantity: "2", Flag: "0"},
	}
	got, err := ioformats.ReadItems(res.Path)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("csv mismatch (-want +got):\n%s", diff)
	}

	img, err := os.ReadFile(filepath.Join(dst, "Test List", "Widget 0.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg:/img/Widget 0.jpg", string(img))

	assert.Contains(t, out.String(), "Gadget")
}

func TestRunNoTitleWritesNothing(t *testing.T) {
	ts := newServer(t)
	dst := t.TempDir()
	var out bytes.Buffer

	_, err := newRunner(&out).Run(context.Background(), config.Options{URL: ts.URL + "/empty", Dst: dst, Table: true})
	require.ErrorIs(t, err, parser.ErrNoTitle)
	assert.Equal(t, OutcomeNoData, Classify(err))
	assert.Zero(t, Classify(err).ExitCode())

	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, out.String())
}

func TestRunTransportErrorWritesNothing(t *testing.T) {
	ts := newServer(t)
	dst := t.TempDir()

	_, err := newRunner(&bytes.Buffer{}).Run(context.Background(), config.Options{URL: ts.URL + "/missing", Dst: dst})
	assert.True(t, crawler.IsKind(err, crawler.KindHTTPStatus), "got %v", err)
	assert.Equal(t, OutcomeTransport, Classify(err))
	assert.Equal(t, 1, Classify(err).ExitCode())

	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunBadDestination(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := newRunner(&bytes.Buffer{}).Run(context.Background(), config.Options{URL: "http://unused.invalid/", Dst: file})
	assert.Equal(t, OutcomeFilesystem, Classify(err))
	assert.Equal(t, 1, Classify(err).ExitCode())
}

type fakeFetcher struct {
	doc       models.Document
	downloads []string
	failOn    string
}

func (f *fakeFetcher) Fetch(context.Context, string) (models.Document, error) { return f.doc, nil }

func (f *fakeFetcher) Download(_ context.Context, dir, rawURL string) (string, int64, error) {
	if rawURL == f.failOn {
		return "", 0, errors.New("boom")
	}
	f.downloads = append(f.downloads, rawURL)
	return filepath.Join(dir, "x"), 1, nil
}

func TestRunSkipsFailedImages(t *testing.T) {
	f := &fakeFetcher{doc: models.Document{URL: "http://x/list", Body: listHTML("http://x")}, failOn: "http://x/img/Widget%200.jpg"}
	r := New(f, logger.NewNop(), &bytes.Buffer{})

	res, err := r.Run(context.Background(), config.Options{URL: "http://x/list", Dst: t.TempDir(), Images: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Images)
	assert.Equal(t, []string{"http://x/img/Gadget%201.jpg"}, f.downloads)
}

func TestScrapeMisalignedTruncates(t *testing.T) {
	body := `<h3><span>L</span></h3>
<img src="a"><img src="b"><img src="c">
<span class="a-text-bold">1</span><span class="a-text-bold">2</span><span class="a-text-bold">3</span>
<span class="a-text-bold">4</span><span class="a-text-bold">5</span>
<span class="a-text-bold">first</span><span class="a-text-bold">second</span>
<table><tr>` + strings.Repeat(`<td class="a-text-center a-align-center">c</td>`, 10) + `</tr></table>`
	r := New(&fakeFetcher{doc: models.Document{Body: body}}, logger.NewNop(), &bytes.Buffer{})

	list, err := r.Scrape(context.Background(), "http://x/list")
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, "second", list.Items[1].Description)
	assert.Equal(t, "b", list.Items[1].Image)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, OutcomeOK, Classify(nil))
	assert.Equal(t, OutcomeCancelled, Classify(fmt.Errorf("fetch: %w", context.Canceled)))
	assert.Equal(t, OutcomeUnexpected, Classify(errors.New("boom")))
	assert.Equal(t, 0, OutcomeCancelled.ExitCode())
	assert.Equal(t, 1, OutcomeUnexpected.ExitCode())
}
