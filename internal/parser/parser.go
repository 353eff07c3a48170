
package parser

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"shoplist-csv/internal/models"
)

// Layout of the printable list view. Rows look like:
//
//	<tr class="a-align-center g-print-view-row">
//	  <td class="a-text-center a-align-center g-image"><img src="..."></td>
//	  <td class="a-align-center"><span class="a-text-bold">desc</span><br>by ... |</td>
//	  <td class="a-align-center"></td>
//	  <td class="a-text-center a-align-center"><span>€ 228,90</span></td>
//	  <td class="a-text-center a-align-center"><span>1</span></td>
//	  <td class="a-text-center a-align-center"><span>0</span></td>
//	</tr>
//
// There is no selector for a whole row, so every column is queried on its
// own and lined up by position. A template change only needs these updated.
const (
	TitleSelector       = "h3"
	TitleLabelSelector  = "span"
	ImageSelector       = "img"
	DescriptionSelector = "span.a-text-bold"
	// CellSelector matches the class attribute exactly, so the image cell
	// (which adds g-image) is not counted.
	CellSelector = `td[class="a-text-center a-align-center"]`

	// DescriptionSkip is the number of bold spans in the page chrome ahead
	// of the first item.
	DescriptionSkip = 5
	// CellGroupSize is the number of cells per item: price, quantity, flag.
	CellGroupSize = 3
)

// ErrNoTitle means the page has no list heading, i.e. nothing to parse.
var ErrNoTitle = errors.New("no valid data to parse")

type Parser struct{}

func New() *Parser { return &Parser{} }

// Extract parses a list page into its title and field sequences.
func (p *Parser) Extract(r io.Reader, contentType string) (models.ListPage, error) {
	// Decode to UTF-8 if needed
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, r); err != nil {
		return models.ListPage{}, err
	}
	data := buf.Bytes()

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// fallback: if already utf-8, continue
		if !utf8.Valid(data) {
			return models.ListPage{}, err
		}
		utf8data = data
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8data))
	if err != nil {
		return models.ListPage{}, err
	}

	title, ok := listTitle(doc)
	if !ok {
		return models.ListPage{}, ErrNoTitle
	}

	return models.ListPage{Title: title, Fields: fields(doc)}, nil
}

func listTitle(doc *goquery.Document) (string, bool) {
	h := doc.Find(TitleSelector).First()
	if h.Length() == 0 {
		return "", false
	}
	label := h.Find(TitleLabelSelector).First()
	if label.Length() == 0 {
		label = h
	}
	title := strings.TrimSpace(label.Text())
	return title, title != ""
}

func fields(doc *goquery.Document) models.Fields {
	var f models.Fields

	// an img without src still takes its slot
	f.Images = doc.Find(ImageSelector).Map(func(_ int, s *goquery.Selection) string {
		return strings.TrimSpace(s.AttrOr("src", ""))
	})

	descriptions := doc.Find(DescriptionSelector).Map(func(_ int, s *goquery.Selection) string {
		return strings.TrimSpace(s.Text())
	})
	f.Descriptions = skip(descriptions, DescriptionSkip)

	cells := doc.Find(CellSelector).Map(func(_ int, s *goquery.Selection) string {
		return strings.TrimSpace(s.Text())
	})
	groups := Chunk(cells, CellGroupSize)
	f.Prices = Column(groups, 0)
	f.Quantities = Column(groups, 1)
	f.Flags = Column(groups, 2)

	return f
}

func skip[T any](s []T, n int) []T {
	if n >= len(s) {
		return []T{}
	}
	return s[n:]
}
