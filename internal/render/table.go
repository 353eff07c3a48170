// Package render prints list items as a console table.
package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"shoplist-csv/internal/models"
)

// Options selects the look of the table. With Styled unset the table is
// plain; otherwise Style names a palette entry.
type Options struct {
	Styled bool
	Style  string
}

var columns = []table.ColumnConfig{
	{Name: "Description", Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	{Name: "Price", Align: text.AlignCenter, AlignHeader: text.AlignCenter},
	{Name: "Quantity", Align: text.AlignCenter, AlignHeader: text.AlignCenter},
	{Name: "HA", Align: text.AlignCenter, AlignHeader: text.AlignCenter},
}

// Render writes items to w. An unknown style name falls back to the
// default theme.
func Render(w io.Writer, items []models.Item, opts Options) {
	t := newTable(w)
	if opts.Styled {
		t.SetStyle(themedStyle(ThemeFor(opts.Style)))
	}
	t.AppendHeader(table.Row{"Description", "Price", "Quantity", "HA"})
	t.SetColumnConfigs(columns)
	for _, it := range items {
		t.AppendRow(table.Row{it.Description, it.Price, it.Quantity, it.Flag})
	}
	t.Render()
}

// DebugStyles prints a sample table for every SGR index from 0 to 254.
func DebugStyles(w io.Writer) {
	for i := 0; i < 255; i++ {
		fmt.Fprintf(w, "Current index: %d\n", i)
		t := newTable(w)
		t.SetStyle(themedStyle(theme(fmt.Sprint(i), i, i, i, i)))
		t.AppendHeader(table.Row{"FieldA", "FieldB", "FieldC"})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Name: "FieldA", Align: text.AlignLeft, AlignHeader: text.AlignLeft},
			{Name: "FieldB", Align: text.AlignCenter, AlignHeader: text.AlignCenter},
			{Name: "FieldC", Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		})
		for r := 0; r < 3; r++ {
			t.AppendRow(table.Row{"FieldA", "FieldB", "FieldC"})
		}
		t.Render()
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(plainStyle())
	return t
}

func plainStyle() table.Style {
	s := table.StyleDefault
	s.Format.Header = text.FormatDefault
	s.Options.SeparateRows = false
	return s
}

// go-pretty colors a whole border at once, so corners and joints take the
// horizontal color when the theme has one and the junction color otherwise.
func themedStyle(th Theme) table.Style {
	s := plainStyle()
	s.Name = "Theme" + th.Name
	border := th.Horizontal
	if border == nil {
		border = th.Junction
	}
	s.Color = table.ColorOptions{
		Border:       border,
		Separator:    th.Vertical,
		Header:       th.Default,
		Row:          th.Default,
		RowAlternate: th.Default,
		Footer:       th.Default,
	}
	return s
}
