// Package assembler joins the independently extracted field sequences of a
// list page into items.
package assembler

import (
	"fmt"

	"shoplist-csv/internal/models"
)

type Assembler struct{}

func New() *Assembler { return &Assembler{} }

// Assemble zips the five sequences by index and stops at the shortest one.
// Extra values in longer sequences are dropped without error.
func (a *Assembler) Assemble(f models.Fields) []models.Item {
	n := minLen(f.Images, f.Descriptions, f.Prices, f.Quantities, f.Flags)
	items := make([]models.Item, n)
	for i := range items {
		items[i] = models.Item{
			Image:       f.Images[i],
			Description: f.Descriptions[i],
			Price:       f.Prices[i],
			Quantity:    f.Quantities[i],
			Flag:        f.Flags[i],
		}
	}
	return items
}

// Alignment records how many values each sequence produced.
type Alignment struct {
	Images       int
	Descriptions int
	Prices       int
	Quantities   int
	Flags        int
}

// Check measures f. It never fails; a misaligned page is still assembled.
func (a *Assembler) Check(f models.Fields) Alignment {
	return Alignment{
		Images:       len(f.Images),
		Descriptions: len(f.Descriptions),
		Prices:       len(f.Prices),
		Quantities:   len(f.Quantities),
		Flags:        len(f.Flags),
	}
}

// Aligned reports whether every sequence has the same length.
func (al Alignment) Aligned() bool {
	n := al.Images
	return al.Descriptions == n && al.Prices == n && al.Quantities == n && al.Flags == n
}

// Items is the number of items Assemble will produce.
func (al Alignment) Items() int {
	return min(al.Images, al.Descriptions, al.Prices, al.Quantities, al.Flags)
}

func (al Alignment) String() string {
	return fmt.Sprintf("images=%d descriptions=%d prices=%d quantities=%d flags=%d",
		al.Images, al.Descriptions, al.Prices, al.Quantities, al.Flags)
}

func minLen(seqs ...[]string) int {
	if len(seqs) == 0 {
		return 0
	}
	n := len(seqs[0])
	for _, s := range seqs[1:] {
		n = min(n, len(s))
	}
	return n
}
