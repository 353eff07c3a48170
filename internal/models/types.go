
package models

// Document is a fetched page before any parsing.
type Document struct {
	URL         string `json:"url"`
	Body        string `json:"-"`
	ContentType string `json:"contentType,omitempty"`
}

// Fields holds the five sequences pulled out of a list page. Each one is
// queried independently, so nothing guarantees they line up.
type Fields struct {
	Images       []string `json:"images"`
	Descriptions []string `json:"descriptions"`
	Prices       []string `json:"prices"`
	Quantities   []string `json:"quantities"`
	Flags        []string `json:"flags"`
}

type ListPage struct {
	SourceURL string `json:"sourceUrl,omitempty"`
	Title     string `json:"title"`
	Fields    Fields `json:"fields"`
}

// Item is one list entry. Flag is the opaque "HA" column.
type Item struct {
	Image       string `json:"image"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Quantity    string `json:"quantity"`
	Flag        string `json:"ha"`
}

type ListResult struct {
	SourceURL string `json:"sourceUrl"`
	Title     string `json:"title"`
	Items     []Item `json:"items"`
}
