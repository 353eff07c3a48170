
//go:build integration

package integration

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"shoplist-csv/internal/assembler"
	"shoplist-csv/internal/config"
	"shoplist-csv/internal/crawler"
	"shoplist-csv/internal/parser"
	"shoplist-csv/pkg/logger"
)

// Set SHOPLIST_LIVE_URL to a public printable list page to run this.
func TestLiveListPage(t *testing.T) {
	url := os.Getenv("SHOPLIST_LIVE_URL")
	if url == "" {
		t.Skip("SHOPLIST_LIVE_URL not set")
	}

	cfg := config.DefaultHTTP()
	cfg.PageTimeout = 25 * time.Second
	client := crawler.NewHTTPClient(cfg, logger.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	doc, err := client.Fetch(ctx, url)
	if err != nil {
		t.Skipf("skipping: fetch failed due to network/robots/captcha: %v", err)
		return
	}

	page, err := parser.New().Extract(strings.NewReader(doc.Body), doc.ContentType)
	if err != nil {
		t.Skipf("skipping: parse failed: %v", err)
		return
	}

	asm := assembler.New()
	if al := asm.Check(page.Fields); !al.Aligned() {
		t.Errorf("page layout drifted: %s", al)
	}
	if len(asm.Assemble(page.Fields)) == 0 {
		t.Errorf("expected at least one item")
	}
}
