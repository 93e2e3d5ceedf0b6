package lawlinks

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/iurcrowd/lawlinks/extract"
	"github.com/iurcrowd/lawlinks/internal/pdftest"
	"github.com/iurcrowd/lawlinks/model"
	"github.com/iurcrowd/lawlinks/reader"
)

// vorinstanzen renders a reference with two links to the same court
func vorinstanzen(t *testing.T) *pdftest.Doc {
	t.Helper()
	doc := pdftest.New()
	doc.AddPage().
		Text(50, 100, "Vorinstanzen:").
		Link(50, 114, "LG Berlin", "https://example.org/lg-1").
		Text(50, 128, "und").
		Link(50, 142, "LG Berlin", "https://example.org/lg-2")
	return doc
}

func TestOpen(t *testing.T) {
	// Test with non-existent file
	_, err := Open("nonexistent.pdf").Links(context.Background())
	if !errors.Is(err, extract.ErrDecode) {
		t.Errorf("expected ErrDecode for non-existent file, got %v", err)
	}
}

func TestLinks(t *testing.T) {
	links, err := Open(vorinstanzen(t).File(t)).Links(context.Background())
	if err != nil {
		t.Fatalf("failed to extract links: %v", err)
	}

	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
	for i, l := range links {
		if l.AnchorText != "LG Berlin" || l.Occurrence != i {
			t.Errorf("links[%d] = %+v, want anchor %q at occurrence %d", i, l, "LG Berlin", i)
		}
	}
}

func TestResolve(t *testing.T) {
	transcript := "Vorinstanzen: LG Berlin und LG\nBerlin"

	resolved, stats, err := FromBytes(vorinstanzen(t).Bytes(t)).Resolve(context.Background(), transcript)
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}

	want := []model.Span{{Start: 14, End: 23}, {Start: 28, End: 37}}
	if len(resolved) != len(want) {
		t.Fatalf("expected %d links, got %d", len(want), len(resolved))
	}
	for i, w := range want {
		if resolved[i].Span == nil || *resolved[i].Span != w {
			t.Errorf("resolved[%d].Span = %+v, want %+v", i, resolved[i].Span, w)
		}
	}
	if stats.Total != 2 || stats.Resolved != 2 || stats.Degraded != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	transcript := "vorinstanzen: lg berlin"
	ext := FromBytes(vorinstanzen(t).Bytes(t))

	resolved, _, err := ext.Resolve(context.Background(), transcript)
	if err != nil {
		t.Fatal(err)
	}
	if resolved[0].IsResolved() {
		t.Error("expected case-sensitive miss by default")
	}

	resolved, stats, err := ext.CaseInsensitive().Resolve(context.Background(), transcript)
	if err != nil {
		t.Fatal(err)
	}
	if !resolved[0].IsResolved() || !resolved[1].Degraded {
		t.Errorf("unexpected result %+v", resolved)
	}
	if stats.Degraded != 1 {
		t.Errorf("stats = %+v, want one degraded link", stats)
	}
}

func TestFromReader(t *testing.T) {
	r, err := reader.FromBytes(vorinstanzen(t).Bytes(t))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	ext := FromReader(r)
	if n := Must(ext.PageCount()); n != 1 {
		t.Errorf("PageCount() = %d, want 1", n)
	}

	// The caller owns the reader, so it can be used twice
	for i := 0; i < 2; i++ {
		links, err := ext.Links(context.Background())
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if len(links) != 2 {
			t.Errorf("run %d: expected 2 links, got %d", i, len(links))
		}
	}
}

func TestChainImmutability(t *testing.T) {
	base := Open("doc.pdf")

	parallel := base.Concurrency(4)
	insensitive := base.CaseInsensitive()

	if base.options.concurrency != 1 || base.options.caseInsensitive {
		t.Error("base extractor should keep its defaults")
	}
	if parallel.options.concurrency != 4 || parallel.options.caseInsensitive {
		t.Error("parallel extractor should only change concurrency")
	}
	if !insensitive.options.caseInsensitive || insensitive.options.concurrency != 1 {
		t.Error("insensitive extractor should only change case handling")
	}
}

func TestMust(t *testing.T) {
	// Test Must with successful result
	result := Must("hello", nil)
	if result != "hello" {
		t.Errorf("expected 'hello', got %q", result)
	}

	// Test Must with error (should panic)
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected Must to panic on error")
		}
	}()
	Must("", os.ErrNotExist)
}

func TestCloseIdempotent(t *testing.T) {
	ext := Open(vorinstanzen(t).File(t))
	if _, err := ext.PageCount(); err != nil {
		t.Fatal(err)
	}

	// Multiple closes should be safe
	if err := ext.Close(); err != nil {
		t.Errorf("first close failed: %v", err)
	}
	if err := ext.Close(); err != nil {
		t.Errorf("second close failed: %v", err)
	}
}
