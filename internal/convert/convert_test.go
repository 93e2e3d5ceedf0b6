package convert

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iurcrowd/lawlinks/internal/config"
	"github.com/iurcrowd/lawlinks/reader"
	"github.com/iurcrowd/lawlinks/text"
)

func TestRenderReference(t *testing.T) {
	ref := "LG München I, Urteil vom 1. Januar 2020"

	data, err := RenderReference(ref)
	if err != nil {
		t.Fatalf("RenderReference failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a pdf: %q", data[:min(len(data), 16)])
	}

	r, err := reader.FromBytes(data)
	if err != nil {
		t.Fatalf("rendered pdf does not parse: %v", err)
	}
	page, err := r.Page(0)
	if err != nil {
		t.Fatal(err)
	}
	glyphs, err := page.Glyphs()
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(text.NewLayout(glyphs).Text()); got != ref {
		t.Errorf("rendered text = %q, want %q", got, ref)
	}
}

func TestRenderReferenceWraps(t *testing.T) {
	ref := strings.Repeat("Oberlandesgericht ", 60)

	data, err := RenderReference(ref)
	if err != nil {
		t.Fatalf("RenderReference failed: %v", err)
	}
	r, err := reader.FromBytes(data)
	if err != nil {
		t.Fatal(err)
	}
	page, _ := r.Page(0)
	glyphs, err := page.Glyphs()
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(text.NewLayout(glyphs).Text()), "\n")
	if len(lines) < 2 {
		t.Errorf("expected wrapped lines, got %d", len(lines))
	}
}

func converterConfig(url string) config.ConverterConfig {
	return config.ConverterConfig{URL: url, Timeout: 5 * time.Second, HighlightLinks: true}
}

func TestConvert(t *testing.T) {
	input := []byte("%PDF-1.4 input")
	output := []byte("%PDF-1.4 converted")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if got := r.FormValue("highlightLinks"); got != "true" {
			t.Errorf("highlightLinks = %q", got)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			http.Error(w, "no file", http.StatusBadRequest)
			return
		}
		defer f.Close()
		if ct := hdr.Header.Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("file content type = %q", ct)
		}
		got, _ := io.ReadAll(f)
		if !bytes.Equal(got, input) {
			t.Errorf("uploaded %q, want %q", got, input)
		}
		w.Write(output)
	}))
	defer srv.Close()

	got, err := NewClient(converterConfig(srv.URL)).Convert(context.Background(), input)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !bytes.Equal(got, output) {
		t.Errorf("Convert() = %q, want %q", got, output)
	}
}

func TestConvertWithoutHighlight(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		if _, ok := r.MultipartForm.Value["highlightLinks"]; ok {
			t.Error("highlightLinks should not be sent")
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	cfg := converterConfig(srv.URL)
	cfg.HighlightLinks = false
	if _, err := NewClient(cfg, WithHTTPClient(srv.Client())).Convert(context.Background(), []byte("x")); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
}

func TestConvertStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unsupported document", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	_, err := NewClient(converterConfig(srv.URL)).Convert(context.Background(), []byte("x"))

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if se.StatusCode != http.StatusUnprocessableEntity || se.Body != "unsupported document" {
		t.Errorf("unexpected status error %+v", se)
	}
}

func TestConvertCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("late"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewClient(converterConfig(srv.URL)).Convert(ctx, []byte("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
