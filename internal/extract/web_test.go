package extract_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/syllaber/syllaber/internal/extract"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWeb_Fetch(t *testing.T) {
	page := `<html>
<head><title>Course Page</title><style>body { color: red; }</style></head>
<body>
<header>Site Header</header>
<nav>Navigation</nav>
<script>console.log("noise");</script>
<h1>Thermodynamics</h1>
<p>  Heat and   work.  </p>
<footer>Copyright</footer>
</body>
</html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("User-Agent = %q, want browser-like value", ua)
		}
		w.Write([]byte(page))
	}))
	defer srv.Close()

	web := extract.NewWeb(discardLogger())
	text, err := web.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}

	if !strings.Contains(text, "Thermodynamics") {
		t.Errorf("text missing heading: %q", text)
	}
	if !strings.Contains(text, "Heat and") {
		t.Errorf("text missing paragraph: %q", text)
	}

	for _, removed := range []string{"Site Header", "Navigation", "console.log", "Copyright", "color: red"} {
		if strings.Contains(text, removed) {
			t.Errorf("text should not contain %q: %q", removed, text)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if line == "" || line != strings.TrimSpace(line) {
			t.Errorf("line not trimmed or blank: %q", line)
		}
	}
}

func TestWeb_Fetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	web := extract.NewWeb(discardLogger())
	if _, err := web.Fetch(context.Background(), srv.URL); err == nil {
		t.Error("Fetch() should fail on 404")
	}
}

func TestWeb_Fetch_Unreachable(t *testing.T) {
	web := extract.NewWeb(discardLogger())
	if _, err := web.Fetch(context.Background(), "http://127.0.0.1:1/none"); err == nil {
		t.Error("Fetch() should fail for unreachable host")
	}
}

func TestDocument_Text_MissingFile(t *testing.T) {
	docs := extract.NewDocument(discardLogger())
	if _, err := docs.Text("/nonexistent/file.pdf"); err == nil {
		t.Error("Text() should fail for missing file")
	}
}

func TestDocument_Text_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pdf")
	if err := os.WriteFile(path, []byte("not a pdf at all"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	docs := extract.NewDocument(discardLogger())
	if _, err := docs.Text(path); err == nil {
		t.Error("Text() should fail for malformed pdf")
	}
}
