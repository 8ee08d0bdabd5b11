package extraction

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_MissingFile(t *testing.T) {
	e := NewExtractor("")

	_, err := e.Extract(context.Background(), "/nonexistent/resume.pdf")

	assert.Error(t, err)
}

func TestExtract_DegradesOnUnreadablePDF(t *testing.T) {
	// A present but malformed file must not abort the request; both halves
	// degrade to empty.
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))

	doc, err := NewExtractor("").Extract(context.Background(), path)

	require.NoError(t, err)
	assert.Empty(t, doc.RawText)
	assert.Empty(t, doc.Hyperlinks)
}

func TestLlamaParseClient_Parse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer llama-key", r.Header.Get("Authorization"))

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/parsing/upload":
			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer func() { _ = file.Close() }()
			assert.Equal(t, "resume.pdf", header.Filename)
			fmt.Fprint(w, `{"id": "job-123"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/parsing/job/job-123":
			fmt.Fprint(w, `{"status": "SUCCESS"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/parsing/job/job-123/result/markdown":
			fmt.Fprint(w, `{"markdown": "# Jane Doe\nSoftware Engineer"}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 stub"), 0o644))

	client := newLlamaParseClient("llama-key", srv.URL)
	text, err := client.Parse(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "# Jane Doe\nSoftware Engineer", text)
}

func TestLlamaParseClient_JobError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			fmt.Fprint(w, `{"id": "job-err"}`)
		default:
			fmt.Fprint(w, `{"status": "ERROR"}`)
		}
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 stub"), 0o644))

	client := newLlamaParseClient("llama-key", srv.URL)
	_, err := client.Parse(context.Background(), path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ERROR")
}

func TestLlamaParseClient_UploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail": "invalid key"}`)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 stub"), 0o644))

	client := newLlamaParseClient("bad-key", srv.URL)
	_, err := client.Parse(context.Background(), path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
