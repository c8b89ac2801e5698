package media

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	var gotPath, gotAuth, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logo := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(logo, []byte("png-bytes"), 0644))

	u := NewUploader(server.URL, "public-key")
	publicURL, err := u.Upload(context.Background(), logo)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotPath, "/storage/v1/object/images/"))
	assert.True(t, strings.HasSuffix(gotPath, "_logo.png"))
	assert.Equal(t, "Bearer public-key", gotAuth)
	assert.Equal(t, "png-bytes", gotBody)

	assert.True(t, strings.HasPrefix(publicURL, server.URL+"/storage/v1/object/public/images/"))
	assert.True(t, strings.HasSuffix(publicURL, "_logo.png"))
}

func TestUploadRejectsMissingFile(t *testing.T) {
	u := NewUploader("http://example.com", "key")

	_, err := u.Upload(context.Background(), "")
	assert.Error(t, err)

	_, err = u.Upload(context.Background(), "/does/not/exist.png")
	assert.Error(t, err)
}

func TestUploadSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	logo := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(logo, []byte("x"), 0644))

	_, err := NewUploader(server.URL, "key").Upload(context.Background(), logo)
	assert.ErrorContains(t, err, "403")
}
