package media

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Uploader pushes files straight to the object store (Supabase storage)
// and hands back the public URL the backend and chat messages reference.
// The backend never proxies image bytes.
type Uploader struct {
	baseURL   string
	publicKey string
	bucket    string
	http      *http.Client
}

func NewUploader(baseURL, publicKey string) *Uploader {
	return &Uploader{
		baseURL:   baseURL,
		publicKey: publicKey,
		bucket:    "images",
		http:      &http.Client{Timeout: 60 * time.Second},
	}
}

// Upload stores the file under a timestamped name and returns its public
// URL.
func (u *Uploader) Upload(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", errors.New("media: no file selected")
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filepath.Base(path))
	target := fmt.Sprintf("%s/storage/v1/object/%s/%s", u.baseURL, u.bucket, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, file)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+u.publicKey)
	req.Header.Set("apikey", u.publicKey)
	req.Header.Set("Cache-Control", "3600")
	if contentType := mime.TypeByExtension(filepath.Ext(path)); contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := u.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", u.baseURL, u.bucket, name), nil
}
