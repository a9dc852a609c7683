package imagecache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		url     string
		wantExt string
	}{
		{url: "https://example.com/a/wallpaper.PNG", wantExt: ".png"},
		{url: "https://example.com/cover.jpg?size=large", wantExt: ".jpg"},
		{url: "https://example.com/image", wantExt: ".img"},
		{url: "https://example.com/file.verylongext", wantExt: ".img"},
	}
	for _, tt := range tests {
		got := Filename(tt.url)
		if !strings.HasSuffix(got, tt.wantExt) {
			t.Errorf("Filename(%q) = %q, want suffix %q", tt.url, got, tt.wantExt)
		}
		if len(got) != 32+len(tt.wantExt) {
			t.Errorf("Filename(%q) = %q, want 32 hex characters before the extension", tt.url, got)
		}
	}

	if Filename("https://a/x.png") == Filename("https://b/x.png") {
		t.Error("different URLs should not share a cache file")
	}
}

func TestDownloadAndCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	url := srv.URL + "/cover.png"
	ctx := context.Background()

	path, err := DownloadAndCache(ctx, url, CacheOptions{CacheDir: dir})
	if err != nil {
		t.Fatalf("DownloadAndCache() error = %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("cached at %s, want inside %s", path, dir)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "image-bytes" {
		t.Fatalf("cached file = %q, %v", data, err)
	}

	if _, err := DownloadAndCache(ctx, url, CacheOptions{CacheDir: dir}); err != nil {
		t.Fatalf("second DownloadAndCache() error = %v", err)
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}

	if _, err := DownloadAndCache(ctx, url, CacheOptions{CacheDir: dir, Refresh: true}); err != nil {
		t.Fatalf("refresh DownloadAndCache() error = %v", err)
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("server hit %d times after refresh, want 2", n)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("cache holds %d files, want 1", len(entries))
	}
}

func TestDownloadAndCacheRejectsNonURL(t *testing.T) {
	if _, err := DownloadAndCache(context.Background(), "/tmp/file.png", CacheOptions{CacheDir: t.TempDir()}); err == nil {
		t.Error("expected an error for a non-URL")
	}
}
