package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestPreviewEnabled(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	tests := []struct {
		name    string
		mode    string
		w       io.Writer
		want    bool
		wantErr bool
	}{
		{name: "always", mode: previewAlways, w: &bytes.Buffer{}, want: true},
		{name: "never", mode: previewNever, w: &bytes.Buffer{}},
		{name: "auto buffer", mode: previewAuto, w: &bytes.Buffer{}},
		{name: "auto regular file", mode: previewAuto, w: file},
		{name: "unknown", mode: "sometimes", w: &bytes.Buffer{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := previewEnabled(tt.mode, tt.w)
			if (err != nil) != tt.wantErr {
				t.Fatalf("previewEnabled() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("previewEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		env     string
		want    hclog.Level
	}{
		{name: "default", want: hclog.Info},
		{name: "verbose", verbose: true, want: hclog.Debug},
		{name: "quiet", quiet: true, want: hclog.Error},
		{name: "env overrides", quiet: true, env: "trace", want: hclog.Trace},
		{name: "bad env ignored", verbose: true, env: "loud", want: hclog.Debug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvLogLevel, tt.env)
			logger := newLogger(&bytes.Buffer{}, tt.verbose, tt.quiet)
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("level = %s, want %s", got, tt.want)
			}
			if logger.Name() != "pairtone" {
				t.Errorf("Name() = %q, want pairtone", logger.Name())
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvColours, "9")
	t.Setenv(EnvQuality, "not-a-number")
	t.Setenv(EnvAlgorithm, "kmeans")
	t.Setenv(EnvCacheDir, "/tmp/pairtone-cache")

	d := loadDefaults()
	want := defaults{Colours: 9, Quality: 5, Algorithm: "kmeans", CacheDir: "/tmp/pairtone-cache"}
	if d != want {
		t.Errorf("loadDefaults() = %+v, want %+v", d, want)
	}
}
