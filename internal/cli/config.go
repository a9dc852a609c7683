package cli

import (
	"os"
	"strconv"

	"github.com/jmylchreest/pairtone/internal/colour"
)

// Environment variables that change flag defaults. Flags given on the
// command line always win.
const (
	EnvColours   = "PAIRTONE_COLOURS"
	EnvQuality   = "PAIRTONE_QUALITY"
	EnvAlgorithm = "PAIRTONE_ALGORITHM"
	EnvCacheDir  = "PAIRTONE_CACHE_DIR"
)

// defaults holds flag defaults after environment overrides.
type defaults struct {
	Colours   int
	Quality   int
	Algorithm string
	CacheDir  string
}

// loadDefaults reads the environment. Unparseable numbers are ignored;
// range checking is left to colour.Options.Normalize.
func loadDefaults() defaults {
	d := defaults{
		Colours:   colour.DefaultColorCount,
		Quality:   colour.DefaultQuality,
		Algorithm: string(colour.AlgorithmMedianCut),
	}

	if v, err := strconv.Atoi(os.Getenv(EnvColours)); err == nil {
		d.Colours = v
	}
	if v, err := strconv.Atoi(os.Getenv(EnvQuality)); err == nil {
		d.Quality = v
	}
	if v := os.Getenv(EnvAlgorithm); v != "" {
		d.Algorithm = v
	}
	d.CacheDir = os.Getenv(EnvCacheDir)
	return d
}
