package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raveheart1/relnote/internal/semver"
)

// DefaultScanWindow bounds how many leading lines of the changelog are
// searched for a version marker.
const DefaultScanWindow = 10

// DiscoverVersion scans the first window lines of the document for a
// vMAJOR.MINOR.PATCH marker. The first match wins. Discovery is best-effort:
// a missing marker yields 0.0.0 rather than an error.
func DiscoverVersion(doc string, window int) semver.Version {
	if window <= 0 {
		window = DefaultScanWindow
	}

	lines := strings.SplitN(doc, "\n", window+1)
	if len(lines) > window {
		lines = lines[:window]
	}

	for _, line := range lines {
		if v, ok := semver.Find(line); ok {
			return v
		}
	}
	return semver.Zero
}

// ReadDocument reads the changelog file at path. A missing file is not an
// error: the updater treats it as an empty document and creates it on write.
func ReadDocument(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("reading changelog file: %w", err)
	}
	return string(data), nil
}

// WriteDocument rewrites the changelog file at path in a single pass.
func WriteDocument(path, doc string) error {
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing changelog file: %w", err)
	}
	return nil
}
