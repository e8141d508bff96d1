package snapshot

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

const (
	dateLayout  = "20060102"
	stampLayout = "20060102_150405"
	// counterWidth keeps same-second names sorting by save order.
	counterWidth = 3
)

// FileName returns `<server>_<YYYYMMDD>.json` for the given time.
func FileName(server string, t time.Time) string {
	return fmt.Sprintf("%s_%s%s", server, t.Format(dateLayout), Extension)
}

// TimestampedFileName returns `<server>_<YYYYMMDD_HHMMSS>.json` for the given time.
func TimestampedFileName(server string, t time.Time) string {
	return fmt.Sprintf("%s_%s%s", server, t.Format(stampLayout), Extension)
}

// NextPath picks a path for a new snapshot in folder that does not exist yet.
// It tries the day name, then the timestamped name, then the timestamped name
// with a zero-padded counter (`_002`, `_003`...), so a save never replaces an
// existing snapshot.
func NextPath(fs afero.Fs, folder, server string, now time.Time) (string, error) {
	candidates := []string{FileName(server, now), TimestampedFileName(server, now)}
	for _, name := range candidates {
		p := filepath.Join(folder, name)
		exists, err := afero.Exists(fs, p)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		if !exists {
			return p, nil
		}
	}

	for n := 2; ; n++ {
		name := fmt.Sprintf("%s_%s_%0*d%s", server, now.Format(stampLayout), counterWidth, n, Extension)
		p := filepath.Join(folder, name)
		exists, err := afero.Exists(fs, p)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		if !exists {
			return p, nil
		}
	}
}
