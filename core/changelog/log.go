package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const timeLayout = "2006-01-02 15:04:05"

// FileName returns the log file name for a server.
func FileName(server string) string {
	return "changelog_" + server + ".log"
}

// Path returns the log file path inside a server folder.
func Path(serverFolder, server string) string {
	return filepath.Join(serverFolder, FileName(server))
}

// Format renders a single change as text.
func Format(c Change) string {
	switch c.Kind {
	case Added:
		return fmt.Sprintf("added: %s = %s", c.Path, c.NewValue)
	case Modified:
		return fmt.Sprintf("modified: %s %s -> %s", c.Path, c.OldValue, c.NewValue)
	case Deleted:
		return fmt.Sprintf("deleted: %s (was: %s)", c.Path, c.OldValue)
	default:
		return ""
	}
}

// FormatEntry renders one log line for a save.
func FormatEntry(at time.Time, server, file string, changes []Change) string {
	parts := make([]string, 0, len(changes))
	for _, c := range changes {
		if s := Format(c); s != "" {
			parts = append(parts, s)
		}
	}
	return fmt.Sprintf("[%s] server: %s, file: %s, changes: %s",
		at.Format(timeLayout), server, file, strings.Join(parts, "; "))
}

// Append adds a line to the log file, creating it if needed.
func Append(fs afero.Fs, path, line string) error {
	f, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open change log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to append change log: %w", err)
	}
	return nil
}

// Read returns the log content, or an empty string when there is no log yet.
func Read(fs afero.Fs, path string) (string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read change log: %w", err)
	}
	return string(data), nil
}
