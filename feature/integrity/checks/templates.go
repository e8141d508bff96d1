package checks

import (
	"site-settings/core/jsonfile"

	"github.com/spf13/afero"
)

// CheckTemplates reports template files that exist but do not hold valid JSON.
// Absent tiers are fine: resolution falls through to the next one.
func CheckTemplates(fs afero.Fs, paths ...string) []Issue {
	var issues []Issue
	for _, p := range paths {
		if ok, _ := afero.Exists(fs, p); !ok {
			continue
		}
		if _, err := jsonfile.Read(fs, p); err != nil {
			issues = append(issues, Issue{Problem: ProblemInvalidTemplate, File: p, Detail: err.Error()})
		}
	}
	return issues
}
