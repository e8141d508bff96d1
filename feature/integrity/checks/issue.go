package checks

// Problem classifies an integrity finding.
type Problem string

const (
	ProblemNoSnapshots     Problem = "no_snapshots"
	ProblemUndated         Problem = "undated"
	ProblemInvalidJSON     Problem = "invalid_json"
	ProblemUnreadable      Problem = "unreadable"
	ProblemInvalidTemplate Problem = "invalid_template"
	ProblemMissingColumn   Problem = "missing_column"
	ProblemBucketMissing   Problem = "bucket_missing"
)

// Issue is one finding of a check.
type Issue struct {
	Problem Problem `json:"problem"`
	Server  string  `json:"server,omitempty"`
	// File is a file name inside the server folder, a template path, or a column name.
	File   string `json:"file,omitempty"`
	Detail string `json:"detail,omitempty"`
}
