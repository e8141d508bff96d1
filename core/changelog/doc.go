// Package changelog computes what changed between two configuration documents
// and keeps a per-server, append-only text log of those changes.
//
// # Diff
//
// Diff walks two JSON objects key by key. Nested objects are compared
// recursively and reported with dotted paths (e.g. "mail.smtp.port"); arrays
// and scalars are compared as whole values. Each difference is one Change of
// kind added, modified or deleted.
//
// # Missing
//
// Missing lists the keys of a template that a configuration does not have yet,
// recursing into objects present on both sides.
//
// # Log file
//
// Each server folder may hold `changelog_<server>.log`, one line per save:
//
//	[2025-01-27 10:15:00] server: alpha, file: alpha_20250127.json, changes: modified: port 80 -> 8080
package changelog
