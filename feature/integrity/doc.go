// Package integrity provides read-only health checks over the workspace.
// The application wires it with a read-only filesystem and roots looked up
// through workspace.Resolver.Lookup, so a run never creates directories.
//
// # Checks Provided
//
//   - Snapshots: server folders without snapshots, snapshot names without a
//     usable date, and snapshots whose content is not valid JSON.
//   - Templates: personal or shared template files that exist but are invalid.
//   - Database: the audit table lacks columns the recorder writes (only when
//     a database is connected).
//   - Archive: the archive bucket is missing (only when archiving is enabled).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/snapshots : Runs the snapshot check.
//   - GET /integrity/templates : Runs the template check.
//   - GET /integrity/database : Runs the audit table check.
package integrity
