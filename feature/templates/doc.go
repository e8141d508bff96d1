// Package templates resolves the seed configuration used for new servers.
//
// Templates come in three tiers, probed in order:
//  1. Personal: template.json in the configuration root (per-user override).
//  2. Shared: default_template.json in the same root (team-wide default).
//  3. Built-in: a small fixed document that is always available.
//
// A tier is skipped when its file is missing or does not parse. When resolution
// falls through to the built-in template, it is written to the personal location
// so later calls stop at tier 1. That write is best-effort.
//
// # HTTP Endpoints
//
//   - GET /template : Resolved template content.
//   - PUT /template : Replace the personal template (raw JSON body).
package templates
