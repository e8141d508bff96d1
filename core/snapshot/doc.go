// Package snapshot implements the dated snapshot naming and ordering rules.
//
// A server folder holds an append-only history of JSON snapshots named
// `<server>_<YYYYMMDD>.json`, or `<server>_<YYYYMMDD_HHMMSS>.json` when several
// saves happen on the same day. This package knows how to read the date back
// out of such a name, how to order a folder listing newest first and how to
// build the name of the next snapshot.
//
// # Date extraction
//
// ExtractDate looks for the leftmost run of eight digits anywhere in the name and
// falls back to the legacy `_<date>.` suffix form. A date is accepted when the
// year is within [2020, 2100], the month within [1, 12] and the day within [1, 31].
// Calendar validity (e.g. February 30) is not checked.
//
// # Ordering
//
// List and Latest sort by extracted date descending, files without a date last,
// and break ties by the full file name descending, so timestamped same-day saves
// come out newest first.
//
// # Usage
//
//	names, err := snapshot.List(fs, "/configs/alpha")
//	latest, err := snapshot.Latest(fs, "/configs/alpha")
//	fmt.Println(latest.Path, latest.Date, latest.Count)
package snapshot
