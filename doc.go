// Package indexpager provides cursor-based pagination over ordered
// multi-field document indexes.
//
// # Overview
//
// The storage engines this package targets expose a single native query
// shape: an ordered scan with an equality prefix plus at most one two-sided
// inequality on the next index field. indexpager decomposes an arbitrary
// (startKey, endKey) range with independent inclusive/exclusive bounds into
// the minimal sequence of such canonical scans, walks them in order against
// a Streamer, and hands back resumable index keys that stay valid while the
// underlying table is concurrently mutated.
//
// # Key concepts
//   - Pager: orchestrates field resolution, range splitting, scan execution
//     and row budgets, and wraps everything behind an opaque-cursor API.
//   - IndexKey: ordered tuple of field values, always ending in the
//     (creationTime, id) tie-breaker suffix, used both as a row identity and
//     as a range boundary.
//   - RangeBuilder: declarative eq/lt/lte/gt/gte constraints that compile
//     into a boundary key pair.
//   - Streamer: the ordered-scan primitive a storage backend implements;
//     memstore and gormstore ship ready-made backends.
package indexpager
