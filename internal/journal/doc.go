// Package journal keeps a SQLite-backed history of completed exports.
//
// Each successful export appends one row: destination path, byte size,
// xxhash64 checksum of the written bytes, file id and creator string.
// Skipped exports are not recorded. Rows are never updated; listing is
// newest first (ORDER BY id DESC).
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package journal
