// Package logs tails the sublign run log with bounded memory usage.
//
// It supports "last N lines" reads via negative offsets and incremental
// follow reads that resume from a byte offset, which backs the
// `sublign logs --follow` command. Missing files are treated as empty so
// callers can poll before the first run has written anything.
package logs
