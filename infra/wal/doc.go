// Package wal implements the segmented append-only command journal.
// Every accepted place and cancel is framed with a CRC and written to
// the current segment; segments rotate by size and can be truncated
// once their records are no longer needed. Replay iterates the journal
// in order and is used for auditing; the engine does not rebuild the
// book from it at startup.
package wal
