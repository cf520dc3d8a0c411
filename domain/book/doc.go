// Package book implements the in-memory limit order book and crossing
// logic. Each traded symbol owns two red-black trees of price levels
// (bids and asks); each level is an intrusive FIFO queue of resting
// orders, so matching honors price priority first and arrival order
// second. A registry rejects any order id that was ever accepted and
// resolves live ids to their book position for O(1) cancellation.
//
// The book is a single-writer structure: every mutating operation must
// be serialized by the caller. Retired orders are handed to a retire
// hook instead of being freed so the owning service can recycle them
// through its epoch-based reclamation pipeline.
package book
