package snapshot

import "matchbook/infra/memory"

// Reader is a thin adapter over memory.ReaderEpoch marking where a
// consistent book enumeration begins and ends. Epoching and
// reclamation live elsewhere.
type Reader struct {
	epoch *memory.ReaderEpoch
}

func NewReader() *Reader {
	r := &Reader{epoch: &memory.ReaderEpoch{}}
	r.epoch.Exit()
	return r
}

// Begin marks the start of a consistent snapshot.
func (r *Reader) Begin() {
	r.epoch.Enter()
}

// End marks the end of a snapshot.
func (r *Reader) End() {
	r.epoch.Exit()
}

// Epoch exposes the underlying epoch for reclaimers.
func (r *Reader) Epoch() *memory.ReaderEpoch {
	return r.epoch
}
