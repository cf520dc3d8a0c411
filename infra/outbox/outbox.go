// Package outbox persists executed fills awaiting broadcast. Records
// advance NEW → SENT → ACKED; the broadcaster rescans anything not yet
// acked, so delivery is at-least-once and a crash between send and ack
// only ever causes a re-publish, never a loss.
package outbox

import (
	"encoding/binary"
	"errors"
	"time"

	"github.com/cockroachdb/pebble"
)

type State uint8

const (
	StateNew State = iota
	StateSent
	StateAcked
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateSent:
		return "SENT"
	case StateAcked:
		return "ACKED"
	default:
		return "UNKNOWN"
	}
}

type Record struct {
	State       State
	Retries     uint32
	LastAttempt int64
	Payload     []byte
}

// binary encoding: [state:1][retries:4][lastAttempt:8][payload...]
func encodeRecord(r Record) []byte {
	buf := make([]byte, 1+4+8+len(r.Payload))
	buf[0] = byte(r.State)
	binary.BigEndian.PutUint32(buf[1:5], r.Retries)
	binary.BigEndian.PutUint64(buf[5:13], uint64(r.LastAttempt))
	copy(buf[13:], r.Payload)
	return buf
}

func decodeRecord(b []byte) (Record, error) {
	if len(b) < 13 {
		return Record{}, errors.New("outbox: record too short")
	}
	return Record{
		State:       State(b[0]),
		Retries:     binary.BigEndian.Uint32(b[1:5]),
		LastAttempt: int64(binary.BigEndian.Uint64(b[5:13])),
		Payload:     append([]byte(nil), b[13:]...),
	}, nil
}

var keyPrefix = []byte("fill/")

func keyFor(seq uint64) []byte {
	key := make([]byte, len(keyPrefix)+8)
	copy(key, keyPrefix)
	binary.BigEndian.PutUint64(key[len(keyPrefix):], seq)
	return key
}

func seqFromKey(key []byte) uint64 {
	return binary.BigEndian.Uint64(key[len(keyPrefix):])
}

// Outbox is a pebble-backed store of pending fill events.
type Outbox struct {
	db *pebble.DB
}

func Open(dir string) (*Outbox, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &Outbox{db: db}, nil
}

func (o *Outbox) Close() error {
	return o.db.Close()
}

// PutNew inserts a fresh entry for a fill event.
func (o *Outbox) PutNew(seq uint64, payload []byte) error {
	rec := Record{State: StateNew, Payload: payload}
	return o.db.Set(keyFor(seq), encodeRecord(rec), pebble.Sync)
}

func (o *Outbox) MarkSent(seq uint64) error {
	return o.advance(seq, StateSent)
}

func (o *Outbox) MarkAcked(seq uint64) error {
	return o.advance(seq, StateAcked)
}

func (o *Outbox) advance(seq uint64, state State) error {
	rec, err := o.Get(seq)
	if err != nil {
		return err
	}
	rec.State = state
	rec.Retries++
	rec.LastAttempt = time.Now().UnixNano()
	return o.db.Set(keyFor(seq), encodeRecord(rec), pebble.Sync)
}

func (o *Outbox) Get(seq uint64) (Record, error) {
	val, closer, err := o.db.Get(keyFor(seq))
	if err != nil {
		return Record{}, err
	}
	defer closer.Close()
	return decodeRecord(val)
}

// ScanPending visits every record not yet acked, in sequence order.
func (o *Outbox) ScanPending(fn func(seq uint64, rec Record) error) error {
	upper := append(append([]byte(nil), keyPrefix...), 0xff)
	iter, err := o.db.NewIter(&pebble.IterOptions{
		LowerBound: keyPrefix,
		UpperBound: upper,
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		rec, err := decodeRecord(iter.Value())
		if err != nil {
			return err
		}
		if rec.State == StateAcked {
			continue
		}
		if err := fn(seqFromKey(iter.Key()), rec); err != nil {
			return err
		}
	}
	return iter.Error()
}

// TruncateAckedUpTo deletes acked records with sequence ≤ seq.
func (o *Outbox) TruncateAckedUpTo(seq uint64) error {
	upper := append(append([]byte(nil), keyPrefix...), 0xff)
	iter, err := o.db.NewIter(&pebble.IterOptions{
		LowerBound: keyPrefix,
		UpperBound: upper,
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if seqFromKey(iter.Key()) > seq {
			break
		}
		rec, err := decodeRecord(iter.Value())
		if err != nil {
			return err
		}
		if rec.State != StateAcked {
			continue
		}
		key := append([]byte(nil), iter.Key()...)
		if err := o.db.Delete(key, pebble.Sync); err != nil {
			return err
		}
	}
	return iter.Error()
}
