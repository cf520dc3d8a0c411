package wal

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	Dir         string
	SegmentSize int64
}

type WAL struct {
	dir      string
	segSize  int64
	current  *segment
	segIndex int
}

func Open(cfg Config) (*WAL, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}

	index := nextSegmentIndex(cfg.Dir)
	seg, err := openSegment(cfg.Dir, index)
	if err != nil {
		return nil, err
	}

	return &WAL{
		dir:      cfg.Dir,
		segSize:  cfg.SegmentSize,
		current:  seg,
		segIndex: index,
	}, nil
}

// nextSegmentIndex resumes at the highest existing segment index so a
// restart keeps appending where the last run left off. Indices come
// from the file names, not the file count: truncation removes older
// segments, so the count says nothing about the newest index.
func nextSegmentIndex(dir string) int {
	files, err := filepath.Glob(filepath.Join(dir, "segment-*.wal"))
	if err != nil {
		return 0
	}

	max := 0
	for _, path := range files {
		var idx int
		if _, err := fmt.Sscanf(filepath.Base(path), "segment-%d.wal", &idx); err != nil {
			continue
		}
		if idx > max {
			max = idx
		}
	}
	return max
}

// Append frames and writes one record:
// [type:1][seq:8][time:8][len:4][payload][crc:4]
func (w *WAL) Append(r *Record) error {
	payloadLen := uint32(len(r.Data))
	buf := make([]byte, 1+8+8+4+payloadLen+4)

	buf[0] = byte(r.Type)
	binary.BigEndian.PutUint64(buf[1:9], r.Seq)
	binary.BigEndian.PutUint64(buf[9:17], uint64(r.Time))
	binary.BigEndian.PutUint32(buf[17:21], payloadLen)
	copy(buf[21:], r.Data)

	crc := CRC32(buf[:21+payloadLen])
	binary.BigEndian.PutUint32(buf[21+payloadLen:], crc)

	if err := w.current.append(buf); err != nil {
		return err
	}

	if w.current.offset >= w.segSize {
		return w.rotate()
	}
	return nil
}

func (w *WAL) rotate() error {
	_ = w.current.close()
	w.segIndex++

	seg, err := openSegment(w.dir, w.segIndex)
	if err != nil {
		return err
	}
	w.current = seg
	return nil
}

// TruncateBefore removes whole segments whose records all have
// sequence numbers at or below seq.
func (w *WAL) TruncateBefore(seq uint64) error {
	files, err := filepath.Glob(filepath.Join(w.dir, "segment-*.wal"))
	if err != nil {
		return err
	}

	for _, path := range files {
		if w.current != nil && path == w.current.file.Name() {
			continue
		}
		maxSeq, err := maxSeqInSegment(path)
		if err != nil {
			continue
		}
		if maxSeq <= seq {
			_ = os.Remove(path)
		}
	}
	return nil
}

func (w *WAL) Close() error {
	return w.current.close()
}
