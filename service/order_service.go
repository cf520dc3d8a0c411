package service

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"matchbook/domain/book"
	"matchbook/infra/memory"
	"matchbook/infra/outbox"
	"matchbook/infra/sequence"
	"matchbook/infra/wal"
	"matchbook/snapshot"
)

// FillEvent is the outbox payload for one executed fill leg.
type FillEvent struct {
	V       int    `json:"v"`
	Type    string `json:"type"`
	Seq     uint64 `json:"seq"`
	OrderID uint32 `json:"oid"`
	Symbol  string `json:"symbol"`
	Qty     int64  `json:"qty"`
	Price   int64  `json:"price"`
}

// OrderService serializes every command, applies it to the book and
// feeds the journal and outbox. Journal and outbox may be nil, in
// which case the engine runs purely in memory.
type OrderService struct {
	mu      sync.Mutex
	book    *book.Book
	pool    *memory.Pool[book.Order]
	ring    *memory.RetireRing
	reader  *snapshot.Reader
	seqGen  *sequence.Sequencer
	fillSeq *sequence.Sequencer
	journal *wal.WAL
	outbox  *outbox.Outbox
	log     *zap.Logger
}

// NewOrderService wires all dependencies. No globals.
func NewOrderService(
	pool *memory.Pool[book.Order],
	ring *memory.RetireRing,
	reader *snapshot.Reader,
	seqGen *sequence.Sequencer,
	journal *wal.WAL,
	box *outbox.Outbox,
	log *zap.Logger,
) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &OrderService{
		pool:    pool,
		ring:    ring,
		reader:  reader,
		seqGen:  seqGen,
		fillSeq: sequence.New(0),
		journal: journal,
		outbox:  box,
		log:     log,
	}
	s.book = book.NewBook(s.retire)
	return s
}

// PlaceOrder submits a new limit order. It returns the fills the
// order generated, in execution order, or the rejection error. Either
// way the command is complete when this returns; nothing is deferred.
func (s *OrderService) PlaceOrder(oid uint32, symbol string, side book.Side, qty int64, price int64) ([]book.Fill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.pool.Get()
	*o = book.Order{
		ID:     oid,
		Symbol: symbol,
		Side:   side,
		Qty:    qty,
		Price:  price,
		SeqID:  s.seqGen.Next(),
		Status: book.Active,
	}

	fills, err := s.book.Place(o)
	if err != nil {
		// Rejected before entering the book; no reader can hold it.
		s.pool.Put(o)
		s.log.Debug("order rejected",
			zap.Uint32("oid", oid),
			zap.Error(err),
		)
		return nil, err
	}

	s.journalPlace(o.SeqID, oid, symbol, side, qty, price)
	s.publishFills(fills)

	if o.Qty == 0 {
		s.retire(o)
	}

	s.log.Debug("order placed",
		zap.Uint32("oid", oid),
		zap.String("symbol", symbol),
		zap.Stringer("side", side),
		zap.Int64("qty", qty),
		zap.Int64("price", price),
		zap.Int("fills", len(fills)),
	)
	return fills, nil
}

// CancelOrder removes a resting order by id.
func (s *OrderService) CancelOrder(oid uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.book.Cancel(oid); err != nil {
		return err
	}

	if s.journal != nil {
		rec := wal.NewRecord(wal.RecordCancel, s.seqGen.Next(), []byte(fmt.Sprintf("%d", oid)))
		if err := s.journal.Append(rec); err != nil {
			s.log.Warn("journal append failed", zap.Error(err))
		}
	}

	s.log.Debug("order cancelled", zap.Uint32("oid", oid))
	return nil
}

// Snapshot returns every resting order in display order.
func (s *OrderService) Snapshot() []book.RestingOrder {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reader.Begin()
	defer s.reader.End()
	return s.book.Snapshot()
}

// AdvanceEpoch performs safe reclamation of retired orders. Intended
// to be called periodically by a background job.
func (s *OrderService) AdvanceEpoch() {
	memory.AdvanceEpochAndReclaim(s.ring, s.pool, s.reader.Epoch())
}

// FillSeq reports the last outbox sequence issued.
func (s *OrderService) FillSeq() uint64 { return s.fillSeq.Current() }

func (s *OrderService) retire(o *book.Order) {
	o.Status = book.Inactive
	if !s.ring.Enqueue(o) {
		panic("service: retire ring full")
	}
}

func (s *OrderService) journalPlace(seq uint64, oid uint32, symbol string, side book.Side, qty, price int64) {
	if s.journal == nil {
		return
	}
	payload := fmt.Sprintf("%d|%s|%d|%d|%d", oid, symbol, side, qty, price)
	if err := s.journal.Append(wal.NewRecord(wal.RecordPlace, seq, []byte(payload))); err != nil {
		s.log.Warn("journal append failed", zap.Error(err))
	}
}

func (s *OrderService) publishFills(fills []book.Fill) {
	if s.outbox == nil {
		return
	}
	for _, f := range fills {
		seq := s.fillSeq.Next()
		ev := FillEvent{
			V:       1,
			Type:    "fill",
			Seq:     seq,
			OrderID: f.OrderID,
			Symbol:  f.Symbol,
			Qty:     f.Qty,
			Price:   f.Price,
		}
		payload, err := json.Marshal(ev)
		if err != nil {
			s.log.Warn("fill encode failed", zap.Error(err))
			continue
		}
		if err := s.outbox.PutNew(seq, payload); err != nil {
			s.log.Warn("outbox write failed", zap.Uint64("seq", seq), zap.Error(err))
		}
	}
}
