package book

// locator records where a live order rests so cancellation never has
// to scan the book.
type locator struct {
	symbol string
	side   Side
	price  int64
	order  *Order
}

// Registry tracks order identifiers. The seen set is permanent: an id
// stays blocked after the order fills or is cancelled. The live map
// only holds currently resting orders.
type Registry struct {
	seen map[uint32]struct{}
	live map[uint32]locator
}

func NewRegistry() *Registry {
	return &Registry{
		seen: make(map[uint32]struct{}),
		live: make(map[uint32]locator),
	}
}

// RegisterIfNew marks id as seen and reports whether it was new.
// A false return means the id was used before and must be rejected.
func (r *Registry) RegisterIfNew(id uint32) bool {
	if _, dup := r.seen[id]; dup {
		return false
	}
	r.seen[id] = struct{}{}
	return true
}

func (r *Registry) TrackLive(id uint32, loc locator) {
	r.live[id] = loc
}

// Untrack removes and returns the live locator for id. Both full fills
// and cancellations come through here; the seen set is untouched.
func (r *Registry) Untrack(id uint32) (locator, bool) {
	loc, ok := r.live[id]
	if ok {
		delete(r.live, id)
	}
	return loc, ok
}

func (r *Registry) LiveCount() int { return len(r.live) }
