// Package memory provides the allocation side of the engine: a typed
// object pool for order records, a ring buffer of retired orders and
// epoch-based reclamation. Retired orders are parked in the ring and
// only returned to the pool once no snapshot reader could still hold a
// reference from before the retirement.
package memory
