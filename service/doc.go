// Package service hosts OrderService, the only write entry point into
// the engine. All coordination between the domain book, memory
// reclamation, the command journal and the fill outbox happens here,
// under a single mutex so commands apply one at a time.
package service
