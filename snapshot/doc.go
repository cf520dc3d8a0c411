// Package snapshot provides consistent read access to the book: an
// epoch-scoped Reader that keeps retired orders from being recycled
// while an enumeration is in flight, and a Depth builder that folds a
// snapshot into per-symbol ladder summaries for publication.
package snapshot
