// Package cellstore persists cells addressed by their representation hash.
//
// A Store holds whole cell trees: Put stores the root and everything it
// references (DirStore writes them as one bag of cells), Get returns the
// root. The
// hash is both the lookup key and the integrity check; a stored tree that
// no longer reproduces the requested hash is surfaced as corruption rather
// than returned.
//
// Two implementations are provided: MemStore for tests and ephemeral use,
// and DirStore, which lays each root out as a single bag-of-cells file in
// a flat directory, named by the hex of the root hash.
package cellstore
