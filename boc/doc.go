package boc

/*

# Cell primitives for go-cellmap

This package provides the cell data model used by the dictionary codec: an
immutable, content-addressed record of up to 1023 data bits and up to four
references to child cells.

It follows the same "functional primitives" style as the rest of the module:

- small, composable types
- explicit byte and bit layouts
- fallible operations return errors, index arithmetic panics on misuse

## Core types

- BitString: an immutable MSB-first bit sequence with its own length,
  independent of the backing byte count.
- Builder: a write cursor accumulating bits and refs, finalized into a Cell.
- Cell: the finalized immutable record. Ordinary cells carry data and refs;
  exotic cells (currently pruned branches) stand in for subtrees that have
  been elided from a proof.
- Slice: a read cursor over a Cell's bits and refs.

## Content addressing

Every ordinary cell has a representation hash:

	sha256( d1 || d2 || data(completion tagged) ||
	        depth_be2(ref_0) .. depth_be2(ref_n) ||
	        hash(ref_0) .. hash(ref_n) )

where d1 encodes the ref count and the exotic flag, and d2 encodes the data
bit length. A pruned-branch cell reports the hash and depth of the subtree
it replaces, so eliding a subtree never changes the hash of any ancestor.

## Interchange

The bag-of-cells byte format (magic 0xb5ee9c72) serializes a root cell and
its transitively referenced cells with structural deduplication, and is the
unit of persistence and exchange for everything in this module.

*/
