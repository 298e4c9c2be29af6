package hashmap

/*

# Patricia-trie dictionary codec over cells

This package converts between an in-memory map with fixed-bit-width keys and
the prefix-compressed binary tree representation used by the cell data model
(TL-B HashmapE). The serialized form is part of signed and hashed structures,
so encoding is fully deterministic: for a given map there is exactly one
valid cell tree.

## Wire grammar

	hashmap_e_empty$0 {n:#} {X:Type} = HashmapE n X;
	hashmap_e_root$1 {n:#} {X:Type} root:^(Hashmap n X) = HashmapE n X;

	hm_edge#_ {n:#} {X:Type} {l:#} {m:#} label:(HmLabel ~l n)
	          {n = (~m) + l} node:(HashmapNode m X) = Hashmap n X;

	hmn_leaf#_ {X:Type} value:X = HashmapNode 0 X;
	hmn_fork#_ {n:#} {X:Type} left:^(Hashmap n X)
	           right:^(Hashmap n X) = HashmapNode (n + 1) X;

	hml_short$0 {m:#} {n:#} len:(Unary ~n) {n <= m} s:(n * Bit) = HmLabel ~n m;
	hml_long$10 {m:#} n:(#<= m) s:(n * Bit) = HmLabel ~n m;
	hml_same$11 {m:#} v:Bit n:(#<= m) = HmLabel ~n m;

## Label scheme selection

Of the three label schemes the encoder picks the one with the fewest total
bits; ties go to the scheme whose header is lexicographically smaller
(short < long < same). This collapses to:

 1. same, when the label repeats a single bit, is longer than one bit, and
    ceil(log2(maxLen+1)) < 2*len-1
 2. otherwise long, when ceil(log2(maxLen+1)) < len
 3. otherwise short

## Pruned subtrees

A fork reference may be an exotic pruned-branch cell, standing in for a
subtree elided from a merkle proof. The parser skips such references and
returns the reachable keys; callers who need to observe or forbid pruning
use WithPrunedHook / WithStrictPruned. Prune produces such partial
dictionaries, preserving the root cell hash.

*/
