/*
Package cmt implements a fixed depth binary keccak-256 commitment tree.

A tree is created empty at a chosen depth and never grows or shrinks: a
tree of depth d commits to exactly 2^d leaf positions. Unoccupied
positions hold a 32 byte zero sentinel and an interior node over two
empty subtrees is the hash of two copies of the child sentinel, so the
root of an empty tree is defined for every depth. Leaves are appended
left to right and afterwards modified in place by presenting the leaf
position, the expected current hash and a sibling path that evaluates
to the current root. A path that evaluates to anything else is
rejected, which makes every modification an atomic compare and swap on
the root.
*/
package cmt

import (
	"bytes"

	"github.com/leafmint/leafmint-go/fault"
	"github.com/leafmint/leafmint-go/hash"
	"github.com/leafmint/leafmint-go/types/hex"
)

const (
	MinDepth = 1
	MaxDepth = 30
)

var (
	ErrInvalidDepth      = fault.ValidationError("tree depth out of range")
	ErrInvalidLeafHash   = fault.ValidationError("leaf hash must be 32 bytes")
	ErrIndexOutOfBounds  = fault.ValidationError("leaf index out of bounds")
	ErrCapacityExhausted = fault.QuotaError("tree is at full capacity")
	ErrProofSize         = fault.ProofError("proof size does not match tree depth")
	ErrProofMismatch     = fault.ProofError("proof does not evaluate to the current root")
)

// Proof is the sibling path of one leaf position, bottom up. Together
// with the position it commits to a root: bit l of the position selects
// the side sibling l hashes on at level l.
type Proof struct {
	_        struct{}    `cbor:",toarray"`
	Siblings []hex.Bytes `json:"siblings"`
}

// Tree is a single commitment tree. Interior nodes are kept for the
// occupied prefix of every level, everything to the right of the last
// appended leaf is represented by the per level zero hashes. Not safe
// for concurrent use, see Forest.
type Tree struct {
	depth uint32
	count uint64     // number of appended leaves, removal keeps the position occupied
	nodes [][][]byte // nodes[l] is the occupied prefix of level l, nodes[0] the leaves
	zero  [][]byte   // zero[l] is the hash of an empty subtree of height l
}

func New(depth uint32) (*Tree, error) {
	if depth < MinDepth || depth > MaxDepth {
		return nil, ErrInvalidDepth
	}
	zero := make([][]byte, depth+1)
	zero[0] = hash.Zero32
	for l := uint32(1); l <= depth; l++ {
		zero[l] = hash.Keccak256(zero[l-1], zero[l-1])
	}
	return &Tree{
		depth: depth,
		nodes: make([][][]byte, depth+1),
		zero:  zero,
	}, nil
}

func (t *Tree) Depth() uint32 { return t.depth }

// Capacity returns the fixed number of leaf positions, 2^depth.
func (t *Tree) Capacity() uint64 { return 1 << t.depth }

// Count returns the number of positions appended so far. Removing a
// leaf zeroes its hash but does not free the position.
func (t *Tree) Count() uint64 { return t.count }

func (t *Tree) Root() []byte {
	if t.count == 0 {
		return bytes.Clone(t.zero[t.depth])
	}
	return bytes.Clone(t.nodes[t.depth][0])
}

// Append writes leafHash into the next free position and returns its
// index and the new root.
func (t *Tree) Append(leafHash []byte) (uint64, []byte, error) {
	if len(leafHash) != hash.Size {
		return 0, nil, ErrInvalidLeafHash
	}
	if t.count == t.Capacity() {
		return 0, nil, ErrCapacityExhausted
	}
	index := t.count
	t.count++
	return index, t.update(index, leafHash), nil
}

// Prove returns the sibling path of the leaf at index against the
// current root.
func (t *Tree) Prove(index uint64) (*Proof, error) {
	if index >= t.count {
		return nil, ErrIndexOutOfBounds
	}
	siblings := make([]hex.Bytes, t.depth)
	for l := uint32(0); l < t.depth; l++ {
		siblings[l] = bytes.Clone(t.node(l, (index>>l)^1))
	}
	return &Proof{Siblings: siblings}, nil
}

// VerifyAndReplace checks that proof places oldHash at index under the
// current root and, only if it does, overwrites the position with
// newHash. Returns the new root. A proof captured before a concurrent
// modification of the tree fails with ErrProofMismatch and leaves the
// tree untouched.
func (t *Tree) VerifyAndReplace(index uint64, oldHash, newHash []byte, proof *Proof) ([]byte, error) {
	if len(oldHash) != hash.Size || len(newHash) != hash.Size {
		return nil, ErrInvalidLeafHash
	}
	if index >= t.count {
		return nil, ErrIndexOutOfBounds
	}
	if proof == nil || uint32(len(proof.Siblings)) != t.depth {
		return nil, ErrProofSize
	}
	root, err := proof.Eval(index, oldHash)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(root, t.Root()) {
		return nil, ErrProofMismatch
	}
	return t.update(index, newHash), nil
}

// VerifyAndRemove is VerifyAndReplace with the zero sentinel as the
// replacement, emptying the position without freeing it.
func (t *Tree) VerifyAndRemove(index uint64, oldHash []byte, proof *Proof) ([]byte, error) {
	return t.VerifyAndReplace(index, oldHash, hash.Zero32, proof)
}

// Eval recomputes the root committed to by the proof for leafHash at
// the given leaf position.
func (p *Proof) Eval(index uint64, leafHash []byte) ([]byte, error) {
	if len(leafHash) != hash.Size {
		return nil, ErrInvalidLeafHash
	}
	h := leafHash
	for l, sibling := range p.Siblings {
		if len(sibling) != hash.Size {
			return nil, ErrProofSize
		}
		if index>>l&1 == 0 {
			h = hash.Keccak256(h, sibling)
		} else {
			h = hash.Keccak256(sibling, h)
		}
	}
	return h, nil
}

func (t *Tree) node(level uint32, pos uint64) []byte {
	if row := t.nodes[level]; pos < uint64(len(row)) {
		return row[pos]
	}
	return t.zero[level]
}

func (t *Tree) setNode(level uint32, pos uint64, h []byte) {
	if row := t.nodes[level]; pos < uint64(len(row)) {
		row[pos] = h
		return
	}
	// appends fill every level densely left to right, pos can only be
	// the first free slot of the row
	t.nodes[level] = append(t.nodes[level], h)
}

// update writes leafHash at index and rehashes the path to the root,
// which it returns.
func (t *Tree) update(index uint64, leafHash []byte) []byte {
	t.setNode(0, index, bytes.Clone(leafHash))
	pos := index
	for l := uint32(0); l < t.depth; l++ {
		parent := hash.Keccak256(t.node(l, pos&^1), t.node(l, pos|1))
		pos >>= 1
		t.setNode(l+1, pos, parent)
	}
	return bytes.Clone(t.nodes[t.depth][0])
}
