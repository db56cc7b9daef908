package expr

import (
	"encoding/binary"
	"io"

	"github.com/dchest/siphash"
)

// fingerprintKey0/fingerprintKey1 are fixed siphash keys. The
// fingerprint is used as an in-process cache key, not a security
// boundary, so a fixed key (rather than one generated per process) is
// what makes two runs of the same process agree on a fingerprint.
const (
	fingerprintKey0 = 0x67656e6170686572
	fingerprintKey1 = 0x656d7072696e7467
)

// Fingerprint computes a stable hash of root's Kind/Op/value per node,
// walked in the same pre-order Traverse itself uses elsewhere in this
// package, so it is safe to use as an exact-tree cache key: unlike
// qlbridge's fingerprintDialect (which normalizes every literal to "?"
// so that "x = 1" and "x = 2" hash identically, for SQL query-plan
// reuse across bind values), this fingerprint hashes the literal's own
// text too, since expr.Fingerprint backs exec.Cache's exact re-parse
// cache rather than shape-only dedup.
//
// root may be nil (the empty-input parse result), which fingerprints
// to a fixed sentinel. The walk goes through Traverse rather than a
// hand-rolled recursive descent, since Children is the one part of the
// tree that can be arbitrarily deep and must never grow the Go stack.
func Fingerprint(root *Node) uint64 {
	h := siphash.New(fingerprintSeed())
	if root == nil {
		h.Write([]byte{0})
		return h.Sum64()
	}
	_ = Traverse(root, func(n, _ *Node, _ int) error {
		writeFingerprintNode(h, n)
		return nil
	}, TraverseOptions{})
	return h.Sum64()
}

func fingerprintSeed() []byte {
	b := make([]byte, 16)
	binary.LittleEndian.PutUint64(b[:8], fingerprintKey0)
	binary.LittleEndian.PutUint64(b[8:], fingerprintKey1)
	return b
}

// writeFingerprintNode hashes everything about n except its Children:
// Traverse's own descent handles those. Signature/Vars/Types/ReturnType
// are never visited by Traverse (they sit outside Children), but they
// are always leaves bounded by an arrow function's parameter count
// rather than by tree depth, so hashing them here with
// writeFingerprintLeaf can't recurse unboundedly either.
func writeFingerprintNode(h io.Writer, n *Node) {
	h.Write([]byte{1, byte(n.Kind)})
	switch n.Kind {
	case KindNumber:
		h.Write([]byte(n.Value))
	case KindString:
		h.Write([]byte{byte(n.Quote)})
		h.Write([]byte(n.Contents))
	case KindVariable, KindTypenameToken:
		h.Write([]byte(n.Name))
	case KindFunctionToken:
		h.Write([]byte(n.Name))
	case KindOperator, KindOperatorToken:
		h.Write([]byte(n.Op))
	case KindFunction:
		h.Write([]byte(n.Name))
	case KindGroup:
		h.Write([]byte{n.ParenType})
	case KindPropertyAccessToken:
		h.Write([]byte(n.Prop))
	}
	writeFingerprintLeaf(h, n.Signature)
	for _, v := range n.Vars {
		writeFingerprintLeaf(h, v)
	}
	for _, t := range n.Types {
		writeFingerprintLeaf(h, t)
	}
	writeFingerprintLeaf(h, n.ReturnType)
	h.Write([]byte{2, byte(len(n.Children))})
}

// writeFingerprintLeaf hashes a Signature/Vars/Types/ReturnType node.
// An arrow_signature's own Vars/Types/ReturnType are always variable or
// typename leaves, so one level of recursion here is all this ever
// needs.
func writeFingerprintLeaf(h io.Writer, n *Node) {
	if n == nil {
		h.Write([]byte{0})
		return
	}
	h.Write([]byte{1, byte(n.Kind)})
	switch n.Kind {
	case KindVariable, KindTypenameToken:
		h.Write([]byte(n.Name))
	case KindArrowSignature:
		for _, v := range n.Vars {
			writeFingerprintLeaf(h, v)
		}
		for _, t := range n.Types {
			writeFingerprintLeaf(h, t)
		}
		writeFingerprintLeaf(h, n.ReturnType)
	}
}
