// Package checkpoint produces and verifies signed commitments to a
// dictionary root. A checkpoint binds the root representation hash to the
// dictionary geometry and a capture time, as a COSE_Sign1 message over a
// deterministically encoded CBOR payload.
package checkpoint

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/forestrie/go-cellmap/boc"
)

var (
	ErrNoRoot        = errors.New("checkpoint: root hash missing from state")
	ErrVerifyFailed  = errors.New("checkpoint: signature verification failed")
	ErrPayloadAbsent = errors.New("checkpoint: signed message carries no payload")
)

// RootState is the signed payload. Integer keys keep the encoding compact
// and stable; the CBOR encoding is deterministic so a state has exactly
// one byte representation.
type RootState struct {
	// KeyBits is the dictionary key width the root was built with.
	KeyBits int `cbor:"1,keyasint"`

	// Count is the number of entries committed to by Root.
	Count uint64 `cbor:"2,keyasint"`

	// Root is the representation hash of the dictionary root cell.
	Root []byte `cbor:"3,keyasint"`

	// Timestamp is the unix time (milliseconds) read by NewRootState when
	// the state was captured. Including it allows the same root to be
	// re-signed.
	Timestamp int64 `cbor:"4,keyasint"`

	// CheckpointID uniquely names this checkpoint across re-signings of
	// the same root.
	CheckpointID string `cbor:"5,keyasint"`
}

// NewRootState captures the current state of a dictionary root cell.
func NewRootState(root *boc.Cell, keyBits int, count uint64) RootState {
	hash := root.Hash()
	return RootState{
		KeyBits:      keyBits,
		Count:        count,
		Root:         hash[:],
		Timestamp:    time.Now().UnixMilli(),
		CheckpointID: uuid.NewString(),
	}
}
