package checkpoint

import (
	"crypto"
	"crypto/rand"

	"github.com/fxamacker/cbor/v2"
	"github.com/veraison/go-cose"
)

// headerLabelIssuer carries the issuer string in the protected header.
// Private-use label, negative per RFC 9052 section 1.4 conventions for
// application-specific headers.
const headerLabelIssuer = int64(-65537)

// RootSigner signs RootState payloads. The signature commits to a root
// state; callers must check the new state is consistent with the last
// published one before publishing a checkpoint.
type RootSigner struct {
	issuer string
	enc    cbor.EncMode
}

// NewRootSigner returns a signer issuing checkpoints under issuer.
func NewRootSigner(issuer string) (RootSigner, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return RootSigner{}, err
	}
	return RootSigner{issuer: issuer, enc: enc}, nil
}

// Sign1 produces the CBOR-encoded COSE_Sign1 message over state. external
// is the optional externally supplied associated data and may be nil.
func (rs RootSigner) Sign1(coseSigner cose.Signer, state RootState, external []byte) ([]byte, error) {
	if len(state.Root) == 0 {
		return nil, ErrNoRoot
	}
	payload, err := rs.enc.Marshal(state)
	if err != nil {
		return nil, err
	}

	msg := cose.Sign1Message{
		Headers: cose.Headers{
			Protected: cose.ProtectedHeader{
				cose.HeaderLabelAlgorithm: coseSigner.Algorithm(),
				headerLabelIssuer:         rs.issuer,
			},
		},
		Payload: payload,
	}
	if err = msg.Sign(rand.Reader, external, coseSigner); err != nil {
		return nil, err
	}
	return msg.MarshalCBOR()
}

// VerifySignedRoot checks a CBOR-encoded COSE_Sign1 checkpoint with the
// given algorithm and public key and returns the decoded state.
func VerifySignedRoot(data []byte, alg cose.Algorithm, publicKey crypto.PublicKey, external []byte) (RootState, error) {
	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(data); err != nil {
		return RootState{}, err
	}
	verifier, err := cose.NewVerifier(alg, publicKey)
	if err != nil {
		return RootState{}, err
	}
	if err = msg.Verify(external, verifier); err != nil {
		return RootState{}, ErrVerifyFailed
	}
	if len(msg.Payload) == 0 {
		return RootState{}, ErrPayloadAbsent
	}
	var state RootState
	if err = cbor.Unmarshal(msg.Payload, &state); err != nil {
		return RootState{}, err
	}
	if len(state.Root) == 0 {
		return RootState{}, ErrNoRoot
	}
	return state, nil
}
