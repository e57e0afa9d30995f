package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"golang.org/x/crypto/ed25519"
)

// SignCodeV1 is the current way to prefix the bytes we use to build
// a signature
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures checks all the signatures on the tx.
//
// returns list of signer addresses (possibly empty),
// or error if any signature is invalid
func VerifyTxSignatures(db releasegate.KVStore, tx SignedTx, chainID string) ([]releasegate.Address, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()

	signers := make([]releasegate.Address, 0, len(sigs))
	for _, sig := range sigs {
		signer, err := VerifySignature(db, sig, bz, chainID)
		if err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}

	return signers, nil
}

// VerifySignature checks one signature against signbytes,
// check chain and updates the account sequence in the store
func VerifySignature(db releasegate.KVStore, sig *StdSignature, signBytes []byte, chainID string) (releasegate.Address, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	user, err := getOrCreateUser(db, sig.PubKey)
	if err != nil {
		return nil, err
	}

	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !ed25519.Verify(ed25519.PublicKey(sig.PubKey), toSign, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := saveUser(db, user); err != nil {
		return nil, err
	}
	return sig.Address(), nil
}

/*
BuildSignBytes combines all info on the actual tx before signing

We use the following format:

version | len(chainID) | chainID      | nonce             | signBytes
4bytes  | uint8        | ascii string | int64 (bigendian) | serialized transaction

This is then prehashed with sha512 before fed into
the public key signing/verification step
*/
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !releasegate.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "chain id: %v", chainID)
	}

	// encode nonce as 8 byte, big-endian
	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, uint64(seq))

	output := make([]byte, 0, 4+1+len(chainID)+8+len(signBytes))
	output = append(output, SignCodeV1...)
	output = append(output, uint8(len(chainID)))
	output = append(output, []byte(chainID)...)
	output = append(output, nonce...)
	output = append(output, signBytes...)

	// now, we take the sha512 hash of the result,
	// so we have a constant length output to feed into eddsa
	hashed := sha512.Sum512(output)
	return hashed[:], nil
}

// BuildSignBytesTx calculates the sign bytes given a tx
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(signBytes, chainID, seq)
}

// SignTx creates a signature for the given tx
func SignTx(key ed25519.PrivateKey, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInvalidInput, "private key")
	}
	signBytes, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		PubKey:    []byte(key.Public().(ed25519.PublicKey)),
		Signature: ed25519.Sign(key, signBytes),
		Sequence:  seq,
	}, nil
}

// NextSequence returns the sequence the next signature of given address
// must use.
func NextSequence(db releasegate.ReadOnlyKVStore, addr releasegate.Address) (int64, error) {
	u, err := GetUser(db, addr)
	if err != nil || u == nil {
		return 0, err
	}
	return u.Sequence, nil
}
