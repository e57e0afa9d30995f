package releasegate

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/stellar/go/strkey"
	"github.com/yieldswap/releasegate/errors"
)

// AddressLength is the length of all addresses. An address is the raw
// ed25519 public key of the account that controls it.
const AddressLength = 32

// Address represents an account identity. Two addresses are the same
// identity iff their bytes are equal.
//
// The text representation is the account strkey ("G..." prefixed,
// base32 with a checksum). Hex input is accepted as well.
type Address []byte

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Validate returns an error if the address is not the valid size
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInvalidInput, "address length %d", len(a))
	}
	return nil
}

// String returns a human readable string.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	if len(a) != AddressLength {
		return strings.ToUpper(hex.EncodeToString(a))
	}
	s, err := strkey.Encode(strkey.VersionByteAccountID, a)
	if err != nil {
		return strings.ToUpper(hex.EncodeToString(a))
	}
	return s
}

// MarshalJSON provides the strkey representation for JSON,
// to override the standard base64 []byte encoding
func (a Address) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return []byte(`""`), nil
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON parses JSON in strkey or hex representation,
// to override the standard base64 []byte encoding
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "address must be a string")
	}
	if s == "" {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress accepts an account strkey or a hex encoded public key.
func ParseAddress(s string) (Address, error) {
	if strings.HasPrefix(s, "G") && len(s) == 56 {
		raw, err := strkey.Decode(strkey.VersionByteAccountID, s)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "strkey: %s", err)
		}
		return Address(raw), nil
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "address is neither strkey nor hex")
	}
	addr := Address(raw)
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// MustParseAddress is like ParseAddress, but panics instead of returning
// errors. Only use when you control the input (tests, constants).
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}
