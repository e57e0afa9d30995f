package releasegate

import (
	"encoding/json"
	"math/big"

	"github.com/yieldswap/releasegate/errors"
)

var (
	maxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minAmount = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	twoTo64   = new(big.Int).Lsh(big.NewInt(1), 64)
)

// Amount is a signed 128 bit integer in two's complement form. Hi holds the
// upper (signed) 64 bits and Lo the lower 64 bits.
//
// The sign and magnitude of an amount are not checked. An amount is recorded
// by the policies but never moved.
type Amount struct {
	Hi int64
	Lo uint64
}

// NewAmount returns the amount representing given integer value.
func NewAmount(v int64) Amount {
	if v < 0 {
		return Amount{Hi: -1, Lo: uint64(v)}
	}
	return Amount{Lo: uint64(v)}
}

// AmountFromBig converts a big integer into an Amount. An error is returned
// if the value does not fit into 128 bits.
func AmountFromBig(v *big.Int) (Amount, error) {
	if v == nil {
		return Amount{}, errors.Wrap(errors.ErrEmpty, "amount")
	}
	if v.Cmp(maxAmount) > 0 || v.Cmp(minAmount) < 0 {
		return Amount{}, errors.Wrapf(errors.ErrOverflow, "%s does not fit into 128 bits", v)
	}
	u := new(big.Int).Set(v)
	if u.Sign() < 0 {
		u.Add(u, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	lo := new(big.Int).And(u, new(big.Int).Sub(twoTo64, big.NewInt(1)))
	hi := new(big.Int).Rsh(u, 64)
	return Amount{Hi: int64(hi.Uint64()), Lo: lo.Uint64()}, nil
}

// ParseAmount reads a decimal representation of an amount.
func ParseAmount(s string) (Amount, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, errors.Wrapf(errors.ErrInvalidAmount, "cannot parse %q", s)
	}
	return AmountFromBig(v)
}

// Big returns the value of this amount as a big integer.
func (a Amount) Big() *big.Int {
	v := new(big.Int).Lsh(big.NewInt(a.Hi), 64)
	return v.Add(v, new(big.Int).SetUint64(a.Lo))
}

// IsNegative returns true if this amount is below zero.
func (a Amount) IsNegative() bool {
	return a.Hi < 0
}

// Equals returns true if both amounts represent the same value.
func (a Amount) Equals(b Amount) bool {
	return a == b
}

// String returns the decimal representation.
func (a Amount) String() string {
	return a.Big().String()
}

// MarshalJSON encodes the amount as a decimal string so that values beyond
// 53 bits survive JSON clients.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both a decimal string and a JSON number.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrap(errors.ErrInvalidAmount, "amount must be a number or a string")
		}
		s = n.String()
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
