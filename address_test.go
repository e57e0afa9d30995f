package releasegate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yieldswap/releasegate/errors"
)

func TestAddressText(t *testing.T) {
	raw := make([]byte, AddressLength)
	for i := range raw {
		raw[i] = byte(i)
	}
	addr := Address(raw)
	const strkey = "GAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB7JZX"

	assert.Equal(t, strkey, addr.String())
	assert.Equal(t, "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF", Address(make([]byte, 32)).String())

	parsed, err := ParseAddress(strkey)
	require.NoError(t, err)
	assert.True(t, addr.Equals(parsed))

	parsed, err = ParseAddress("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	require.NoError(t, err)
	assert.True(t, addr.Equals(parsed))

	bz, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+strkey+`"`, string(bz))

	var back Address
	require.NoError(t, json.Unmarshal(bz, &back))
	assert.Equal(t, addr, back)
}

func TestAddressValidation(t *testing.T) {
	cases := map[string]struct {
		input   string
		wantErr *errors.Error
	}{
		"broken checksum": {
			input:   "GAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB7JZA",
			wantErr: errors.ErrInvalidInput,
		},
		"short hex": {
			input:   "0102",
			wantErr: errors.ErrInvalidInput,
		},
		"not hex": {
			input:   "not an address",
			wantErr: errors.ErrInvalidInput,
		},
		"empty": {
			input:   "",
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := ParseAddress(tc.input)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
		})
	}

	assert.True(t, errors.ErrEmpty.Is(Address(nil).Validate()))
	assert.True(t, errors.ErrInvalidInput.Is(Address{1, 2, 3}.Validate()))
	assert.Equal(t, "(nil)", Address(nil).String())
}
