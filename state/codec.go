package state

import (
	"reflect"

	amino "github.com/tendermint/go-amino"
	"github.com/yieldswap/releasegate/errors"
)

// schemaVersion is written as the first byte of every stored value.
const schemaVersion byte = 1

var cdc = amino.NewCodec()

// Marshal serializes a model value. Models implement their
// releasegate.Persistent methods with this function.
func Marshal(o interface{}) ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return bz, nil
}

// Unmarshal deserializes raw bytes into ptr, which must be a non nil
// pointer. Any previous content of ptr is dropped. An empty input is a zero
// value, as this is how a zero value is serialized.
func Unmarshal(raw []byte, ptr interface{}) error {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return errors.Wrapf(errors.ErrHuman, "cannot unmarshal into %T", ptr)
	}
	v.Elem().Set(reflect.Zero(v.Elem().Type()))
	if len(raw) == 0 {
		return nil
	}
	if err := cdc.UnmarshalBinaryBare(raw, ptr); err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return nil
}

func encode(m Model) ([]byte, error) {
	bz, err := m.Marshal()
	if err != nil {
		return nil, err
	}
	return append([]byte{schemaVersion}, bz...), nil
}

func decode(raw []byte, m Model) error {
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrInvalidModel, "missing schema version")
	}
	if raw[0] != schemaVersion {
		return errors.Wrapf(errors.ErrInvalidModel, "unsupported schema version %d", raw[0])
	}
	return m.Unmarshal(raw[1:])
}
