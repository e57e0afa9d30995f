package state

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
)

// Model is a value that can be persisted in a slot.
type Model interface {
	releasegate.Persistent
	Validate() error
}

var (
	bindingsMu sync.Mutex
	bindings   = make(map[Key]reflect.Type)
)

// Slot binds a storage key to a single model type.
type Slot struct {
	key   Key
	model reflect.Type
}

// NewSlot returns a slot storing values of the same type as model under
// given key. Model must be a pointer to a struct.
//
// NewSlot panics if the key is not declared or if the key was already bound
// to a different type. Call it only during program initialization.
func NewSlot(key Key, model Model) Slot {
	if err := key.Validate(); err != nil {
		panic(err)
	}
	t := reflect.TypeOf(model)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("slot %s: model must be a pointer to a struct, got %T", key, model))
	}

	bindingsMu.Lock()
	defer bindingsMu.Unlock()
	if prev, ok := bindings[key]; ok && prev != t {
		panic(fmt.Sprintf("slot %s already bound to %s, cannot bind to %s", key, prev, t))
	}
	bindings[key] = t
	return Slot{key: key, model: t}
}

// Key returns the key this slot is bound to.
func (s Slot) Key() Key {
	return s.key
}

// Has returns true if a value is stored in this slot.
func (s Slot) Has(db releasegate.ReadOnlyKVStore) (bool, error) {
	ok, err := db.Has(s.key.DBKey())
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// Load reads the stored value into dest. ErrUninitialized is returned if
// the slot was never written.
func (s Slot) Load(db releasegate.ReadOnlyKVStore, dest Model) error {
	if err := s.checkType(dest); err != nil {
		return err
	}
	raw, err := db.Get(s.key.DBKey())
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrUninitialized, "no %s", s.key)
	}
	if err := decode(raw, dest); err != nil {
		return errors.Wrapf(err, "load %s", s.key)
	}
	return nil
}

// Save validates the value and writes it as a whole, replacing whatever
// was stored before.
func (s Slot) Save(db releasegate.KVStore, m Model) error {
	if err := s.checkType(m); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "save %s", s.key)
	}
	raw, err := encode(m)
	if err != nil {
		return errors.Wrapf(err, "save %s", s.key)
	}
	if err := db.Set(s.key.DBKey(), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (s Slot) checkType(m Model) error {
	if t := reflect.TypeOf(m); t != s.model {
		return errors.Wrapf(errors.ErrInvalidType, "slot %s holds %s, got %T", s.key, s.model, m)
	}
	return nil
}
