package utils

import "github.com/yieldswap/releasegate"

//--------------- expose helpers -----

// TestHelpers returns helper objects for tests,
// encapsulated in one object to be easily imported in other packages
type TestHelpers struct{}

// CountingDecorator passes tx along, and counts how many times it was called.
// Adds one on input down, one on output up,
// to differentiate panic from error
func (TestHelpers) CountingDecorator() CountingDecorator {
	return &countingDecorator{}
}

// CountingHandler returns success and counts times called
func (TestHelpers) CountingHandler() CountingHandler {
	return &countingHandler{}
}

// ErrorHandler always returns the given error when called
func (TestHelpers) ErrorHandler(err error) releasegate.Handler {
	return errorHandler{err}
}

// PanicHandler always panics with the given error when called
func (TestHelpers) PanicHandler(err error) releasegate.Handler {
	return panicHandler{err}
}

// WriteHandler will write the given key/value pair to the KVStore,
// and return the error (use nil for success)
func (TestHelpers) WriteHandler(key, value []byte, err error) releasegate.Handler {
	return writeHandler{key: key, value: value, err: err}
}

// WriteDecorator will write the given key/value pair to the KVStore,
// either before or after calling down the stack.
// Returns (res, err) from child handler untouched
func (TestHelpers) WriteDecorator(key, value []byte, after bool) releasegate.Decorator {
	return writeDecorator{key: key, value: value, after: after}
}

// CountingDecorator keeps track of number of times called.
// 2x per call, 1x per call with panic inside
type CountingDecorator interface {
	GetCount() int
	releasegate.Decorator
}

// CountingHandler keeps track of number of times called.
// 1x per call
type CountingHandler interface {
	GetCount() int
	releasegate.Handler
}

//-------------- counting -------------------------

type countingDecorator struct {
	called int
}

var _ releasegate.Decorator = (*countingDecorator)(nil)

func (c *countingDecorator) Check(ctx releasegate.Context, store releasegate.KVStore,
	tx releasegate.Tx, next releasegate.Checker) (*releasegate.CheckResult, error) {

	c.called++
	res, err := next.Check(ctx, store, tx)
	c.called++
	return res, err
}

func (c *countingDecorator) Deliver(ctx releasegate.Context, store releasegate.KVStore,
	tx releasegate.Tx, next releasegate.Deliverer) (*releasegate.DeliverResult, error) {

	c.called++
	res, err := next.Deliver(ctx, store, tx)
	c.called++
	return res, err
}

func (c *countingDecorator) GetCount() int {
	return c.called
}

type countingHandler struct {
	called int
}

var _ releasegate.Handler = (*countingHandler)(nil)

func (c *countingHandler) Check(ctx releasegate.Context, store releasegate.KVStore,
	tx releasegate.Tx) (*releasegate.CheckResult, error) {

	c.called++
	return &releasegate.CheckResult{}, nil
}

func (c *countingHandler) Deliver(ctx releasegate.Context, store releasegate.KVStore,
	tx releasegate.Tx) (*releasegate.DeliverResult, error) {

	c.called++
	return &releasegate.DeliverResult{}, nil
}

func (c *countingHandler) GetCount() int {
	return c.called
}

//----------- errors ------------

type errorHandler struct {
	err error
}

var _ releasegate.Handler = errorHandler{}

func (e errorHandler) Check(ctx releasegate.Context, store releasegate.KVStore,
	tx releasegate.Tx) (*releasegate.CheckResult, error) {

	return nil, e.err
}

func (e errorHandler) Deliver(ctx releasegate.Context, store releasegate.KVStore,
	tx releasegate.Tx) (*releasegate.DeliverResult, error) {

	return nil, e.err
}

type panicHandler struct {
	err error
}

var _ releasegate.Handler = panicHandler{}

func (p panicHandler) Check(ctx releasegate.Context, store releasegate.KVStore,
	tx releasegate.Tx) (*releasegate.CheckResult, error) {

	panic(p.err)
}

func (p panicHandler) Deliver(ctx releasegate.Context, store releasegate.KVStore,
	tx releasegate.Tx) (*releasegate.DeliverResult, error) {

	panic(p.err)
}

//----------------- writers --------

// writeHandler writes the key, value pair and returns the error (may be nil)
type writeHandler struct {
	key   []byte
	value []byte
	err   error
}

var _ releasegate.Handler = writeHandler{}

func (h writeHandler) Check(ctx releasegate.Context, store releasegate.KVStore,
	tx releasegate.Tx) (*releasegate.CheckResult, error) {

	if err := store.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &releasegate.CheckResult{}, nil
}

func (h writeHandler) Deliver(ctx releasegate.Context, store releasegate.KVStore,
	tx releasegate.Tx) (*releasegate.DeliverResult, error) {

	if err := store.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &releasegate.DeliverResult{}, nil
}

// writeDecorator writes the key, value pair.
// either before or after calling the handlers
type writeDecorator struct {
	key   []byte
	value []byte
	after bool
}

var _ releasegate.Decorator = writeDecorator{}

func (d writeDecorator) Check(ctx releasegate.Context, store releasegate.KVStore,
	tx releasegate.Tx, next releasegate.Checker) (*releasegate.CheckResult, error) {

	if !d.after {
		if err := store.Set(d.key, d.value); err != nil {
			return nil, err
		}
	}
	res, err := next.Check(ctx, store, tx)
	if d.after {
		if err := store.Set(d.key, d.value); err != nil {
			return nil, err
		}
	}
	return res, err
}

func (d writeDecorator) Deliver(ctx releasegate.Context, store releasegate.KVStore,
	tx releasegate.Tx, next releasegate.Deliverer) (*releasegate.DeliverResult, error) {

	if !d.after {
		if err := store.Set(d.key, d.value); err != nil {
			return nil, err
		}
	}
	res, err := next.Deliver(ctx, store, tx)
	if d.after {
		if err := store.Set(d.key, d.value); err != nil {
			return nil, err
		}
	}
	return res, err
}
