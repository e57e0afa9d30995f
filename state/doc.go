/*
Package state defines how the release gate extensions address the keyed
store.

The storage keyspace is closed: five keys exist (Key) and every key is bound
to exactly one model type through a Slot. Binding a key twice to different
types panics at program start, so a mismatch can never reach a running
node.

A value is always read and written whole. It is serialized with go-amino
and prefixed with a one byte schema version.
*/
package state
