// Package releasetest provides helpers for testing the release gate
// extensions: mock authenticators, keys, contexts and stores.
package releasetest
