// Package timebound implements a deadline. The administrator sets it and
// anyone can ask whether the ledger time is still before it.
package timebound
