/*
Package multisig implements a quorum based release authorization.

The administrator configures an ordered list of signers and the number of
signatures required. Each listed signer may then sign once; signing again
has no further effect. A sign operation reports whether the count of
signers that have signed reaches the threshold. The answer is the current
tally, so it keeps reporting true once quorum was reached.

A new setup replaces the previous configuration and resets every signer to
unsigned. The threshold is not validated against the number of signers. A
configuration that can never reach quorum is stored and reported as such.
*/
package multisig
