/*
Package escrow implements a time delayed release.

> An escrow is a financial arrangement where a third party holds and regulates
> payment of the funds required for two parties involved in a given transaction.

The sender creates an escrow record with a receiver, an amount and a release
time. Once the ledger time reaches the release time anybody can release it.
Releasing only flips the released flag of the record, moving the value is
left to whoever observes that flag. A released escrow stays released and
releasing it again reports true without any write.

A new escrow replaces the previous record.
*/
package escrow
