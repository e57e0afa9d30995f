/*
Package conditional implements a payment released by a checklist.

The sender sets up a payment with a list of named conditions. Conditions
are fulfilled one by one, by index, and the payment is complete once all
of them are. A payment without conditions is complete from the start.

Fulfilling a condition does not require any signature. The payment does not
move value, so the checklist is public.
*/
package conditional
