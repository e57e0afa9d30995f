/*
Package errors implements the error kinds returned by the release gate.

Reuse as many errors from this package as possible and define custom package
errors only when a failure is specific to one extension. x/multisig and
x/conditional declare their own errors.

To declare a custom error use Register(code, description). To create an error
instance use ErrXyz.New and ErrXyz.Newf, or Wrap an existing error.
Code stands for the ABCI error code, which allows a client to distinguish
types of errors and act accordingly. ABCIError maps a code received from a
node back to the registered kind, so that ErrXyz.Is works on the client side
as well.

A stack trace is attached at the lowest Wrap call. Do not declare errors as
`var ErrFoo = errors.ErrHuman.New("foo")` as the recorded stack trace would
point to the package initialization.

Several errors can be returned at once using Append. Field allows to label an
error with the name of the attribute that failed validation.
*/
package errors
