/*
Package admin holds the administrator of a release gate instance.

The administrator is set once. The first Initialize call stores it and
every later call is silently ignored. Setup operations of the multisig and
timebound extensions require the caller to be authorized by the
administrator address (see Controller.RequireAdmin).

The package also serves the instance introspection data (ContractData).
*/
package admin
