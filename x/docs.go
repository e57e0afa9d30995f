/*
Package x contains the authentication helpers shared by all extensions.

Sub-packages implement the release policies (multisig, timebound,
conditional, escrow), the administrator registry (admin), signature
verification (sigs) and generic middleware (utils). Each extension
registers its routes and queries on the application router.
*/
package x
