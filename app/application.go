/*
Package app links together all the various components
to construct the release gate ABCI application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/store/iavl"
	"github.com/yieldswap/releasegate/x"
	"github.com/yieldswap/releasegate/x/admin"
	"github.com/yieldswap/releasegate/x/conditional"
	"github.com/yieldswap/releasegate/x/escrow"
	"github.com/yieldswap/releasegate/x/multisig"
	"github.com/yieldswap/releasegate/x/sigs"
	"github.com/yieldswap/releasegate/x/timebound"
	"github.com/yieldswap/releasegate/x/utils"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle recovery, logging,
// metrics and authentication. Metrics can be nil.
func Chain(metrics releasegate.Decorator) Decorators {
	return ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
		metrics,
		utils.NewActionTagger(),
		utils.NewKeyTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, a failed call keeps the consumed sequence
		// but none of the policy writes
		utils.NewSavepoint().OnDeliver(),
	)
}

// Routes returns a router dispatching to every policy handler.
func Routes(authFn x.Authenticator) *Router {
	r := NewRouter()
	admin.RegisterRoutes(r, authFn)
	multisig.RegisterRoutes(r, authFn)
	timebound.RegisterRoutes(r, authFn)
	conditional.RegisterRoutes(r, authFn)
	escrow.RegisterRoutes(r, authFn)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/admin", "/contract", "/multisig", "/timebound",
// "/timebound/valid", "/conditional", "/conditional/complete", "/escrow"
// and "/auth"
func QueryRouter() releasegate.QueryRouter {
	r := releasegate.NewQueryRouter()
	r.RegisterAll(
		admin.RegisterQuery,
		multisig.RegisterQuery,
		timebound.RegisterQuery,
		conditional.RegisterQuery,
		escrow.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Initializers returns everything that reads the genesis app state.
func Initializers() releasegate.Initializer {
	return releasegate.ChainInitializers{
		admin.Initializer{},
		escrow.Initializer{},
	}
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(metrics releasegate.Decorator) releasegate.Handler {
	authFn := Authenticator()
	return Chain(metrics).WithHandler(Routes(authFn))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack(nil). An empty dbPath keeps the state
// in memory.
func Application(name string, h releasegate.Handler,
	tx releasegate.TxDecoder, dbPath string, debug bool) (BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return BaseApp{}, err
	}
	store := NewStoreApp(name, kv, QueryRouter(), ctx).WithInit(Initializers())
	base := NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (releasegate.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
