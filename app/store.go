package app

import (
	"encoding/json"
	"fmt"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
)

// StoreApp contains a data store and all info needed
// to perform queries and handshakes.
//
// It should be embedded in another struct for CheckTx,
// DeliverTx and initializing state from the genesis.
//
// Errors on ABCI steps that do not take user input (Info, InitChain,
// BeginBlock, EndBlock and Commit) cannot be handled gracefully and are
// turned into panics.
type StoreApp struct {
	logger log.Logger

	// name is what is returned from abci.Info
	name string

	// Database state (committed, check, deliver....)
	store *CommitStore

	// Code to initialize from a genesis file
	initializer releasegate.Initializer

	// How to handle queries
	queryRouter releasegate.QueryRouter

	// chainID is loaded from db in initialization
	// saved once in parseAppState
	chainID string

	// baseContext contains context info that is valid for
	// lifetime of this app (eg. chainID)
	baseContext releasegate.Context

	// blockContext contains context info that is valid for the
	// current block (eg. height, time), reset on BeginBlock
	blockContext releasegate.Context

	debug bool
}

// NewStoreApp initializes this app into a ready state with some defaults
//
// panics if unable to properly load the state from the given store
func NewStoreApp(name string, store releasegate.CommitKVStore,
	queryRouter releasegate.QueryRouter, baseContext releasegate.Context) *StoreApp {
	s := &StoreApp{
		name: name,
		// note: panics if trouble initializing from store
		store:       NewCommitStore(store),
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s = s.WithLogger(log.NewNopLogger())

	// load the chainID from the db
	s.chainID = mustLoadChainID(s.DeliverStore())
	if s.chainID != "" {
		s.baseContext = releasegate.WithChainID(s.baseContext, s.chainID)
	}

	// get the most recent height
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.blockContext = releasegate.WithHeight(s.baseContext, info.Version)
	return s
}

// GetChainID returns the current chainID
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit is used to set the init function we call
func (s *StoreApp) WithInit(init releasegate.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithDebug makes query errors carry the full error information.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// parseAppState is called from InitChain, the first time the chain
// starts, and not on restarts.
func (s *StoreApp) parseAppState(req abci.RequestInitChain) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrHuman, "app state previously loaded for chain: %s", s.chainID)
	}

	appState := make(releasegate.Options)
	if len(req.AppStateBytes) > 0 {
		if err := json.Unmarshal(req.AppStateBytes, &appState); err != nil {
			return errors.Wrap(errors.ErrInvalidInput, err.Error())
		}
	}

	if err := s.storeChainID(req.ChainId); err != nil {
		return err
	}
	if s.initializer == nil {
		return nil
	}

	ctx := releasegate.WithLogInfo(s.blockContext, "call", "init_chain")
	if !req.Time.IsZero() {
		ctx = releasegate.WithBlockTime(ctx, req.Time)
	}
	return s.initializer.FromGenesis(ctx, appState, s.DeliverStore())
}

// store chainID and update context
func (s *StoreApp) storeChainID(chainID string) error {
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = releasegate.WithChainID(s.baseContext, s.chainID)
	height, _ := releasegate.GetHeight(s.blockContext)
	s.blockContext = releasegate.WithHeight(s.baseContext, height)
	return nil
}

// WithLogger sets the logger on the StoreApp and returns it,
// to make it easy to chain in initialization
//
// also sets baseContext logger
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.baseContext = releasegate.WithLogger(s.baseContext, logger)
	s.logger = logger
	return s
}

// Logger returns the application base logger
func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext returns the block context for public use
func (s *StoreApp) BlockContext() releasegate.Context {
	return s.blockContext
}

// DeliverStore returns the current DeliverTx cache for methods
func (s *StoreApp) DeliverStore() releasegate.CacheableKVStore {
	return s.store.DeliverStore()
}

// CheckStore returns the current CheckTx cache for methods
func (s *StoreApp) CheckStore() releasegate.CacheableKVStore {
	return s.store.CheckStore()
}

//----------------------- ABCI ---------------------

// Info implements abci.Application. It returns the height and hash,
// as well as the abci name and version.
//
// The height is the block that holds the transactions, not the apphash itself.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	info, err := s.store.CommitInfo()
	if err != nil {
		// Read comment on type header
		panic(err)
	}

	s.logger.Info("Info synced",
		"height", info.Version,
		"hash", fmt.Sprintf("%X", info.Hash))

	return abci.ResponseInfo{
		Data:             s.name,
		Version:          releasegate.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

// SetOption is not supported.
func (s *StoreApp) SetOption(res abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

/*
Query gets data from the app store.
A query request has the following elements:
* Path - the registered query path, for example "/escrow"
* Data - what to query, interpreted based on Path

Queries are evaluated against the last committed state. Time dependent
answers use the time of the last processed block as "now".

Key and Value of the response hold the single model returned by the
handler. Both are empty if nothing was found.
*/
func (s *StoreApp) Query(reqQuery abci.RequestQuery) abci.ResponseQuery {
	qh := s.queryRouter.Handler(reqQuery.Path)
	if qh == nil {
		err := errors.Wrapf(errors.ErrNotFound, "unexpected query path: %v", reqQuery.Path)
		return s.queryError(err)
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		return s.queryError(err)
	}
	db := s.store.QueryStore()
	ctx, err := s.queryContext(db, info.Version)
	if err != nil {
		return s.queryError(err)
	}

	models, err := qh.Query(ctx, db, reqQuery.Data)
	if err != nil {
		return s.queryError(err)
	}

	res := abci.ResponseQuery{Height: info.Version}
	if len(models) > 0 {
		res.Key = models[0].Key
		res.Value = models[0].Value
	}
	return res
}

// queryContext builds the context a query runs in: the base context
// with the height and the time of the last block.
func (s *StoreApp) queryContext(db releasegate.ReadOnlyKVStore, height int64) (releasegate.Context, error) {
	ctx := releasegate.WithHeight(s.baseContext, height)
	ctx = releasegate.WithLogInfo(ctx, "call", "query")
	blockTime, err := loadBlockTime(db)
	if err != nil {
		return nil, err
	}
	if !blockTime.IsZero() {
		ctx = releasegate.WithBlockTime(ctx, blockTime)
	}
	return ctx, nil
}

func (s *StoreApp) queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, s.debug)
	return abci.ResponseQuery{
		Log:  log,
		Code: code,
	}
}

// Commit implements abci.Application
func (s *StoreApp) Commit() (res abci.ResponseCommit) {
	commitID, err := s.store.Commit()
	if err != nil {
		// Read comment on type header
		panic(err)
	}

	s.logger.Debug("Commit synced",
		"height", commitID.Version,
		"hash", fmt.Sprintf("%X", commitID.Hash),
	)

	return abci.ResponseCommit{Data: commitID.Hash}
}

// InitChain implements ABCI. It stores the chain ID and applies the
// genesis app state.
func (s *StoreApp) InitChain(req abci.RequestInitChain) (res abci.ResponseInitChain) {
	err := s.parseAppState(req)
	if err != nil {
		// Read comment on type header
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock implements ABCI
// Sets up blockContext with the height and the time of the block.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) (res abci.ResponseBeginBlock) {
	ctx := releasegate.WithHeight(s.baseContext, req.Header.Height)
	ctx = releasegate.WithBlockTime(ctx, req.Header.Time)
	s.blockContext = ctx

	if err := saveBlockTime(s.DeliverStore(), req.Header.Time); err != nil {
		// Read comment on type header
		panic(err)
	}
	return
}

// EndBlock - ABCI
// The validator set is managed outside of this application.
func (s *StoreApp) EndBlock(_ abci.RequestEndBlock) (res abci.ResponseEndBlock) {
	return
}
