package app

import (
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
)

// BaseApp adds DeliverTx and CheckTx handlers to the storage and
// query functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder releasegate.TxDecoder
	handler releasegate.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(
	store *StoreApp,
	decoder releasegate.TxDecoder,
	handler releasegate.Handler,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store.WithDebug(debug),
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return releasegate.DeliverTxError(err, b.debug)
	}

	ctx := releasegate.WithLogInfo(b.BlockContext(), "call", "deliver_tx")
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return releasegate.DeliverOrError(res, err, b.debug)
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return releasegate.CheckTxError(err, b.debug)
	}

	ctx := releasegate.WithLogInfo(b.BlockContext(), "call", "check_tx")
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return releasegate.CheckOrError(res, err, b.debug)
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx releasegate.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
