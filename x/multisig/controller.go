package multisig

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/x"
	"github.com/yieldswap/releasegate/x/admin"
)

// Controller implements the multi signature policy.
type Controller struct {
	auth   x.Authenticator
	admin  admin.Controller
	bucket Bucket
}

// NewController returns a controller using auth for both the admin and the
// signer checks.
func NewController(auth x.Authenticator) Controller {
	return Controller{
		auth:   auth,
		admin:  admin.NewController(auth),
		bucket: NewBucket(),
	}
}

// Setup replaces the configuration with given signers, none of which has
// signed yet. Only the administrator can call it.
//
// A threshold greater than the number of signers is accepted. Such a
// configuration can never reach quorum, use Config.Reachable to detect it.
func (c Controller) Setup(ctx releasegate.Context, db releasegate.KVStore, required uint32, signers []releasegate.Address) (*Config, error) {
	if err := c.admin.RequireAdmin(ctx, db); err != nil {
		return nil, err
	}
	conf := &Config{
		RequiredSignatures: required,
		Signers:            signers,
		Signed:             make([]bool, len(signers)),
	}
	if err := c.bucket.Save(db, conf); err != nil {
		return nil, errors.Wrap(err, "cannot store multisig")
	}

	logger := releasegate.GetLogger(ctx).With("module", "multisig")
	if !conf.Reachable() {
		logger.Error("quorum unreachable", "required", required, "signers", len(signers))
	} else {
		logger.Debug("multisig configured", "required", required, "signers", len(signers))
	}
	return conf, nil
}

// Sign marks signer as signed and returns whether quorum is reached. The
// call must be authorized by signer, which must be listed in the
// configuration.
func (c Controller) Sign(ctx releasegate.Context, db releasegate.KVStore, signer releasegate.Address) (bool, error) {
	if !c.auth.HasAddress(ctx, signer) {
		return false, errors.Wrap(errors.ErrUnauthorized, "signer signature required")
	}
	conf, err := c.bucket.Get(db)
	if err != nil {
		return false, errors.Wrap(err, "multisig")
	}
	i := conf.index(signer)
	if i < 0 {
		return false, errors.Wrapf(ErrNotAParticipant, "signer %s", signer)
	}
	conf.Signed[i] = true
	if err := c.bucket.Save(db, conf); err != nil {
		return false, errors.Wrap(err, "cannot store multisig")
	}
	return conf.QuorumReached(), nil
}

// Config returns the current configuration or ErrUninitialized.
func (c Controller) Config(db releasegate.ReadOnlyKVStore) (*Config, error) {
	return c.bucket.Get(db)
}
