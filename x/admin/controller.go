package admin

import (
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
	"github.com/yieldswap/releasegate/x"
)

// Controller implements the admin registry operations.
type Controller struct {
	auth   x.Authenticator
	bucket Bucket
}

// NewController returns a controller that uses auth to decide if a call
// is made by the administrator.
func NewController(auth x.Authenticator) Controller {
	return Controller{auth: auth, bucket: NewBucket()}
}

// Initialize stores given address as the administrator unless one is
// already set. A second call is a no-op and not an error. The returned flag
// tells if this call stored the administrator.
//
// No authorization is required.
func (c Controller) Initialize(ctx releasegate.Context, db releasegate.KVStore, admin releasegate.Address) (bool, error) {
	if err := admin.Validate(); err != nil {
		return false, errors.Wrap(err, "admin")
	}
	ok, err := c.bucket.Has(db)
	if err != nil {
		return false, err
	}
	if ok {
		releasegate.GetLogger(ctx).Debug("admin already initialized", "module", "admin")
		return false, nil
	}
	if err := c.bucket.Save(db, &Admin{Address: admin}); err != nil {
		return false, errors.Wrap(err, "cannot store admin")
	}
	releasegate.GetLogger(ctx).Info("admin initialized", "module", "admin", "admin", admin)
	return true, nil
}

// Admin returns the administrator address or ErrUninitialized.
func (c Controller) Admin(db releasegate.ReadOnlyKVStore) (releasegate.Address, error) {
	a, err := c.bucket.Get(db)
	if err != nil {
		return nil, err
	}
	return a.Address, nil
}

// RequireAdmin returns an error unless the current call is authorized by
// the administrator.
func (c Controller) RequireAdmin(ctx releasegate.Context, db releasegate.ReadOnlyKVStore) error {
	admin, err := c.Admin(db)
	if err != nil {
		return errors.Wrap(err, "admin")
	}
	if !c.auth.HasAddress(ctx, admin) {
		return errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}
	return nil
}

// ContractData returns the instance introspection data. The admin address
// is present only once initialized.
func ContractData(db releasegate.ReadOnlyKVStore) (map[string]string, error) {
	data := make(map[string]string)
	a, err := NewBucket().Get(db)
	switch {
	case err == nil:
		data["admin"] = a.Address.String()
	case errors.ErrUninitialized.Is(err):
	default:
		return nil, err
	}
	return data, nil
}
