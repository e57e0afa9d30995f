package releasegate_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yieldswap/releasegate"
	"github.com/yieldswap/releasegate/errors"
)

func TestDeliverTxErrorRoundTrip(t *testing.T) {
	cases := map[string]struct {
		err      error
		wantCode uint32
		wantKind *errors.Error
	}{
		"registered error": {
			err:      errors.Wrap(errors.ErrUnauthorized, "admin required"),
			wantCode: 2,
			wantKind: errors.ErrUnauthorized,
		},
		"uninitialized": {
			err:      errors.ErrUninitialized,
			wantCode: 17,
			wantKind: errors.ErrUninitialized,
		},
		"stdlib error is internal": {
			err:      fmt.Errorf("disk on fire"),
			wantCode: 1,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			dres := releasegate.DeliverTxError(tc.err, false)
			assert.Equal(t, tc.wantCode, dres.Code)
			assert.True(t, dres.IsErr())

			cres := releasegate.CheckTxError(tc.err, false)
			assert.Equal(t, tc.wantCode, cres.Code)

			_, err := releasegate.ParseDeliverOrError(dres)
			require.Error(t, err)
			if tc.wantKind != nil {
				assert.True(t, tc.wantKind.Is(err), "got %v", err)
			}
		})
	}
}

func TestCreateResults(t *testing.T) {
	d, msg := []byte{1, 3, 4}, "got it"
	dres := releasegate.DeliverResult{Data: d, Log: msg}
	ad := dres.ToABCI()
	assert.EqualValues(t, d, ad.Data)
	assert.Equal(t, msg, ad.Log)
	assert.Empty(t, ad.Tags)

	back, err := releasegate.ParseDeliverOrError(ad)
	require.NoError(t, err)
	assert.Equal(t, d, back.Data)

	c, gas := "aok", int64(12345)
	cres := releasegate.NewCheck(gas, c)
	ac := cres.ToABCI()
	assert.Equal(t, c, ac.Log)
	assert.Equal(t, gas, ac.GasWanted)
	assert.Empty(t, ac.Data)
}

func TestBoolResult(t *testing.T) {
	for _, want := range []bool{true, false} {
		got, err := releasegate.ParseBoolResult(releasegate.BoolResult(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := releasegate.ParseBoolResult([]byte{7})
	assert.True(t, errors.ErrInvalidInput.Is(err))
	_, err = releasegate.ParseBoolResult(nil)
	assert.True(t, errors.ErrInvalidInput.Is(err))
}
