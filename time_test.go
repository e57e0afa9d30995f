package releasegate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/yieldswap/releasegate/errors"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw      string
		wantTime UnixTime
		wantErr  *errors.Error
	}{
		"zero time as number": {
			raw:      "0",
			wantTime: 0,
		},
		"zero time as string": {
			raw:      `"1970-01-01T01:00:00+01:00"`,
			wantTime: 0,
		},
		"a time as string": {
			raw:      `"2019-04-04T11:35:40.89181085+02:00"`,
			wantTime: 1554370540,
		},
		"a time as number": {
			raw:      "1554370540",
			wantTime: 1554370540,
		},
		"number beyond int64": {
			raw:      "18446744073709551615",
			wantTime: UnixTime(18446744073709551615),
		},
		"number beyond uint64": {
			raw:     "18446744073709551616",
			wantErr: errors.ErrInvalidInput,
		},
		"negative number": {
			raw:     "-1",
			wantErr: errors.ErrInvalidInput,
		},
		"negative time as string": {
			raw:     `"1950-01-01T01:00:00+01:00"`,
			wantErr: errors.ErrInvalidInput,
		},
		"invalid string": {
			raw:     `"not a time string"`,
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != tc.wantTime {
				t.Fatalf("want %d time, got %d", tc.wantTime, got)
			}
		})
	}
}

func TestUnixTimeAdd(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour + 4*time.Second)

	unow := AsUnixTime(now)
	ufuture := unow.Add(time.Hour + 4*time.Second)

	if future.Unix() != int64(ufuture) {
		t.Fatalf("want %d, got %d", future.Unix(), ufuture)
	}

	if got := UnixTime(10).Add(-time.Minute); got != 0 {
		t.Fatalf("want time clamped to zero, got %d", got)
	}
	if got := UnixTime(100).Add(-time.Minute); got != 40 {
		t.Fatalf("want 40, got %d", got)
	}
}

func TestAsUnixTimeBeforeEpoch(t *testing.T) {
	if got := AsUnixTime(time.Unix(-50, 0)); got != 0 {
		t.Fatalf("want zero, got %d", got)
	}
}
