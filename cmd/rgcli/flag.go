package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yieldswap/releasegate"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *releasegate.Address {
	var a addressValue
	if defaultVal != "" {
		if err := a.Set(defaultVal); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return (*releasegate.Address)(&a)
}

type addressValue releasegate.Address

func (a addressValue) String() string {
	if len(a) == 0 {
		return ""
	}
	return releasegate.Address(a).String()
}

func (a *addressValue) Set(raw string) error {
	addr, err := releasegate.ParseAddress(raw)
	if err != nil {
		return err
	}
	*a = addressValue(addr)
	return nil
}

// flAddressList returns a comma separated list of addresses.
func flAddressList(fl *flag.FlagSet, name, usage string) *[]releasegate.Address {
	var l addressList
	fl.Var(&l, name, usage)
	return (*[]releasegate.Address)(&l)
}

type addressList []releasegate.Address

func (l addressList) String() string {
	out := make([]string, len(l))
	for i, a := range l {
		out[i] = a.String()
	}
	return strings.Join(out, ",")
}

func (l *addressList) Set(raw string) error {
	var addrs []releasegate.Address
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		addr, err := releasegate.ParseAddress(s)
		if err != nil {
			return fmt.Errorf("%q: %s", s, err)
		}
		addrs = append(addrs, addr)
	}
	*l = addrs
	return nil
}

// flAmount returns a decimal amount flag.
func flAmount(fl *flag.FlagSet, name, defaultVal, usage string) *releasegate.Amount {
	var a amountValue
	if defaultVal != "" {
		if err := a.Set(defaultVal); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q amount flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return (*releasegate.Amount)(&a)
}

type amountValue releasegate.Amount

func (a amountValue) String() string {
	return releasegate.Amount(a).String()
}

func (a *amountValue) Set(raw string) error {
	v, err := releasegate.ParseAmount(raw)
	if err != nil {
		return err
	}
	*a = amountValue(v)
	return nil
}

// flTime returns a point in time flag. Accepted formats are a unix
// timestamp, RFC3339 and a duration prefixed with "+" that is added to the
// current time.
func flTime(fl *flag.FlagSet, name string, defaultVal func() time.Time, usage string) *releasegate.UnixTime {
	var t unixTimeValue
	if defaultVal != nil {
		t = unixTimeValue(releasegate.AsUnixTime(defaultVal()))
	}
	fl.Var(&t, name, usage)
	return (*releasegate.UnixTime)(&t)
}

type unixTimeValue releasegate.UnixTime

func (t unixTimeValue) String() string {
	if t == 0 {
		return ""
	}
	return releasegate.UnixTime(t).Time().Format(time.RFC3339)
}

func (t *unixTimeValue) Set(raw string) error {
	v, err := parseTime(raw, time.Now())
	if err != nil {
		return err
	}
	*t = unixTimeValue(v)
	return nil
}

func parseTime(raw string, now time.Time) (releasegate.UnixTime, error) {
	if strings.HasPrefix(raw, "+") {
		d, err := time.ParseDuration(raw[1:])
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", err)
		}
		return releasegate.AsUnixTime(now.Add(d)), nil
	}
	var ut releasegate.UnixTime
	if err := ut.UnmarshalJSON([]byte(raw)); err == nil {
		return ut, nil
	}
	if err := ut.UnmarshalJSON([]byte(`"` + raw + `"`)); err == nil {
		return ut, nil
	}
	return 0, fmt.Errorf("invalid time %q, use unix time, RFC3339 or +duration", raw)
}

// flUint32 returns an unsigned integer flag that rejects values not fitting
// into 32 bits.
func flUint32(fl *flag.FlagSet, name string, defaultVal uint32, usage string) *uint32 {
	v := uint32Value(defaultVal)
	fl.Var(&v, name, usage)
	return (*uint32)(&v)
}

type uint32Value uint32

func (v uint32Value) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

func (v *uint32Value) Set(raw string) error {
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return fmt.Errorf("%q is not a 32 bit unsigned integer", raw)
	}
	*v = uint32Value(n)
	return nil
}
