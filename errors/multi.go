package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored. If no
// error is left, nil is returned. A single error is returned unchanged.
//
// Nested multi errors are flattened, so the result is always one level deep.
func Append(errs ...error) error {
	var res multiErr
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		if m, ok := err.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, err)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

type unpacker interface {
	Unpack() []error
}

// multiErr is a list of errors returned together. The first error
// determines the ABCI code.
type multiErr []error

var _ unpacker = multiErr(nil)

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, err := range m {
		msgs[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(m), strings.Join(msgs, "\n\t"))
}

// Unpack returns all clubbed errors.
func (m multiErr) Unpack() []error {
	return m
}

// ABCICode returns the code of the first error.
func (m multiErr) ABCICode() uint32 {
	if len(m) == 0 {
		return SuccessABCICode
	}
	return abciCode(m[0])
}
