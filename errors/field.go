package errors

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Field attaches the name of an invalid model or message attribute to err.
// A nil err returns nil, so the result of a Validate call can be passed
// directly. A stack trace is attached unless err already carries one.
//
// Names follow the Go field names of the model, for example Receiver or
// ReleaseTime. Elements of a list are addressed with ElemField, for
// example Signers.2.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: fieldName, desc: description}
}

// AppendField adds a field error for fieldName to errorsOrNil. A nil
// fieldErrOrNil leaves errorsOrNil unchanged.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

// ElemField returns the field name of the element at index of the list
// attribute name, for example ElemField("Conditions", 1) is Conditions.1.
func ElemField(name string, index int) string {
	return name + "." + strconv.Itoa(index)
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc != "" {
		return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
	}
	return fmt.Sprintf("field %q: %s", err.field, err.parent)
}

// Cause implements the causer interface.
func (err *fieldError) Cause() error {
	return err.parent
}

// Field implements the fielder interface.
func (err *fieldError) Field() string {
	return err.field
}

// FieldErrors walks the error tree of err and returns every field error
// created for fieldName. The search does not descend into a matching field
// error, so when the same name wraps itself only the outermost one is
// returned.
func FieldErrors(err error, fieldName string) []error {
	var found []error
	collectFieldErrors(err, fieldName, &found)
	return found
}

func collectFieldErrors(err error, fieldName string, found *[]error) {
	for !isNilErr(err) {
		if f, ok := err.(fielder); ok && f.Field() == fieldName {
			*found = append(*found, err)
			return
		}
		switch e := err.(type) {
		case unpacker:
			// Unpack returns all children, Cause must not be
			// followed as well.
			for _, child := range e.Unpack() {
				collectFieldErrors(child, fieldName, found)
			}
			return
		case causer:
			err = e.Cause()
		default:
			return
		}
	}
}

type fielder interface {
	// Field returns the name of the attribute this error is created for.
	Field() string
}
