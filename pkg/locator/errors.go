package locator

import (
	"errors"
	"fmt"
)

// ErrNoNode is returned by directional searches that run out of nodes
// before finding one.
var ErrNoNode = errors.New("no node in search direction")

// OutOfRangeError reports a query position that lies outside the source
// text. Position conversion failures (a line or column that does not
// exist) wrap the conversion error under the same type.
type OutOfRangeError struct {
	Pos int // offending rune offset; -1 when a line/column failed to convert
	Len int // source length in runes

	cause error
}

func (e *OutOfRangeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("position out of range: %v", e.cause)
	}
	return fmt.Sprintf("position %d out of range (source has %d runes)", e.Pos, e.Len)
}

func (e *OutOfRangeError) Unwrap() error {
	return e.cause
}

// DocumentMismatchError reports selection endpoints that fall into
// different documents of a multi-document stream. No single node spans
// two documents, so such a query has no answer.
type DocumentMismatchError struct {
	PosA, PosB int // rune offsets, normalized so PosA <= PosB
	DocA, DocB int // zero-based document indices
}

func (e *DocumentMismatchError) Error() string {
	return fmt.Sprintf("positions %d and %d lie in different documents (#%d and #%d)",
		e.PosA, e.PosB, e.DocA, e.DocB)
}
