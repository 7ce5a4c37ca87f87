// Copyright 2026 Fabian Jankowski
// SPDX-License-Identifier: MIT

package beams

import (
	"errors"
	"fmt"
)

// Error carries the failure taxonomy of the packing pipeline.
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

// ErrorType classifies pipeline failures.
type ErrorType int

const (
	// ErrorTypeUnknown unclassified failure.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeNotFound the ingestion source does not exist.
	ErrorTypeNotFound
	// ErrorTypeParse a malformed input record.
	ErrorTypeParse
	// ErrorTypeInvalidArgument a non-positive nbeams or bunch value.
	ErrorTypeInvalidArgument
)

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func isType(err error, t ErrorType) bool {
	var berr *Error
	if errors.As(err, &berr) {
		return berr.Type == t
	}

	return false
}

// IsNotFound reports whether the error marks a missing ingestion source.
func IsNotFound(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsParseError reports whether the error marks a malformed input record.
func IsParseError(err error) bool {
	return isType(err, ErrorTypeParse)
}

// IsInvalidArgument reports whether the error marks a bad packing parameter.
func IsInvalidArgument(err error) bool {
	return isType(err, ErrorTypeInvalidArgument)
}
