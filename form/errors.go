package form

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// ErrInvalidOption indicates an option name outside the operation's whitelist
	ErrInvalidOption = errors.New("invalid option")
	// ErrMissingRequired indicates a required argument was left empty
	ErrMissingRequired = errors.New("missing required argument")
)

// InvalidOptionError lists the option names that are not accepted by an operation
type InvalidOptionError struct {
	Options []string
}

// Error implements the error interface
func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid option(s): %s", strings.Join(e.Options, ", "))
}

// Is reports whether target is ErrInvalidOption
func (e *InvalidOptionError) Is(target error) bool {
	return target == ErrInvalidOption
}

// MissingRequiredError lists the required arguments that were left empty
type MissingRequiredError struct {
	Fields []string
}

// Error implements the error interface
func (e *MissingRequiredError) Error() string {
	return fmt.Sprintf("missing required argument(s): %s", strings.Join(e.Fields, ", "))
}

// Is reports whether target is ErrMissingRequired
func (e *MissingRequiredError) Is(target error) bool {
	return target == ErrMissingRequired
}
