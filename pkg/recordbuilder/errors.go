package recordbuilder

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/buildkit/pkg/builder"
)

// The taxonomy is shared with package builder so callers can branch on either.
var (
	ErrInvalidArgument    = builder.ErrInvalidArgument
	ErrMissingConstructor = builder.ErrMissingConstructor

	ErrUnknownField = errors.New("recordbuilder: unknown field")
	ErrTypeMismatch = fmt.Errorf("%w: value type does not match parameter", ErrInvalidArgument)
)
