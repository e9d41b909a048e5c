package builder

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument    = errors.New("builder: invalid argument")
	ErrMissingConstructor = errors.New("builder: missing constructor")
	ErrNotSupported       = errors.New("builder: not supported")
	ErrOperationCancelled = errors.New("builder: operation cancelled")
	ErrInvalidConfig      = errors.New("builder: invalid config")
)

var (
	ErrNilSeed = fmt.Errorf("%w: seed function is nil", ErrInvalidArgument)
	ErrNoSteps = fmt.Errorf("%w: at least one modification is required", ErrInvalidArgument)
	ErrNilStep = fmt.Errorf("%w: modification is nil", ErrInvalidArgument)
)
