package cli

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/rshade/ghgdash/internal/apiclient"
	"github.com/rshade/ghgdash/internal/config"
	"github.com/rshade/ghgdash/internal/emissions"
)

// Process exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
	ExitAPI   = 3
)

// errUsage marks errors caused by bad flags or arguments.
var errUsage = errors.New("usage error")

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// ExitCodeFor maps an error returned by the root command to an exit code.
func ExitCodeFor(err error) int {
	var urlErr *url.Error
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errUsage),
		errors.Is(err, emissions.ErrInvalidRange),
		errors.Is(err, emissions.ErrInvalidEdit),
		errors.Is(err, emissions.ErrUnknownGas),
		errors.Is(err, config.ErrUnknownKey):
		return ExitUsage
	case errors.Is(err, apiclient.ErrAPIStatus), errors.As(err, &urlErr):
		return ExitAPI
	default:
		return ExitError
	}
}
