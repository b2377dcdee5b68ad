package exitcode

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/crmvibe/crmdash/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication or authorization failure
	AuthError = 3

	// NetworkError indicates a network connectivity issue
	NetworkError = 4

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var dashErr *errors.DashError
	if stderrors.As(err, &dashErr) {
		switch dashErr.Code {
		case errors.ErrCodeAuthExchangeFailed,
			errors.ErrCodeAuthUnauthorized,
			errors.ErrCodeAuthNotLoggedIn,
			errors.ErrCodeAuthForbidden:
			return AuthError
		case errors.ErrCodeAPIRequestFailed,
			errors.ErrCodeAPIStatus:
			return NetworkError
		}
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "unauthorized") || strings.Contains(errMsg, "not logged in") {
		return AuthError
	}
	if strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "timeout") {
		return NetworkError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}

	return GeneralError
}

// Description returns a human-readable description of an exit code
func Description(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
