package exitcode

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crmvibe/crmdash/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil error",
			err:  nil,
			want: Success,
		},
		{
			name: "unauthorized dash error",
			err:  errors.NewUnauthorizedError(),
			want: AuthError,
		},
		{
			name: "not logged in dash error",
			err:  errors.NewNotLoggedInError(),
			want: AuthError,
		},
		{
			name: "status dash error",
			err:  errors.NewAPIStatusError(503, ""),
			want: NetworkError,
		},
		{
			name: "wrapped transport error",
			err:  errors.Wrap(errors.ErrCodeAPIRequestFailed, "request failed", stderrors.New("dial tcp")),
			want: NetworkError,
		},
		{
			name: "plain connection error",
			err:  stderrors.New("connection refused"),
			want: NetworkError,
		},
		{
			name: "cobra usage error",
			err:  stderrors.New(`required flag(s) "token" not set`),
			want: UsageError,
		},
		{
			name: "anything else",
			err:  stderrors.New("something broke"),
			want: GeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineExitCode(tt.err))
		})
	}
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "Success", Description(Success))
	assert.Equal(t, "Authentication error", Description(AuthError))
	assert.Equal(t, "Unknown error", Description(99))
}
