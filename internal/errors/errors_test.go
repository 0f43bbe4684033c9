package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "with cause",
			err:  NewParsingError("failed to parse correlation table", fmt.Errorf("bad line")),
			want: "[PARSING] failed to parse correlation table: bad line",
		},
		{
			name: "without cause",
			err:  NewNotFoundError("notebook"),
			want: "[NOT_FOUND] notebook not found",
		},
		{
			name: "storage",
			err:  NewStorageError("cannot write metrics.json", fmt.Errorf("disk full")),
			want: "[STORAGE] cannot write metrics.json: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := NewConfigError("bad config", cause)

	require.ErrorIs(t, err, cause)

	var appErr *AppError
	require.True(t, stderrors.As(fmt.Errorf("wrapped: %w", err), &appErr))
	assert.Equal(t, ErrTypeConfig, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewParsingError("no match", nil).
		WithContext("cell_index", 33).
		WithContext("payload", "text/plain")

	assert.Equal(t, 33, err.Context["cell_index"])
	assert.Equal(t, "text/plain", err.Context["payload"])
}
