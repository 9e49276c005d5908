package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrInvalidConfig,
		ErrNoModelConfig,
		ErrBackendMismatch,
		ErrUnsupportedContentType,
		ErrUnsupportedAction,
		ErrUnsupportedOperator,
		ErrNoWorkflow,
	}

	for i, a := range all {
		assert.NotEmpty(t, a.Error())
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("%w: %q", ErrNoWorkflow, "meetings")

	assert.ErrorIs(t, err, ErrNoWorkflow)
	assert.Equal(t, `no workflow for category: "meetings"`, err.Error())
}
