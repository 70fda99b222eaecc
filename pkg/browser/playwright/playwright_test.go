package playwright

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errs "igcleaner/pkg/errors"
)

func TestWrapClassifiesDriverErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback errs.ErrorType
		expected errs.ErrorType
	}{
		{
			name:     "timeout",
			err:      fmt.Errorf("%w: Timeout 1000ms exceeded", playwright.ErrTimeout),
			fallback: errs.ErrorTypeInteraction,
			expected: errs.ErrorTypeTimeout,
		},
		{
			name:     "target closed",
			err:      fmt.Errorf("%w: page closed", playwright.ErrTargetClosed),
			fallback: errs.ErrorTypeNavigation,
			expected: errs.ErrorTypeClosed,
		},
		{
			name:     "other navigation failure",
			err:      errors.New("net::ERR_NAME_NOT_RESOLVED"),
			fallback: errs.ErrorTypeNavigation,
			expected: errs.ErrorTypeNavigation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrap(tt.fallback, "op", "[aria-label='Unsend']", tt.err)

			var autoErr *errs.Error
			require.ErrorAs(t, err, &autoErr)
			assert.Equal(t, tt.expected, autoErr.Type)
			assert.Equal(t, "[aria-label='Unsend']", autoErr.Selector)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestMillis(t *testing.T) {
	assert.Equal(t, 1500.0, *millis(1500*time.Millisecond))
	assert.Equal(t, 0.0, *millis(0))
}

func TestElementKeepsNilAsNoMatch(t *testing.T) {
	assert.Nil(t, element(nil))
}
