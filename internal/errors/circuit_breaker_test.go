package errors

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker("test", CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
	})

	failure := fmt.Errorf("boom")
	for i := 0; i < 2; i++ {
		require.NoError(t, cb.Allow())
		cb.Mark(failure)
		assert.Equal(t, StateClosed, cb.State())
	}

	require.NoError(t, cb.Allow())
	cb.Mark(failure)
	assert.Equal(t, StateOpen, cb.State())

	err := cb.Allow()
	var open *CircuitOpenError
	require.ErrorAs(t, err, &open)
	assert.Equal(t, "test", open.Name)
}

func TestCircuitBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker("test", CircuitBreakerConfig{FailureThreshold: 2})

	cb.Mark(fmt.Errorf("one"))
	cb.Mark(nil)
	cb.Mark(fmt.Errorf("two"))
	assert.Equal(t, StateClosed, cb.State(), "non-consecutive failures stay closed")
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker("test", CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 2,
		Timeout:          time.Millisecond,
	})

	cb.Mark(fmt.Errorf("boom"))
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, cb.Allow(), "timeout elapsed, probe allowed")
	assert.Equal(t, StateHalfOpen, cb.State())

	cb.Mark(nil)
	assert.Equal(t, StateHalfOpen, cb.State())
	cb.Mark(nil)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker("test", CircuitBreakerConfig{
		FailureThreshold: 1,
		Timeout:          time.Millisecond,
	})

	cb.Mark(fmt.Errorf("boom"))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, cb.Allow())
	cb.Mark(fmt.Errorf("still down"))
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreakerStateChangeCallback(t *testing.T) {
	var transitions []string
	cb := NewCircuitBreaker("test", CircuitBreakerConfig{
		FailureThreshold: 1,
		Timeout:          time.Hour,
		OnStateChange: func(from, to CircuitState, name string) {
			transitions = append(transitions, fmt.Sprintf("%s->%s", from, to))
		},
	})

	cb.Mark(fmt.Errorf("boom"))
	assert.Equal(t, []string{"closed->open"}, transitions)
}
