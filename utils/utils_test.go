package utils

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Circuit Breaker Tests

func TestCircuitBreaker_NewCircuitBreaker(t *testing.T) {
	cb := NewCircuitBreaker("test")

	assert.Equal(t, "test", cb.Name())
	assert.Equal(t, uint32(100), cb.minRequests)
	assert.Equal(t, 60*time.Second, cb.interval)
	assert.Equal(t, 60*time.Second, cb.timeout)
	assert.Equal(t, 0.6, cb.failureRatio)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_ExecuteSuccess(t *testing.T) {
	cb := NewCircuitBreaker("test")

	result, err := cb.Execute(func() (any, error) {
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.counts.Requests)
	assert.Equal(t, uint32(1), cb.counts.TotalSuccesses)
	assert.Equal(t, uint32(0), cb.counts.TotalFailures)
}

func TestCircuitBreaker_ExecuteFailure(t *testing.T) {
	cb := NewCircuitBreaker("test")

	expectedError := errors.New("test error")
	result, err := cb.Execute(func() (any, error) {
		return nil, expectedError
	})

	assert.Equal(t, expectedError, err)
	assert.Nil(t, result)
	assert.Equal(t, uint32(1), cb.counts.Requests)
	assert.Equal(t, uint32(1), cb.counts.TotalFailures)
}

func TestCircuitBreaker_StateTransition_ClosedToOpen(t *testing.T) {
	cb := NewCircuitBreaker("test", WithMinRequests(5), WithFailureRatio(0.6))

	for i := 0; i < 2; i++ {
		_, err := cb.Execute(func() (any, error) { return "success", nil })
		require.NoError(t, err)
	}
	for i := 0; i < 3; i++ {
		_, err := cb.Execute(func() (any, error) { return nil, errors.New("failure") })
		require.EqualError(t, err, "failure")
	}

	assert.Equal(t, StateOpen, cb.State())

	_, err := cb.Execute(func() (any, error) {
		t.Fatal("This should not be executed when circuit is open")
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
}

func TestCircuitBreaker_OpenToHalfOpenToClosed(t *testing.T) {
	cb := NewCircuitBreaker("test", WithMinRequests(2), WithFailureRatio(0.5), WithOpenTimeout(50*time.Millisecond))

	for i := 0; i < 2; i++ {
		cb.Execute(func() (any, error) { return nil, errors.New("failure") })
	}
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, cb.State())

	_, err := cb.Execute(func() (any, error) { return "recovery", nil })
	assert.NoError(t, err)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker("test", WithMinRequests(2), WithFailureRatio(0.5), WithOpenTimeout(50*time.Millisecond))

	for i := 0; i < 2; i++ {
		cb.Execute(func() (any, error) { return nil, errors.New("failure") })
	}
	time.Sleep(80 * time.Millisecond)
	require.Equal(t, StateHalfOpen, cb.State())

	_, err := cb.Execute(func() (any, error) { return nil, errors.New("still failing") })
	assert.EqualError(t, err, "still failing")
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_HalfOpenAllowsSingleTrial(t *testing.T) {
	cb := NewCircuitBreaker("test", WithMinRequests(1), WithFailureRatio(0.5), WithOpenTimeout(30*time.Millisecond))

	cb.Execute(func() (any, error) { return nil, errors.New("failure") })
	time.Sleep(50 * time.Millisecond)

	var innerErr error
	_, err := cb.Execute(func() (any, error) {
		_, innerErr = cb.Execute(func() (any, error) { return "second trial", nil })
		return "first trial", nil
	})

	assert.NoError(t, err)
	assert.ErrorIs(t, innerErr, ErrTooManyRequests)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_IntervalResetsCounts(t *testing.T) {
	cb := NewCircuitBreaker("test", WithMinRequests(3), WithInterval(40*time.Millisecond))

	for i := 0; i < 2; i++ {
		cb.Execute(func() (any, error) { return nil, errors.New("failure") })
	}
	time.Sleep(60 * time.Millisecond)

	cb.Execute(func() (any, error) { return nil, errors.New("failure") })

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.counts.Requests)
}

func TestCircuitBreaker_PanicRecovery(t *testing.T) {
	cb := NewCircuitBreaker("panic-test")

	assert.Panics(t, func() {
		cb.Execute(func() (any, error) {
			panic("test panic")
		})
	})
	assert.Equal(t, uint32(1), cb.counts.TotalFailures)

	result, err := cb.Execute(func() (any, error) {
		return "recovery", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "recovery", result)
}

func TestCircuitBreaker_ReadyToTrip(t *testing.T) {
	tests := []struct {
		name           string
		requests       uint32
		failures       uint32
		minRequests    uint32
		failureRatio   float64
		expectedResult bool
	}{
		{"Not enough requests", 5, 5, 10, 0.5, false},
		{"High failure ratio", 10, 8, 10, 0.6, true},
		{"Low failure ratio", 10, 3, 10, 0.6, false},
		{"Exact failure ratio threshold", 10, 6, 10, 0.6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := NewCircuitBreaker("trip-test", WithMinRequests(tt.minRequests), WithFailureRatio(tt.failureRatio))
			cb.counts.Requests = tt.requests
			cb.counts.TotalFailures = tt.failures

			assert.Equal(t, tt.expectedResult, cb.readyToTrip())
		})
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "open", StateOpen.String())
}

// Redis Client Tests

func TestRedisHealthCheck_Success(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.ExpectPing().SetVal("PONG")

	err := RedisHealthCheck(context.Background(), db)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisHealthCheck_Failure(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.ExpectPing().SetErr(errors.New("connection failed"))

	err := RedisHealthCheck(context.Background(), db)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis health check failed")
	assert.Contains(t, err.Error(), "connection failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Random code Tests

func TestGenerateBookingID_Format(t *testing.T) {
	now := time.UnixMilli(1769558400123)

	id, err := GenerateBookingID(now)

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^BK1769558400123[A-Z0-9]{5}$`), id)
}

func TestGenerateTicketCode_Format(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateTicketCode()
		require.NoError(t, err)
		assert.Regexp(t, `^QR-[0-9A-F]{8}$`, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestRandomAlphanumeric(t *testing.T) {
	code, err := RandomAlphanumeric(32)

	require.NoError(t, err)
	assert.Len(t, code, 32)
	assert.Regexp(t, `^[A-Z0-9]+$`, code)
}

// Benchmark Tests

func BenchmarkCircuitBreaker_Execute_Success(b *testing.B) {
	cb := NewCircuitBreaker("benchmark")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cb.Execute(func() (any, error) {
			return "success", nil
		})
	}
}

func BenchmarkGenerateBookingID(b *testing.B) {
	now := time.Now()
	for i := 0; i < b.N; i++ {
		GenerateBookingID(now)
	}
}
