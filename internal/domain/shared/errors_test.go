package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError(t *testing.T) {
	err := NewDomainError("TEST_CODE", "something went wrong")

	assert.Equal(t, "TEST_CODE", err.Code)
	assert.Equal(t, "something went wrong", err.Error())
}

func TestDomainError_ErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("saving order: %w", ErrInsufficientStock)

	var domainErr *DomainError
	require.True(t, errors.As(wrapped, &domainErr))
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
}

func TestSentinelCodes(t *testing.T) {
	tests := []struct {
		err  *DomainError
		code string
	}{
		{ErrNotFound, "NOT_FOUND"},
		{ErrAlreadyExists, "ALREADY_EXISTS"},
		{ErrInvalidInput, "INVALID_INPUT"},
		{ErrConcurrencyConflict, "CONCURRENCY_CONFLICT"},
		{ErrUnauthorized, "UNAUTHORIZED"},
		{ErrForbidden, "FORBIDDEN"},
		{ErrInvalidState, "INVALID_STATE"},
		{ErrInsufficientStock, "INSUFFICIENT_STOCK"},
		{ErrOverpayment, "OVERPAYMENT"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestNewPaginated(t *testing.T) {
	tests := []struct {
		total      int64
		pageSize   int
		totalPages int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 25, 4},
	}

	for _, tt := range tests {
		p := NewPaginated([]string{}, tt.total, 1, tt.pageSize)
		assert.Equal(t, tt.totalPages, p.TotalPages, "total=%d pageSize=%d", tt.total, tt.pageSize)
	}
}

func TestDefaultFilter(t *testing.T) {
	f := DefaultFilter()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.PageSize)
	assert.Equal(t, "created_at", f.OrderBy)
	assert.Equal(t, "desc", f.OrderDir)
	assert.NotNil(t, f.Filters)
}
