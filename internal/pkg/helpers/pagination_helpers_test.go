package helpers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emrekoc/schoolforum/internal/pkg/helpers"
)

func TestCalculateOffsetLimit(t *testing.T) {
	offset, size := helpers.CalculateOffsetLimit(1, 10)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 10, size)

	offset, size = helpers.CalculateOffsetLimit(3, 20)
	assert.Equal(t, uint64(40), offset)
	assert.Equal(t, 20, size)

	// Out-of-range inputs fall back to defaults
	offset, size = helpers.CalculateOffsetLimit(0, 0)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, helpers.DefaultPageSize, size)

	_, size = helpers.CalculateOffsetLimit(1, 5000)
	assert.Equal(t, helpers.DefaultPageSize, size)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, helpers.TotalPages(0, 10))
	assert.Equal(t, 1, helpers.TotalPages(1, 10))
	assert.Equal(t, 1, helpers.TotalPages(10, 10))
	assert.Equal(t, 2, helpers.TotalPages(11, 10))
	assert.Equal(t, 5, helpers.TotalPages(41, 10))
}
