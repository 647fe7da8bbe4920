package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroFillEmpty(t *testing.T) {
	buckets := ZeroFill(nil)
	require.Len(t, buckets, 12)
	assert.Equal(t, "January", buckets[0].Label)
	assert.Equal(t, "December", buckets[11].Label)
	for _, b := range buckets {
		assert.Zero(t, b.Count)
	}
}

func TestZeroFillSparse(t *testing.T) {
	buckets := ZeroFill(map[int]int{1: 4, 6: 1, 12: 9})
	require.Len(t, buckets, 12)
	assert.Equal(t, MonthBucket{Label: "January", Count: 4}, buckets[0])
	assert.Equal(t, MonthBucket{Label: "June", Count: 1}, buckets[5])
	assert.Equal(t, MonthBucket{Label: "December", Count: 9}, buckets[11])
	assert.Zero(t, buckets[1].Count)
}
