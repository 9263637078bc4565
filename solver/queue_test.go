package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueOrder(t *testing.T) {
	activity := []float64{1.0, 5.0, 3.0, 4.0, 2.0}
	q := newQueue(activity)
	require.Equal(t, 5, q.len())
	for _, want := range []int{1, 3, 2, 4, 0} {
		assert.Equal(t, want, q.removeMax())
	}
	assert.True(t, q.empty())
}

func TestQueueBubbleUp(t *testing.T) {
	activity := []float64{1.0, 2.0, 3.0}
	q := newQueue(activity)
	activity[0] = 10.0
	q.bubbleUp(0)
	assert.Equal(t, 0, q.removeMax())
}

func TestQueueReinsert(t *testing.T) {
	activity := []float64{2.0, 1.0}
	q := newQueue(activity)
	v := q.removeMax()
	require.Equal(t, 0, v)
	assert.False(t, q.contains(0))
	q.insert(0)
	assert.True(t, q.contains(0))
	assert.Equal(t, 0, q.removeMax())
}
