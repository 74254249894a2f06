package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveOriginalMarksPending(t *testing.T) {
	c := NewComposition([]int{1, 2})

	c.Remove(1)
	assert.Equal(t, PendingRemoval, c.State(1))
	assert.Equal(t, []int{1, 2}, c.Selected(), "original product stays visible")
	assert.Equal(t, []int{2}, c.Effective())
	assert.Equal(t, []int{1}, c.Pending())
}

func TestRemoveNewDeselectsOutright(t *testing.T) {
	c := NewComposition([]int{1})
	c.Add(9)
	assert.Equal(t, Selected, c.State(9))

	c.Remove(9)
	assert.Equal(t, Available, c.State(9))
	assert.Equal(t, []int{1}, c.Selected())
	assert.Empty(t, c.Pending())
}

func TestRestoreClearsPending(t *testing.T) {
	c := NewComposition([]int{1})
	c.Remove(1)
	assert.Equal(t, PendingRemoval, c.State(1))

	c.Restore(1)
	assert.Equal(t, Selected, c.State(1))
	assert.Equal(t, []int{1}, c.Effective())
	assert.Empty(t, c.Pending())
}

func TestAddIsIdempotent(t *testing.T) {
	c := NewComposition(nil)
	c.Add(5)
	c.Add(5)
	assert.Equal(t, []int{5}, c.Selected())
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	c := NewComposition([]int{1})
	c.Remove(42)
	assert.Equal(t, []int{1}, c.Effective())
}

func TestSelectionOrderStable(t *testing.T) {
	c := NewComposition([]int{3, 1})
	c.Add(7)
	c.Add(2)
	c.Remove(7)
	assert.Equal(t, []int{3, 1, 2}, c.Effective())
}
