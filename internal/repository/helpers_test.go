package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitNames(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, SplitNames(" A, B ，C,, A "))
	assert.Nil(t, SplitNames(""))
	assert.Nil(t, SplitNames(" , "))
}

func TestJoinNames(t *testing.T) {
	assert.Equal(t, "A,B", JoinNames([]string{" A", "", "B", "A"}))
	assert.Equal(t, "", JoinNames(nil))
}
