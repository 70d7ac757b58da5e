package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionProducesDistinctIDs(t *testing.T) {
	a := NewSession()
	b := NewSession()
	assert.NotEqual(t, a, b)
}

func TestSessionStringIsNonEmpty(t *testing.T) {
	assert.NotEmpty(t, NewSession().String())
}
