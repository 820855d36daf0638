package service

import (
	"testing"

	"github.com/specialistvlad/timerwire/internal/servicename"
	"github.com/stretchr/testify/assert"
)

func TestNode_DependsOn(t *testing.T) {
	a := servicename.New("a")
	b := servicename.New("b")
	n := &Node{Name: servicename.New("c"), Deps: []servicename.Name{a}}

	assert.True(t, n.DependsOn(a))
	assert.False(t, n.DependsOn(b))
	assert.Equal(t, "c", n.ID())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "composite", CompositeFactory.String())
	assert.Equal(t, "non-functional", NonFunctionalFactory.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
