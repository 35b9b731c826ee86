package gradient

import (
	"errors"
	"testing"

	"github.com/aooxin/backward/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeGradientUnregisteredKind(t *testing.T) {
	_, err := MakeGradient(graph.NewOpDesc("no-such-op"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnregisteredGradient))
}

func TestRegisterAndLookup(t *testing.T) {
	defer delete(registry, "noop-test-kind")

	called := false
	Register("noop-test-kind", func(fwd graph.OpDesc) ([]graph.OpDesc, error) {
		called = true
		return nil, nil
	})

	maker, ok := Lookup("noop-test-kind")
	require.True(t, ok)

	_, err := maker(graph.NewOpDesc("noop-test-kind"))
	require.NoError(t, err)
	assert.True(t, called)
}

func TestRegisterOverwriteDoesNotPanic(t *testing.T) {
	defer delete(registry, "dup-test-kind")

	Register("dup-test-kind", func(fwd graph.OpDesc) ([]graph.OpDesc, error) { return nil, nil })
	Register("dup-test-kind", func(fwd graph.OpDesc) ([]graph.OpDesc, error) { return nil, nil })

	_, ok := Lookup("dup-test-kind")
	assert.True(t, ok)
}
