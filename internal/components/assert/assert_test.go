package assert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sink struct{}

func TestNotNil(t *testing.T) {
	var typedNil *sink
	var nilMap map[string]int

	require.Panics(t, func() { NotNil("value", nil) })
	require.Panics(t, func() { NotNil("pointer", typedNil) })
	require.Panics(t, func() { NotNil("map", nilMap) })

	require.NotPanics(t, func() { NotNil("struct", sink{}) })
	require.NotPanics(t, func() { NotNil("pointer", &sink{}) })
	require.NotPanics(t, func() { NotNil("zero", 0) })
}

func TestNotEmpty(t *testing.T) {
	require.PanicsWithValue(t, "dir: expected string to be non-empty", func() { NotEmpty("dir", "") })
	require.NotPanics(t, func() { NotEmpty("dir", "pages") })
}
