package assert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fetcher struct{}

func TestNotNil(t *testing.T) {
	var typed *fetcher
	require.Panics(t, func() { NotNil(nil) })
	require.Panics(t, func() { NotNil(typed) })
	require.NotPanics(t, func() { NotNil(&fetcher{}) })
	require.NotPanics(t, func() { NotNil(fetcher{}) })
}

func TestNonNegative(t *testing.T) {
	require.Panics(t, func() { NonNegative(-time.Second, "ttl") })
	require.NotPanics(t, func() { NonNegative(time.Duration(0), "ttl") })
	require.NotPanics(t, func() { NonNegative(2.5, "rps") })
}
