package chrono

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStandardImplLocation(t *testing.T) {
	utc, err := NewStandardImpl("")
	require.NoError(t, err)
	require.Equal(t, time.UTC, utc.Location())
	require.Equal(t, time.UTC, utc.Now().Location())

	_, err = NewStandardImpl("Not/AZone")
	require.Error(t, err)
}

func TestFixedImpl(t *testing.T) {
	instant := time.Date(2014, time.January, 28, 5, 0, 19, 0, time.UTC)
	fixed := FixedImpl{Instant: instant}
	require.Equal(t, instant, fixed.Now())
	require.Equal(t, time.UTC, fixed.Location())
}
