package dirty_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fieldkit/mapfile/dirty"
)

type sliceSource []byte

func (s sliceSource) Bytes() []byte { return s }
func (s sliceSource) FD() int       { return -1 }

func TestTracker_FlushDataOnly_PreCancelled(t *testing.T) {
	tracker := dirty.NewTracker(sliceSource(make([]byte, 8192)))
	tracker.Add(4096, 100)
	tracker.Add(8192, 200)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tracker.FlushDataOnly(ctx)
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled),
		"expected context.Canceled, got: %v", err)
	require.Equal(t, 2, tracker.Len(), "ranges survive a cancelled flush")
}

func TestTracker_FlushAll_PreCancelled(t *testing.T) {
	tracker := dirty.NewTracker(sliceSource(make([]byte, 8192)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Nothing is dirty, so the data phase succeeds and the sync phase sees
	// the cancellation.
	err := tracker.FlushAll(ctx, dirty.FlushAuto)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestTracker_FlushDataOnly_EmptyWithCancelled(t *testing.T) {
	tracker := dirty.NewTracker(sliceSource(make([]byte, 8192)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Empty flush returns before checking the context.
	require.NoError(t, tracker.FlushDataOnly(ctx))
}

func TestTracker_FlushDataOnly_EmptySource(t *testing.T) {
	tracker := dirty.NewTracker(sliceSource(nil))
	tracker.Add(0, 4)
	require.NoError(t, tracker.FlushDataOnly(context.Background()))
	require.Zero(t, tracker.Len())
}
