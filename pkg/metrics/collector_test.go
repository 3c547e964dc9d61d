package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/pathfinder/pkg/command"
	"github.com/bft-labs/pathfinder/pkg/navigator"
	"github.com/bft-labs/pathfinder/pkg/pathfinder"
	"github.com/bft-labs/pathfinder/pkg/screen"
)

func TestCollector_Batches(t *testing.T) {
	c := NewCollector("test")

	c.OnBatchBuffered(pathfinder.BatchEvent{Commands: []string{"navigate_to"}, Pending: 1})
	c.OnBatchBuffered(pathfinder.BatchEvent{Commands: []string{"pop"}, Pending: 2})
	assert.Equal(t, 2.0, testutil.ToFloat64(c.batchesBuffered))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.pendingBatches))

	c.OnBatchDelivered(pathfinder.BatchEvent{Commands: []string{"navigate_to", "navigate_to", "pop"}, Pending: 0})
	assert.Equal(t, 1.0, testutil.ToFloat64(c.batchesDelivered))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.pendingBatches))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.commandsTotal.WithLabelValues("navigate_to")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.commandsTotal.WithLabelValues("pop")))
}

func TestCollector_ErrorsAndState(t *testing.T) {
	c := NewCollector("")

	c.OnCommandError(pathfinder.CommandErrorEvent{Err: errors.New("x"), Kind: pathfinder.ErrorKindNotFound})
	c.OnStateChange(pathfinder.StateChangeEvent{Current: pathfinder.StateRunning})
	c.OnStackChange(pathfinder.StackChangeEvent{Keys: []string{"Home", "A"}, DialogShown: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.commandErrors.WithLabelValues(pathfinder.ErrorKindNotFound)))
	assert.Equal(t, float64(pathfinder.StateRunning), testutil.ToFloat64(c.lifecycleState))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.stackDepth))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.dialogShown))
}

func TestCollector_PendingClearedWhenFlushFails(t *testing.T) {
	c := NewCollector("")
	pf, err := pathfinder.New(pathfinder.Config{}, pathfinder.WithEventHandler(c))
	require.NoError(t, err)

	pf.Execute(command.BackTo{Key: "missing"})
	pf.Execute(command.BackTo{Key: "missing"})
	_, err = pf.Loop().Drain()
	require.NoError(t, err)
	require.Equal(t, 2.0, testutil.ToFloat64(c.pendingBatches))

	nav := navigator.New()
	require.NoError(t, nav.SetStack(screen.Route{Name: "Home"}))
	pf.Attach(nav)
	_, err = pf.Loop().Drain()
	require.NoError(t, err)

	assert.Equal(t, 0, pf.Router().Buffer().Pending())
	assert.Equal(t, 0.0, testutil.ToFloat64(c.pendingBatches))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.commandErrors.WithLabelValues(pathfinder.ErrorKindNotFound)))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.batchesDelivered))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("pf")
	c.OnBatchBuffered(pathfinder.BatchEvent{Pending: 1})

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "pf_buffer_batches_buffered_total 1")
	assert.Contains(t, string(body), "pf_buffer_pending_batches 1")
}
