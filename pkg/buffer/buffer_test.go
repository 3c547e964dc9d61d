package buffer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/pathfinder/pkg/command"
	"github.com/bft-labs/pathfinder/pkg/mainloop"
	"github.com/bft-labs/pathfinder/pkg/screen"
)

type recordingProcessor struct {
	mu      sync.Mutex
	batches []command.Batch
	err     error
}

func (p *recordingProcessor) ExecuteCommands(batch command.Batch) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.batches = append(p.batches, batch)
	return p.err
}

func (p *recordingProcessor) Strings() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.batches))
	for i, b := range p.batches {
		out[i] = b.String()
	}
	return out
}

type recordingObserver struct {
	buffered, delivered, failed int
	lastErr                     error
	lastPending                 int
}

func (o *recordingObserver) OnBatchBuffered(_ command.Batch, pending int) {
	o.buffered++
	o.lastPending = pending
}

func (o *recordingObserver) OnBatchDelivered(_ command.Batch, pending int) {
	o.delivered++
	o.lastPending = pending
}

func (o *recordingObserver) OnBatchFailed(_ command.Batch, err error, pending int) {
	o.failed++
	o.lastErr = err
	o.lastPending = pending
}

func nav(name string) command.Command {
	return command.NavigateTo{Screen: screen.Route{Name: name}}
}

func drain(t *testing.T, l *mainloop.Loop) {
	t.Helper()
	_, err := l.Drain()
	require.NoError(t, err)
}

func TestSubmit_BuffersUntilAttach(t *testing.T) {
	loop := mainloop.New()
	b := New(loop)

	b.Submit(command.Batch{nav("A")})
	b.Submit(command.Batch{nav("B"), command.Pop{}})
	b.Submit(command.Batch{nav("C")})
	drain(t, loop)

	assert.Equal(t, 3, b.Pending())
	assert.False(t, b.Attached())

	p := &recordingProcessor{}
	b.Attach(p)
	drain(t, loop)

	assert.Equal(t, []string{
		"[navigate_to(A)]",
		"[navigate_to(B), pop]",
		"[navigate_to(C)]",
	}, p.Strings())
	assert.Zero(t, b.Pending())
	assert.True(t, b.Attached())
}

func TestSubmit_GoesStraightToAttachedProcessor(t *testing.T) {
	loop := mainloop.New()
	b := New(loop)
	p := &recordingProcessor{}

	b.Attach(p)
	b.Submit(command.Batch{nav("A")})
	drain(t, loop)

	assert.Equal(t, []string{"[navigate_to(A)]"}, p.Strings())
	assert.Zero(t, b.Pending())
}

func TestDetach_KeepsQueueAndBuffersAgain(t *testing.T) {
	loop := mainloop.New()
	b := New(loop)
	first := &recordingProcessor{}

	b.Attach(first)
	b.Submit(command.Batch{nav("A")})
	b.Detach()
	b.Submit(command.Batch{nav("B")})
	drain(t, loop)

	assert.Equal(t, []string{"[navigate_to(A)]"}, first.Strings())
	assert.Equal(t, 1, b.Pending())

	second := &recordingProcessor{}
	b.Attach(second)
	drain(t, loop)

	assert.Equal(t, []string{"[navigate_to(B)]"}, second.Strings())
	assert.Equal(t, []string{"[navigate_to(A)]"}, first.Strings(), "detached processor must not see new batches")
}

func TestAttach_FlushesOnlyOnce(t *testing.T) {
	loop := mainloop.New()
	b := New(loop)

	b.Submit(command.Batch{nav("A")})
	first := &recordingProcessor{}
	b.Attach(first)
	b.Detach()

	second := &recordingProcessor{}
	b.Attach(second)
	drain(t, loop)

	assert.Len(t, first.Strings(), 1)
	assert.Empty(t, second.Strings())
}

func TestSubmit_EmptyBatchIgnored(t *testing.T) {
	loop := mainloop.New()
	b := New(loop)

	b.Submit(nil)
	b.Submit(command.Batch{})
	assert.Zero(t, loop.Len())
}

func TestSubmit_CopiesBatch(t *testing.T) {
	loop := mainloop.New()
	b := New(loop)

	batch := command.Batch{nav("A")}
	b.Submit(batch)
	batch[0] = nav("Mutated")

	p := &recordingProcessor{}
	b.Attach(p)
	drain(t, loop)

	assert.Equal(t, []string{"[navigate_to(A)]"}, p.Strings())
}

func TestObserver(t *testing.T) {
	loop := mainloop.New()
	o := &recordingObserver{}
	b := New(loop, WithObserver(o))

	b.Submit(command.Batch{nav("A")})
	b.Attach(&recordingProcessor{})
	b.Submit(command.Batch{nav("B")})
	drain(t, loop)

	failing := &recordingProcessor{err: errors.New("boom")}
	b.Attach(failing)
	b.Submit(command.Batch{command.Pop{}})
	drain(t, loop)

	assert.Equal(t, 1, o.buffered)
	assert.Equal(t, 2, o.delivered)
	assert.Equal(t, 1, o.failed)
	assert.EqualError(t, o.lastErr, "boom")
	assert.Zero(t, b.Pending(), "failed batches are not re-queued")
}

func TestObserver_FailedFlushReportsEmptyQueue(t *testing.T) {
	loop := mainloop.New()
	o := &recordingObserver{}
	b := New(loop, WithObserver(o))

	b.Submit(command.Batch{command.Pop{}})
	b.Submit(command.Batch{command.Pop{}})
	drain(t, loop)
	require.Equal(t, 2, o.lastPending)

	b.Attach(&recordingProcessor{err: errors.New("boom")})
	drain(t, loop)

	assert.Equal(t, 2, o.failed)
	assert.Zero(t, o.lastPending)
	assert.Zero(t, b.Pending())
}

func TestSubmit_FromManyGoroutinesWithRunningLoop(t *testing.T) {
	loop := mainloop.New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = loop.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	b := New(loop)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Submit(command.Batch{command.Pop{}})
		}()
	}
	wg.Wait()
	require.NoError(t, loop.Do(ctx, func() {}))
	assert.Equal(t, 20, b.Pending())

	p := &recordingProcessor{}
	b.Attach(p)
	require.NoError(t, loop.Do(ctx, func() {}))
	assert.Len(t, p.Strings(), 20)
	assert.Zero(t, b.Pending())
}
