package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/pathfinder/pkg/command"
	"github.com/bft-labs/pathfinder/pkg/mainloop"
	"github.com/bft-labs/pathfinder/pkg/navigator"
	"github.com/bft-labs/pathfinder/pkg/screen"
)

func r(name string) screen.Route { return screen.Route{Name: name} }

func setup(t *testing.T, initial ...string) (*mainloop.Loop, *Router, *navigator.Navigator) {
	t.Helper()
	loop := mainloop.New()
	rt := New(loop)
	nav := navigator.New()
	screens := make([]screen.Screen, len(initial))
	for i, n := range initial {
		screens[i] = r(n)
	}
	require.NoError(t, nav.SetStack(screens...))
	return loop, rt, nav
}

func drain(t *testing.T, loop *mainloop.Loop) {
	t.Helper()
	_, err := loop.Drain()
	require.NoError(t, err)
}

func TestCommandsBufferedUntilAttach(t *testing.T) {
	loop, rt, nav := setup(t, "Home")

	rt.NavigateTo(r("A"))
	rt.NavigateTo(r("B"))
	drain(t, loop)
	assert.Equal(t, []string{"Home"}, nav.Keys())

	rt.Holder().Attach(nav)
	drain(t, loop)
	assert.Equal(t, []string{"Home", "A", "B"}, nav.Keys())
}

func TestDetachedCommandsResumeOnReattach(t *testing.T) {
	loop, rt, nav := setup(t, "Home")
	rt.Holder().Attach(nav)
	rt.NavigateTo(r("A"))
	drain(t, loop)

	rt.Holder().Detach()
	rt.Exit()
	rt.NavigateTo(r("C"))
	drain(t, loop)
	assert.Equal(t, []string{"Home", "A"}, nav.Keys())
	assert.Equal(t, 2, rt.Buffer().Pending())

	rt.Holder().Attach(nav)
	drain(t, loop)
	assert.Equal(t, []string{"Home", "C"}, nav.Keys())
}

func TestRouterMethods(t *testing.T) {
	tests := []struct {
		name string
		call func(*Router)
		want []string
	}{
		{"replace", func(rt *Router) { rt.Replace(r("X")) }, []string{"Home", "X"}},
		{"back to screen", func(rt *Router) { rt.BackTo(r("Home"), false) }, []string{"Home"}},
		{"back to key inclusive", func(rt *Router) { rt.BackToKey("A", true) }, []string{"Home"}},
		{"back by steps", func(rt *Router) { rt.BackBySteps(1, false) }, []string{"Home"}},
		{"exit", func(rt *Router) { rt.Exit() }, []string{"Home"}},
		{"screen chain", func(rt *Router) { rt.NewScreenChain(r("P"), r("Q")) }, []string{"P", "Q"}},
		{"clear", func(rt *Router) { rt.ClearStack() }, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loop, rt, nav := setup(t, "Home", "A")
			rt.Holder().Attach(nav)
			tt.call(rt)
			drain(t, loop)
			assert.Equal(t, tt.want, nav.Keys())
		})
	}
}

func TestNewHomeChain(t *testing.T) {
	loop, rt, nav := setup(t, "Splash")
	rt.Holder().Attach(nav)
	rt.NewHomeChain(r("Home"), r("Feed"))
	drain(t, loop)

	snap := nav.Snapshot()
	assert.Equal(t, []string{"Home", "Feed"}, snap.Keys)
	assert.True(t, snap.RootIsHome)
}

func TestDialogs(t *testing.T) {
	loop, rt, nav := setup(t, "Home")
	rt.Holder().Attach(nav)

	rt.ShowDialog("rate-us")
	drain(t, loop)
	assert.Equal(t, "rate-us", nav.Dialog())

	rt.DismissDialog()
	drain(t, loop)
	assert.Nil(t, nav.Dialog())
}

func TestExecute_EmptyIsIgnored(t *testing.T) {
	loop, rt, _ := setup(t, "Home")
	rt.Execute()
	drain(t, loop)
	assert.Equal(t, 0, rt.Buffer().Pending())
}

func TestResults(t *testing.T) {
	_, rt, _ := setup(t, "Home")

	var got []any
	d := rt.ListenForResult("country", func(v any) { got = append(got, v) })
	rt.SendResult("country", "ZA")
	rt.SendResult("country", "NL")
	assert.Equal(t, []any{"ZA"}, got)

	d.Dispose()
	assert.Equal(t, 0, rt.Results().Len())
}

func TestResults_DisposeBeforeSend(t *testing.T) {
	_, rt, _ := setup(t, "Home")

	called := false
	d := rt.ListenForResult("k", func(any) { called = true })
	d.Dispose()
	rt.SendResult("k", 1)
	assert.False(t, called)
}

type customRouter struct {
	*Base
}

func (c customRouter) OpenProfile(id string) {
	c.Execute(
		command.BackTo{Key: "Home"},
		command.NavigateTo{Screen: screen.Route{Name: "Profile", Params: map[string]string{"id": id}}},
	)
}

func TestCustomRouterOnBase(t *testing.T) {
	loop, _, nav := setup(t, "Home", "Settings")
	c := customRouter{Base: NewBase(loop)}
	c.Holder().Attach(nav)
	c.OpenProfile("7")
	drain(t, loop)

	assert.Equal(t, []string{"Home", "Profile"}, nav.Keys())
	top := nav.Stack()[1].(screen.Route)
	assert.Equal(t, "7", top.Param("id"))
}
