package command

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bft-labs/pathfinder/pkg/screen"
)

func TestNames(t *testing.T) {
	all := Batch{
		NavigateTo{}, Replace{}, BackTo{}, BackBySteps{}, SetChain{},
		Pop{}, ClearStack{}, ShowDialog{}, DismissDialog{},
	}
	assert.Equal(t, Ops, all.Names())
}

func TestString(t *testing.T) {
	home := screen.Route{Name: "Home"}
	settings := screen.Route{Name: "Settings"}

	tests := []struct {
		cmd  Command
		want string
	}{
		{NavigateTo{Screen: home}, "navigate_to(Home)"},
		{Replace{Screen: settings}, "replace(Settings)"},
		{BackTo{Key: "Home", Inclusive: true}, "back_to(Home, inclusive=true)"},
		{BackBySteps{Steps: 2}, "back_by_steps(2, inclusive=false)"},
		{SetChain{Screens: []screen.Screen{home, settings}, MarkRootAsHome: true}, "set_chain(Home > Settings, home=true)"},
		{Pop{}, "pop"},
		{ClearStack{}, "clear_stack"},
		{ShowDialog{Dialog: screen.Route{Name: "Confirm"}}, "show_dialog(Confirm)"},
		{DismissDialog{}, "dismiss_dialog"},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cmd.String())
		})
	}
}

func TestBatchString(t *testing.T) {
	b := Batch{NavigateTo{Screen: screen.Route{Name: "A"}}, Pop{}}
	assert.Equal(t, "[navigate_to(A), pop]", b.String())
	assert.Equal(t, "[]", Batch{}.String())
}

func TestBatch_NilCommand(t *testing.T) {
	b := Batch{Pop{}, nil}
	assert.Equal(t, []string{OpPop, NilName}, b.Names())
	assert.Equal(t, "[pop, <nil>]", b.String())
	assert.Equal(t, NilName, NameOf(nil))
}
