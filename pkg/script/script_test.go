package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/pathfinder/pkg/command"
	"github.com/bft-labs/pathfinder/pkg/screen"
)

const tomlScript = `
initial = [{ name = "Home" }]

[[steps]]
op = "navigate_to"
screen = { name = "Profile", params = { id = "7" } }

[[steps]]
op = "show_dialog"
dialog = { name = "Confirm" }

[[steps]]
op = "dismiss_dialog"

[[steps]]
op = "back_to"
key = "Home"
inclusive = false

[[steps]]
op = "set_chain"
screens = [{ name = "A" }, { name = "B" }]
home = true

[[steps]]
op = "back_by_steps"
steps = 1
`

const yamlScript = `
initial:
  - name: Home
steps:
  - op: navigate_to
    screen: {name: Profile, params: {id: "7"}}
  - op: show_dialog
    dialog: {name: Confirm}
  - op: dismiss_dialog
  - op: back_to
    key: Home
  - op: set_chain
    screens: [{name: A}, {name: B}]
    home: true
  - op: back_by_steps
    steps: 1
`

var wantBatch = []string{
	"navigate_to(Profile)",
	"show_dialog(Confirm)",
	"dismiss_dialog",
	"back_to(Home, inclusive=false)",
	"set_chain(A > B, home=true)",
	"back_by_steps(1, inclusive=false)",
}

func batchStrings(b command.Batch) []string {
	out := make([]string, len(b))
	for i, c := range b {
		out[i] = c.String()
	}
	return out
}

func TestDecode_Formats(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"toml", tomlScript, FormatTOML},
		{"yaml", yamlScript, FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode([]byte(tt.data), tt.format)
			require.NoError(t, err)

			assert.Equal(t, []screen.Screen{screen.Route{Name: "Home"}}, s.InitialScreens())

			batch, err := s.Commands()
			require.NoError(t, err)
			assert.Equal(t, wantBatch, batchStrings(batch))

			profile := batch[0].(command.NavigateTo).Screen.(screen.Route)
			assert.Equal(t, "7", profile.Param("id"))
		})
	}
}

func TestDecode_UnknownField(t *testing.T) {
	_, err := Decode([]byte("[[steps]]\nop = \"pop\"\nbogus = 1\n"), FormatTOML)
	assert.Error(t, err)

	_, err = Decode([]byte("steps:\n  - op: pop\n    bogus: 1\n"), FormatYAML)
	assert.Error(t, err)

	_, err = Decode(nil, Format("json"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestStepCommand_Invalid(t *testing.T) {
	tests := []struct {
		name string
		step Step
	}{
		{"missing op", Step{}},
		{"unknown op", Step{Op: "teleport"}},
		{"navigate without screen", Step{Op: command.OpNavigateTo}},
		{"replace with empty name", Step{Op: command.OpReplace, Screen: &RouteSpec{}}},
		{"back_to without key", Step{Op: command.OpBackTo}},
		{"negative steps", Step{Op: command.OpBackBySteps, Steps: -1}},
		{"empty chain", Step{Op: command.OpSetChain}},
		{"dialog missing", Step{Op: command.OpShowDialog}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.step.Command()
			assert.ErrorIs(t, err, ErrInvalidStep)
		})
	}
}

func TestStepCommand_BackToFromScreen(t *testing.T) {
	c, err := Step{Op: command.OpBackTo, Screen: &RouteSpec{Name: "Home"}, Inclusive: true}.Command()
	require.NoError(t, err)
	assert.Equal(t, command.BackTo{Key: "Home", Inclusive: true}, c)
}

func TestCommands_ReportsStepIndex(t *testing.T) {
	s := &Script{Steps: []Step{{Op: command.OpPop}, {Op: "nope"}}}
	_, err := s.Commands()
	require.ErrorIs(t, err, ErrInvalidStep)
	assert.Contains(t, err.Error(), "step 1")
}

func TestBatches(t *testing.T) {
	s := &Script{Steps: []Step{{Op: command.OpPop}, {Op: command.OpClearStack}}}
	batches, err := s.Batches()
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, command.Batch{command.Pop{}}, batches[0])
	assert.Equal(t, command.Batch{command.ClearStack{}}, batches[1])
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "flow.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlScript), 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Steps, 6)

	bad := filepath.Join(dir, "flow.txt")
	require.NoError(t, os.WriteFile(bad, []byte("x"), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("a/B.TOML")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)

	f, err = FormatFromPath("x.yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
}
