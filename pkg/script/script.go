package script

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/bft-labs/pathfinder/pkg/command"
	"github.com/bft-labs/pathfinder/pkg/screen"
)

var (
	// ErrInvalidStep is wrapped by every step conversion failure.
	ErrInvalidStep = errors.New("script: invalid step")

	// ErrUnsupportedFormat is returned for a file extension with no decoder.
	ErrUnsupportedFormat = errors.New("script: unsupported format")
)

// Format selects the decoder.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// RouteSpec is the document form of a screen.Route.
type RouteSpec struct {
	Name   string            `toml:"name" yaml:"name"`
	Params map[string]string `toml:"params,omitempty" yaml:"params,omitempty"`
}

// Route converts r to a screen.
func (r RouteSpec) Route() screen.Route {
	return screen.Route{Name: r.Name, Params: r.Params}
}

// Step is one command in document form. Which fields matter depends on Op.
type Step struct {
	Op        string      `toml:"op" yaml:"op"`
	Screen    *RouteSpec  `toml:"screen,omitempty" yaml:"screen,omitempty"`
	Screens   []RouteSpec `toml:"screens,omitempty" yaml:"screens,omitempty"`
	Key       string      `toml:"key,omitempty" yaml:"key,omitempty"`
	Steps     int         `toml:"steps,omitempty" yaml:"steps,omitempty"`
	Inclusive bool        `toml:"inclusive,omitempty" yaml:"inclusive,omitempty"`
	Home      bool        `toml:"home,omitempty" yaml:"home,omitempty"`
	Dialog    *RouteSpec  `toml:"dialog,omitempty" yaml:"dialog,omitempty"`
}

// Script is a decoded navigation script.
type Script struct {
	Initial []RouteSpec `toml:"initial" yaml:"initial"`
	Steps   []Step      `toml:"steps" yaml:"steps"`
}

// Decode parses data in format f.
func Decode(data []byte, f Format) (*Script, error) {
	var s Script
	switch f {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("script: decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("script: decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	return &s, nil
}

// Load reads and decodes the script at path.
func Load(path string) (*Script, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Decode(b, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// InitialScreens returns the initial stack.
func (s *Script) InitialScreens() []screen.Screen {
	out := make([]screen.Screen, len(s.Initial))
	for i, r := range s.Initial {
		out[i] = r.Route()
	}
	return out
}

// Commands converts every step, in order, into one batch.
func (s *Script) Commands() (command.Batch, error) {
	batch := make(command.Batch, 0, len(s.Steps))
	for i, st := range s.Steps {
		c, err := st.Command()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		batch = append(batch, c)
	}
	return batch, nil
}

// Batches converts the steps into one single-command batch each.
func (s *Script) Batches() ([]command.Batch, error) {
	cmds, err := s.Commands()
	if err != nil {
		return nil, err
	}
	out := make([]command.Batch, len(cmds))
	for i, c := range cmds {
		out[i] = command.Batch{c}
	}
	return out, nil
}

// Command converts the step.
func (st Step) Command() (command.Command, error) {
	switch st.Op {
	case command.OpNavigateTo, command.OpReplace:
		if st.Screen == nil || st.Screen.Name == "" {
			return nil, fmt.Errorf("%w: %s requires screen", ErrInvalidStep, st.Op)
		}
		if st.Op == command.OpReplace {
			return command.Replace{Screen: st.Screen.Route()}, nil
		}
		return command.NavigateTo{Screen: st.Screen.Route()}, nil

	case command.OpBackTo:
		key := st.Key
		if key == "" && st.Screen != nil {
			key = st.Screen.Name
		}
		if key == "" {
			return nil, fmt.Errorf("%w: %s requires key or screen", ErrInvalidStep, st.Op)
		}
		return command.BackTo{Key: key, Inclusive: st.Inclusive}, nil

	case command.OpBackBySteps:
		if st.Steps < 0 {
			return nil, fmt.Errorf("%w: %s steps must not be negative", ErrInvalidStep, st.Op)
		}
		return command.BackBySteps{Steps: st.Steps, Inclusive: st.Inclusive}, nil

	case command.OpSetChain:
		if len(st.Screens) == 0 {
			return nil, fmt.Errorf("%w: %s requires screens", ErrInvalidStep, st.Op)
		}
		screens := make([]screen.Screen, len(st.Screens))
		for i, r := range st.Screens {
			screens[i] = r.Route()
		}
		return command.SetChain{Screens: screens, MarkRootAsHome: st.Home}, nil

	case command.OpPop:
		return command.Pop{}, nil

	case command.OpClearStack:
		return command.ClearStack{}, nil

	case command.OpShowDialog:
		if st.Dialog == nil || st.Dialog.Name == "" {
			return nil, fmt.Errorf("%w: %s requires dialog", ErrInvalidStep, st.Op)
		}
		return command.ShowDialog{Dialog: st.Dialog.Route()}, nil

	case command.OpDismissDialog:
		return command.DismissDialog{}, nil

	case "":
		return nil, fmt.Errorf("%w: missing op", ErrInvalidStep)

	default:
		return nil, fmt.Errorf("%w: unknown op %q", ErrInvalidStep, st.Op)
	}
}
