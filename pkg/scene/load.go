package scene

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/marionette/pkg/errors"
	"github.com/arthur-debert/marionette/pkg/logging"
	"github.com/arthur-debert/marionette/pkg/runtime"
)

// sceneDTO mirrors the scene file structure for both TOML and YAML
type sceneDTO struct {
	Name          string                    `toml:"name" yaml:"name"`
	StateMachines map[string]machineDTO     `toml:"stateMachines" yaml:"stateMachines"`
	ViewModels    map[string]containerDTO   `toml:"viewModels" yaml:"viewModels"`
	Assets        map[string]assetDTO       `toml:"assets" yaml:"assets"`
	Unsupported   []string                  `toml:"unsupported" yaml:"unsupported"`
}

type machineDTO struct {
	Inputs map[string]inputDTO `toml:"inputs" yaml:"inputs"`
}

type inputDTO struct {
	Kind   string      `toml:"kind" yaml:"kind"`
	Value  interface{} `toml:"value" yaml:"value"`
	Target string      `toml:"target" yaml:"target"`
	Event  string      `toml:"event" yaml:"event"`
	URL    string      `toml:"url" yaml:"url"`
}

type containerDTO struct {
	Strings map[string]stringFieldDTO `toml:"strings" yaml:"strings"`
	Colors  map[string]colorFieldDTO  `toml:"colors" yaml:"colors"`
	Enums   map[string]enumFieldDTO   `toml:"enums" yaml:"enums"`
}

type stringFieldDTO struct {
	Value string `toml:"value" yaml:"value"`
}

type colorFieldDTO struct {
	Value int64 `toml:"value" yaml:"value"`
}

type enumFieldDTO struct {
	Value   string   `toml:"value" yaml:"value"`
	Options []string `toml:"options" yaml:"options"`
}

type assetDTO struct {
	Image bool `toml:"image" yaml:"image"`
}

// Load reads a scene file, picking the format from the extension
// (.toml, .yaml or .yml).
func Load(path string) (*Scene, error) {
	logger := logging.GetLogger("scene")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSceneLoad, "reading scene file %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	sc, err := Parse(data, ext)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Str("scene", sc.Name()).
		Int("stateMachines", len(sc.machines)).
		Int("assets", len(sc.assets)).
		Msg("Scene loaded")
	return sc, nil
}

// Parse builds a scene from raw file contents. ext selects the decoder
// and must be ".toml", ".yaml" or ".yml".
func Parse(data []byte, ext string) (*Scene, error) {
	var dto sceneDTO
	switch ext {
	case ".toml":
		if err := toml.Unmarshal(data, &dto); err != nil {
			return nil, errors.Wrap(err, errors.ErrSceneLoad, "parsing TOML scene")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &dto); err != nil {
			return nil, errors.Wrap(err, errors.ErrSceneLoad, "parsing YAML scene")
		}
	default:
		return nil, errors.Newf(errors.ErrSceneLoad, "unsupported scene format %q", ext)
	}

	return fromDTO(dto)
}

func fromDTO(dto sceneDTO) (*Scene, error) {
	sc := &Scene{
		name:        dto.Name,
		unsupported: make(map[string]bool),
	}

	for _, group := range dto.Unsupported {
		switch group {
		case "stateMachines", "viewModels", "assets":
			sc.unsupported[group] = true
		default:
			return nil, errors.Newf(errors.ErrSceneLoad,
				"unknown unsupported group %q", group)
		}
	}

	for name, m := range dto.StateMachines {
		machine := &Machine{name: name}
		for inputName, in := range m.Inputs {
			input, err := buildInput(sc, name, inputName, in)
			if err != nil {
				return nil, err
			}
			machine.inputs = append(machine.inputs, input)
		}
		sortByName(machine.inputs)
		sc.machines = append(sc.machines, machine)
	}
	sortByName(sc.machines)

	root := &ViewModel{name: "root"}
	for name, c := range dto.ViewModels {
		container, err := buildContainer(name, c)
		if err != nil {
			return nil, err
		}
		root.nested = append(root.nested, container)
	}
	sortByName(root.nested)
	sc.root = root

	for name, a := range dto.Assets {
		sc.assets = append(sc.assets, &Asset{name: name, image: a.Image})
	}
	sortByName(sc.assets)

	return sc, nil
}

func buildInput(sc *Scene, machine, name string, dto inputDTO) (*Input, error) {
	input := &Input{
		scene:   sc,
		machine: machine,
		name:    name,
		target:  dto.Target,
		event:   dto.Event,
		url:     dto.URL,
	}

	switch dto.Kind {
	case "boolean":
		input.kind = runtime.InputBoolean
		if dto.Value != nil {
			b, ok := dto.Value.(bool)
			if !ok {
				return nil, errors.Newf(errors.ErrSceneLoad,
					"input %s.%s: boolean kind needs a boolean value, got %T", machine, name, dto.Value)
			}
			input.b = b
		}
	case "number":
		input.kind = runtime.InputNumber
		if dto.Value != nil {
			n, ok := asFloat(dto.Value)
			if !ok {
				return nil, errors.Newf(errors.ErrSceneLoad,
					"input %s.%s: number kind needs a numeric value, got %T", machine, name, dto.Value)
			}
			input.n = n
		}
	case "trigger":
		input.kind = runtime.InputTrigger
	default:
		return nil, errors.Newf(errors.ErrSceneLoad,
			"input %s.%s: unknown kind %q", machine, name, dto.Kind)
	}

	return input, nil
}

func buildContainer(name string, dto containerDTO) (*ViewModel, error) {
	vm := &ViewModel{name: name}

	for fieldName, f := range dto.Strings {
		vm.strings = append(vm.strings, &StringField{name: fieldName, v: f.Value})
	}
	sortByName(vm.strings)

	for fieldName, f := range dto.Colors {
		if f.Value < 0 || f.Value > 0xFFFFFFFF {
			return nil, errors.Newf(errors.ErrSceneLoad,
				"color field %s.%s: value 0x%X outside the unsigned 32-bit range", name, fieldName, f.Value)
		}
		vm.colors = append(vm.colors, &ColorField{name: fieldName, v: uint32(f.Value)})
	}
	sortByName(vm.colors)

	for fieldName, f := range dto.Enums {
		if len(f.Options) == 0 {
			return nil, errors.Newf(errors.ErrSceneLoad,
				"enum field %s.%s: empty option set", name, fieldName)
		}
		vm.enums = append(vm.enums, &EnumField{name: fieldName, v: f.Value, options: f.Options})
	}
	sortByName(vm.enums)

	return vm, nil
}

func asFloat(raw interface{}) (float64, bool) {
	switch t := raw.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	}
	return 0, false
}
