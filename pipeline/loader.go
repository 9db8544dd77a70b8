package pipeline

import (
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/piperkit/piper/errors"
)

// DefLoader loads pipeline definitions by name.
type DefLoader interface {
	Load(name string) (*Def, error)
}

// FileDefLoader loads definitions from YAML files on disk.
type FileDefLoader struct {
	dirs []string
}

// NewFileDefLoader creates a loader that searches the given directories for
// pipeline YAML files.
func NewFileDefLoader(dirs ...string) DefLoader {
	return &FileDefLoader{dirs: dirs}
}

// Load searches for {name}.yaml or {name}.yml in each configured directory.
func (l *FileDefLoader) Load(name string) (*Def, error) {
	for _, dir := range l.dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, name+ext)
			if d, err := loadDefFile(path); err == nil {
				return d, nil
			}
		}
	}
	return nil, errors.NotFound("pipeline definition", name)
}

// LoadDef loads a definition from explicit file paths, trying each until
// one succeeds.
func LoadDef(name string, paths ...string) (*Def, error) {
	for _, path := range paths {
		if d, err := loadDefFile(path); err == nil {
			return d, nil
		}
	}
	return nil, errors.NotFound("pipeline definition", name)
}

func loadDefFile(path string) (*Def, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Def
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.Configf("parsing %s", path).WithCause(err)
	}
	return &d, nil
}

// Resolve converts a definition into a Blueprint, looking up handlers and
// predicates in the registry and resolving includes recursively as child
// containers.
func Resolve(def *Def, registry *Registry, loader DefLoader) (*Blueprint, error) {
	stack := make(map[string]bool) // current recursion path (cycle detection)
	return resolveDef(def, registry, loader, stack)
}

func resolveDef(def *Def, registry *Registry, loader DefLoader, stack map[string]bool) (*Blueprint, error) {
	if stack[def.Name] {
		return nil, errors.Configf("circular include detected for pipeline %q", def.Name)
	}
	stack[def.Name] = true
	defer delete(stack, def.Name)

	label := def.Name
	if label == "" {
		label = "main"
	}
	args := []any{Options{Label: label, BatchSize: def.BatchSize}}

	for _, sd := range def.Segments {
		child, err := resolveSegment(sd, registry)
		if err != nil {
			return nil, err
		}
		args = append(args, child)
	}

	for _, includeName := range def.Includes {
		sub, err := loader.Load(includeName)
		if err != nil {
			return nil, errors.Configf("loading include %q", includeName).WithCause(err)
		}
		subBlueprint, err := resolveDef(sub, registry, loader, stack)
		if err != nil {
			return nil, err
		}
		args = append(args, subBlueprint)
	}

	return Container(args...), nil
}

func resolveSegment(sd SegmentDef, registry *Registry) (any, error) {
	opts := Options{
		Label:     sd.Label,
		BatchSize: sd.BatchSize,
		Enabled:   sd.Enabled,
		Debug:     sd.Debug,
		Verbose:   sd.Verbose,
	}
	if sd.Allow != "" {
		p, ok := registry.Predicate(sd.Allow)
		if !ok {
			return nil, errors.NotFound("predicate", sd.Allow)
		}
		opts.Allow = p
	}

	if len(sd.Segments) > 0 {
		if sd.Handler != "" {
			return nil, errors.Configf("segment %q declares both a handler and children", sd.Label)
		}
		args := []any{opts}
		for _, nested := range sd.Segments {
			child, err := resolveSegment(nested, registry)
			if err != nil {
				return nil, err
			}
			args = append(args, child)
		}
		return Container(args...), nil
	}

	if sd.Handler == "" {
		return nil, errors.Configf("segment %q declares neither a handler nor children", sd.Label)
	}
	h, ok := registry.Handler(sd.Handler)
	if !ok {
		return nil, errors.NotFound("handler", sd.Handler)
	}
	opts.Handler = h
	return Process(opts), nil
}
