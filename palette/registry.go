package palette

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/stsysd/calheat/model"
)

//go:embed palettes.toml
var builtinTOML string

type variantFile struct {
	Variants []struct {
		Name    string        `toml:"name"`
		Buckets []ColorBucket `toml:"bucket"`
	} `toml:"variant"`
}

// Registry holds named palette variants in declaration order.
// The name model.DefaultPaletteName is reserved for the empty selection.
type Registry struct {
	names    []string
	variants map[string]Palette
}

// Builtin returns the registry decoded from the embedded palettes.toml.
func Builtin() *Registry {
	reg, err := Load(strings.NewReader(builtinTOML))
	if err != nil {
		panic(fmt.Sprintf("palette: embedded palettes.toml is invalid: %v", err))
	}
	return reg
}

// Load decodes a TOML variant file and validates every palette in it.
func Load(r io.Reader) (*Registry, error) {
	var f variantFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode palette file: %w", err)
	}

	reg := &Registry{variants: make(map[string]Palette, len(f.Variants))}
	for _, v := range f.Variants {
		if v.Name == "" || v.Name == model.DefaultPaletteName {
			return nil, fmt.Errorf("invalid variant name %q", v.Name)
		}
		p := Palette(v.Buckets)
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("variant %s: %w", v.Name, err)
		}
		reg.add(v.Name, p)
	}
	return reg, nil
}

// LoadFile reads a TOML variant file from disk.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open palette file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (r *Registry) add(name string, p Palette) {
	if _, exists := r.variants[name]; !exists {
		r.names = append(r.names, name)
	}
	r.variants[name] = p
}

// Merge returns a new registry with other's variants added to r's.
// Variants with the same name are replaced by other's.
func (r *Registry) Merge(other *Registry) *Registry {
	out := &Registry{variants: make(map[string]Palette, len(r.variants)+len(other.variants))}
	for _, name := range r.names {
		out.add(name, r.variants[name])
	}
	for _, name := range other.names {
		out.add(name, other.variants[name])
	}
	return out
}

// Names returns the selectable names, starting with the default selection.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.names)+1)
	names = append(names, model.DefaultPaletteName)
	return append(names, r.names...)
}

// Lookup returns a copy of the named variant. The default selection yields an
// empty palette; renderers fall back to Default() for it.
func (r *Registry) Lookup(name string) (Palette, error) {
	if name == "" || name == model.DefaultPaletteName {
		return Palette{}, nil
	}
	p, ok := r.variants[name]
	if !ok {
		return nil, model.NewValidationError(fmt.Sprintf("unknown palette %q", name))
	}
	return p.Clone(), nil
}
