package material

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknown is returned by Library.Get for a name it does not hold.
var ErrUnknown = errors.New("unknown material")

// Default cable material: steel wire rope.
const (
	DefaultName               = "Cable"
	DefaultElasticModulusMPa  = 1.6e5  // MPa (N/mm2)
	DefaultThermalCoefficient = 1.6e-5 // 1/°C
)

// Material holds the constants of a cable's constituent material.
// Values are fixed at construction.
type Material struct {
	name  string
	e     float64
	alpha float64
}

func New(name string, elasticModulusMPa, thermalCoefficient float64) (*Material, error) {
	if name == "" {
		return nil, fmt.Errorf("material name required")
	}
	if elasticModulusMPa <= 0 {
		return nil, fmt.Errorf("material %q: elastic modulus must be positive", name)
	}
	if thermalCoefficient < 0 {
		return nil, fmt.Errorf("material %q: thermal coefficient must not be negative", name)
	}
	return &Material{name: name, e: elasticModulusMPa, alpha: thermalCoefficient}, nil
}

func (m *Material) Name() string { return m.name }

// ElasticModulusMPa returns E in N/mm2.
func (m *Material) ElasticModulusMPa() float64 { return m.e }

// ThermalCoefficient returns the thermal expansion rate in 1/°C.
func (m *Material) ThermalCoefficient() float64 { return m.alpha }

func (m *Material) String() string {
	return fmt.Sprintf("Material<%s E=%g MPa at=%g 1/°C>", m.name, m.e, m.alpha)
}

// Library is a set of named materials. The first added material is the default.
type Library struct {
	items map[string]*Material
	def   string
}

func NewLibrary(ms ...*Material) *Library {
	l := &Library{items: make(map[string]*Material, len(ms))}
	for _, m := range ms {
		l.Add(m)
	}
	return l
}

// DefaultLibrary holds only the default cable material.
func DefaultLibrary() *Library {
	m, _ := New(DefaultName, DefaultElasticModulusMPa, DefaultThermalCoefficient)
	return NewLibrary(m)
}

func (l *Library) Add(m *Material) {
	if m == nil {
		return
	}
	if l.def == "" {
		l.def = m.name
	}
	l.items[m.name] = m
}

// Get resolves a material by name. An empty name selects the default.
func (l *Library) Get(name string) (*Material, error) {
	if name == "" {
		name = l.def
	}
	m, ok := l.items[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknown, name)
	}
	return m, nil
}

func (l *Library) Names() []string {
	names := make([]string, 0, len(l.items))
	for n := range l.items {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
