package mechanism

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrUnknownParameter = errors.New("mechanism: unknown parameter")
	ErrInvalidParameter = errors.New("mechanism: invalid parameter (NaN or Inf)")
)

// DefaultGravity is standard gravitational acceleration in m/s².
const DefaultGravity = 9.81

// Params is the fixed physical description of the three-arm linkage. Arm 3 is
// the distal arm carrying the deadweight, arm 1 the one at the base pivot K.
// Values are SI: N, kg, m, N·m, m/s².
type Params struct {
	// arm 3
	W3    float64 `yaml:"W3" json:"W3"`
	M3    float64 `yaml:"M3" json:"M3"`
	RComB float64 `yaml:"r_com_b" json:"r_com_b"`
	Tc    float64 `yaml:"T_c" json:"T_c"`
	R1    float64 `yaml:"r1" json:"r1"`
	L3    float64 `yaml:"L3" json:"L3"`
	MCom3 float64 `yaml:"m_com_3" json:"m_com_3"`

	// arm 2
	W2    float64 `yaml:"W2" json:"W2"`
	MCom2 float64 `yaml:"m_com_2" json:"m_com_2"`
	RComA float64 `yaml:"r_com_A" json:"r_com_A"`
	Ta    float64 `yaml:"T_a" json:"T_a"`
	L2    float64 `yaml:"L2" json:"L2"`
	R2    float64 `yaml:"r2" json:"r2"`

	// arm 1
	W1    float64 `yaml:"W1" json:"W1"`
	MCom1 float64 `yaml:"m_com_1" json:"m_com_1"`
	RComK float64 `yaml:"r_com_k" json:"r_com_k"`
	Tk    float64 `yaml:"T_k" json:"T_k"`
	R3    float64 `yaml:"r3" json:"r3"`
	L1    float64 `yaml:"L1" json:"L1"`

	// pivot distances
	RAK float64 `yaml:"r_A_K" json:"r_A_K"`
	RBA float64 `yaml:"r_b_A" json:"r_b_A"`

	G float64 `yaml:"g" json:"g"`
}

// Reference returns the reference configuration of the linkage.
func Reference() Params {
	return Params{
		W3: 12.093, M3: 5, RComB: 0.362, Tc: 266, R1: 0.138, L3: 0.418, MCom3: 6.233,
		W2: 29.688, MCom2: 3.0263, RComA: 0.126847, Ta: 372.4, L2: 0.377, R2: -0.126847,
		W1: 21.915, MCom1: 2.234, RComK: 0.3605, Tk: 438.9, R3: 0.3605, L1: 0.420,
		RAK: 0.420, RBA: 0.377,
		G: DefaultGravity,
	}
}

// Field describes one recognized parameter.
type Field struct {
	Name string
	Unit string
	Arm  int // 1..3, 0 for shared values
	Desc string
	ptr  func(*Params) *float64
}

var fields = []Field{
	{"W3", "N", 3, "deadweight carried by arm 3", func(p *Params) *float64 { return &p.W3 }},
	{"M3", "kg", 3, "deadweight mass", func(p *Params) *float64 { return &p.M3 }},
	{"r_com_b", "m", 3, "arm 3 COM distance from pivot b", func(p *Params) *float64 { return &p.RComB }},
	{"T_c", "N·m", 3, "motor torque at joint c", func(p *Params) *float64 { return &p.Tc }},
	{"r1", "m", 3, "deadweight lever arm", func(p *Params) *float64 { return &p.R1 }},
	{"L3", "m", 3, "arm 3 length", func(p *Params) *float64 { return &p.L3 }},
	{"m_com_3", "kg", 3, "arm 3 mass", func(p *Params) *float64 { return &p.MCom3 }},
	{"W2", "N", 2, "arm 2 weight", func(p *Params) *float64 { return &p.W2 }},
	{"m_com_2", "kg", 2, "arm 2 mass", func(p *Params) *float64 { return &p.MCom2 }},
	{"r_com_A", "m", 2, "arm 2 COM distance from pivot A", func(p *Params) *float64 { return &p.RComA }},
	{"T_a", "N·m", 2, "motor torque at joint A", func(p *Params) *float64 { return &p.Ta }},
	{"L2", "m", 2, "arm 2 length", func(p *Params) *float64 { return &p.L2 }},
	{"r2", "m", 2, "arm 2 weight lever arm", func(p *Params) *float64 { return &p.R2 }},
	{"W1", "N", 1, "arm 1 weight", func(p *Params) *float64 { return &p.W1 }},
	{"m_com_1", "kg", 1, "arm 1 mass", func(p *Params) *float64 { return &p.MCom1 }},
	{"r_com_k", "m", 1, "arm 1 COM distance from pivot K", func(p *Params) *float64 { return &p.RComK }},
	{"T_k", "N·m", 1, "motor torque at joint K", func(p *Params) *float64 { return &p.Tk }},
	{"r3", "m", 1, "arm 1 weight lever arm", func(p *Params) *float64 { return &p.R3 }},
	{"L1", "m", 1, "arm 1 length", func(p *Params) *float64 { return &p.L1 }},
	{"r_A_K", "m", 0, "distance from pivot K to pivot A", func(p *Params) *float64 { return &p.RAK }},
	{"r_b_A", "m", 0, "distance from pivot A to pivot b", func(p *Params) *float64 { return &p.RBA }},
	{"g", "m/s²", 0, "gravitational acceleration", func(p *Params) *float64 { return &p.G }},
}

// Fields returns the recognized parameters in their canonical order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

func FieldNames() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func LookupField(name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (p Params) Get(name string) (float64, error) {
	f, ok := LookupField(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	return *f.ptr(&p), nil
}

// With returns a copy of p with one parameter replaced; p itself is untouched.
func (p Params) With(name string, value float64) (Params, error) {
	f, ok := LookupField(name)
	if !ok {
		return p, fmt.Errorf("%w: %q (known: %v)", ErrUnknownParameter, name, sortedNames())
	}
	*f.ptr(&p) = value
	return p, nil
}

func (p Params) Map() map[string]float64 {
	m := make(map[string]float64, len(fields))
	for _, f := range fields {
		m[f.Name] = *f.ptr(&p)
	}
	return m
}

// Validate rejects NaN and Inf values. Zero and negative values are allowed;
// whether they leave the system solvable is the solver's call.
func (p Params) Validate() error {
	for _, f := range fields {
		v := *f.ptr(&p)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidParameter, f.Name, v)
		}
	}
	return nil
}

func sortedNames() []string {
	names := FieldNames()
	sort.Strings(names)
	return names
}
