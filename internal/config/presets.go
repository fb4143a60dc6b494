package config

import (
	"sort"

	"github.com/san-kum/threelink/internal/mechanism"
)

type Preset struct {
	Description string
	Params      mechanism.Params
}

var Presets = map[string]Preset{
	"reference": {
		Description: "reference arm configuration",
		Params:      mechanism.Reference(),
	},
	"no-deadweight": {
		Description: "reference arm without the deadweight mass",
		Params:      with(func(p *mechanism.Params) { p.M3 = 0 }),
	},
	"collapsed-pivots": {
		Description: "pivot distances r_A_K and r_b_A set to zero",
		Params:      with(func(p *mechanism.Params) { p.RAK, p.RBA = 0, 0 }),
	},
	"massless-tip": {
		Description: "arm 3 without mass; inconsistent, not solvable",
		Params:      with(func(p *mechanism.Params) { p.MCom3 = 0 }),
	},
	"free-tip": {
		Description: "unloaded massless arm 3; alpha_b is undetermined",
		Params: with(func(p *mechanism.Params) {
			p.MCom3, p.W3, p.M3, p.Tc = 0, 0, 0, 0
		}),
	},
}

func with(edit func(p *mechanism.Params)) mechanism.Params {
	p := mechanism.Reference()
	edit(&p)
	return p
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
