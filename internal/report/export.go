package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/threelink/internal/equilibrium"
	"github.com/san-kum/threelink/internal/mechanism"
)

type Quantity struct {
	Name  string  `json:"name" yaml:"name"`
	Kind  string  `json:"kind" yaml:"kind"`
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit" yaml:"unit"`
}

type ResidualData struct {
	Equation  int     `json:"equation" yaml:"equation"`
	Label     string  `json:"label" yaml:"label"`
	Residual  float64 `json:"residual" yaml:"residual"`
	Scaled    float64 `json:"scaled" yaml:"scaled"`
	Satisfied bool    `json:"satisfied" yaml:"satisfied"`
}

type ExportData struct {
	Solver       string           `json:"solver" yaml:"solver"`
	Tolerance    float64          `json:"tolerance" yaml:"tolerance"`
	Parameters   mechanism.Params `json:"parameters" yaml:"parameters"`
	Solution     []Quantity       `json:"solution" yaml:"solution"`
	Verification []ResidualData   `json:"verification" yaml:"verification"`
	AllSatisfied bool             `json:"all_satisfied" yaml:"all_satisfied"`
}

func NewExportData(res *equilibrium.Result) ExportData {
	data := ExportData{
		Solver:       res.Solver,
		Tolerance:    res.Verification.Tolerance,
		Parameters:   res.Params,
		Solution:     make([]Quantity, 0, mechanism.NumUnknowns),
		Verification: make([]ResidualData, 0, len(res.Verification.Residuals)),
		AllSatisfied: res.Verification.AllSatisfied(),
	}

	for _, u := range mechanism.Unknowns() {
		data.Solution = append(data.Solution, Quantity{
			Name:  u.String(),
			Kind:  u.Kind().String(),
			Value: res.Value(u),
			Unit:  u.Unit(),
		})
	}
	for _, r := range res.Verification.Residuals {
		data.Verification = append(data.Verification, ResidualData{
			Equation:  r.Index,
			Label:     r.Label,
			Residual:  r.Value,
			Scaled:    scaled(r),
			Satisfied: r.Satisfied,
		})
	}
	return data
}

func ExportJSON(w io.Writer, res *equilibrium.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(res))
}

func ExportYAML(w io.Writer, res *equilibrium.Result) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(NewExportData(res)); err != nil {
		return err
	}
	return encoder.Close()
}

// Write renders res in one of text, json or yaml.
func Write(w io.Writer, format string, res *equilibrium.Result) error {
	switch format {
	case "", "text":
		return WriteText(w, res)
	case "json":
		return ExportJSON(w, res)
	case "yaml":
		return ExportYAML(w, res)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
