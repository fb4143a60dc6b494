package equilibrium

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/threelink/internal/linsys"
	m "github.com/san-kum/threelink/internal/mechanism"
)

// Captured from an exact rational solve of the reference configuration.
var referenceSolution = map[m.Unknown]float64{
	m.FCB:    964.6366545910288,
	m.FBA:    1028.756170932506,
	m.FB:     1047.681020331528,
	m.AlphaB: 298.5174906048778,
	m.AlphaA: 101.98756768285763,
	m.AlphaK: -3.7128262385225392,
	m.AccA:   -1.5593870201794666,
	m.AccB:   36.88992599625786,
}

func solvers() []string {
	return NewRegistry().ListSolvers()
}

func TestSolveReference(t *testing.T) {
	for _, name := range solvers() {
		t.Run(name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Solver = name

			res, err := Solve(m.Reference(), opts)
			if err != nil {
				t.Fatalf("solve failed: %v", err)
			}
			if res.Solver != name {
				t.Errorf("expected solver %s, got %s", name, res.Solver)
			}

			for u, want := range referenceSolution {
				if got := res.Value(u); math.Abs(got-want) > 1e-8 {
					t.Errorf("%s: expected %.12f, got %.12f", u, want, got)
				}
			}

			if len(res.Verification.Residuals) != m.NumEquations {
				t.Fatalf("expected %d residuals, got %d", m.NumEquations, len(res.Verification.Residuals))
			}
			for _, r := range res.Verification.Residuals {
				if math.Abs(r.Value) >= 1e-10 || !r.Satisfied {
					t.Errorf("equation %d (%s): residual %e", r.Index, r.Label, r.Value)
				}
			}
		})
	}
}

func TestKinematicConstraintsHold(t *testing.T) {
	p := m.Reference()
	res, err := Solve(p, DefaultOptions())
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	aA := res.Value(m.AlphaK) * p.RAK
	if math.Abs(res.Value(m.AccA)-aA) > 1e-10 {
		t.Errorf("a_A = %v, want alpha_k*r_A_K = %v", res.Value(m.AccA), aA)
	}

	ab := res.Value(m.AlphaK)*p.RAK + res.Value(m.AlphaA)*p.RBA
	if math.Abs(res.Value(m.AccB)-ab) > 1e-10 {
		t.Errorf("a_b = %v, want %v", res.Value(m.AccB), ab)
	}

	if !res.Residual(0).Satisfied || !res.Residual(1).Satisfied {
		t.Error("kinematic residuals should be satisfied")
	}
}

func TestDeadweightChangesArm3(t *testing.T) {
	ref, err := Solve(m.Reference(), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	p, _ := m.Reference().With("M3", 0)
	light, err := Solve(p, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	if ref.Value(m.FCB) == light.Value(m.FCB) {
		t.Error("F_cb should depend on M3")
	}
	if ref.Value(m.AlphaB) == light.Value(m.AlphaB) {
		t.Error("alpha_b should depend on M3")
	}
	if math.Abs(light.Value(m.AlphaB)-323.6190686890313) > 1e-8 {
		t.Errorf("unexpected alpha_b with M3=0: %v", light.Value(m.AlphaB))
	}
	if !light.Verification.AllSatisfied() {
		t.Error("expected all residuals satisfied")
	}
}

func TestCollapsedPivots(t *testing.T) {
	p := m.Reference()
	p.RAK = 0
	p.RBA = 0

	want := map[m.Unknown]float64{
		m.FCB:    734.7017458563536,
		m.FBA:    1486.926408734898,
		m.FB:     972.0606898204537,
		m.AlphaB: 298.5174906048778,
		m.AlphaA: 1882.2084147851626,
		m.AlphaK: -666.5127625567842,
		m.AccA:   0,
		m.AccB:   0,
	}

	for _, name := range solvers() {
		opts := DefaultOptions()
		opts.Solver = name
		res, err := Solve(p, opts)
		if err != nil {
			t.Fatalf("%s: expected a unique solution, got %v", name, err)
		}
		for u, w := range want {
			if got := res.Value(u); math.Abs(got-w) > 1e-8 {
				t.Errorf("%s %s: expected %v, got %v", name, u, w, got)
			}
		}
	}
}

func TestSingularSystems(t *testing.T) {
	massless := m.Reference()
	massless.MCom3 = 0

	free := massless
	free.W3, free.M3, free.Tc = 0, 0, 0

	tests := []struct {
		name   string
		params m.Params
		want   error
	}{
		{"massless tip", massless, linsys.ErrUnsolvable},
		{"free tip", free, linsys.ErrUnderdetermined},
	}

	for _, tt := range tests {
		for _, solver := range solvers() {
			t.Run(tt.name+"/"+solver, func(t *testing.T) {
				opts := DefaultOptions()
				opts.Solver = solver

				res, err := Solve(tt.params, opts)
				if !errors.Is(err, tt.want) {
					t.Fatalf("expected %v, got %v", tt.want, err)
				}
				if res != nil {
					t.Error("expected no partial result")
				}

				var se *linsys.SystemError
				if !errors.As(err, &se) {
					t.Fatalf("expected *SystemError, got %T", err)
				}
				if se.Rank >= m.NumUnknowns {
					t.Errorf("expected rank below %d, got %d", m.NumUnknowns, se.Rank)
				}
			})
		}
	}
}

func TestFreeTipNamesFreeUnknown(t *testing.T) {
	p := m.Reference()
	p.MCom3, p.W3, p.M3, p.Tc = 0, 0, 0, 0

	_, err := Solve(p, Options{Solver: "exact"})
	var se *linsys.SystemError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SystemError, got %v", err)
	}
	if len(se.Free) != 1 || se.Free[0] != "alpha_b" {
		t.Errorf("expected alpha_b free, got %v", se.Free)
	}
}

func TestSolveRejectsBadInput(t *testing.T) {
	p, _ := m.Reference().With("g", math.NaN())
	if _, err := Solve(p, DefaultOptions()); !errors.Is(err, m.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}

	if _, err := Solve(m.Reference(), Options{Solver: "qr"}); err == nil {
		t.Error("expected error for unknown solver")
	}
}

func TestToleranceIsNotFatal(t *testing.T) {
	res, err := Solve(m.Reference(), Options{Tolerance: 1e-300})
	if err != nil {
		t.Fatalf("tolerance must not abort the run: %v", err)
	}
	if res.Verification.Tolerance != 1e-300 {
		t.Errorf("expected tolerance 1e-300, got %g", res.Verification.Tolerance)
	}
	if len(res.Verification.Residuals) != m.NumEquations {
		t.Error("every equation should still be checked")
	}
}

func TestSolveLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, err := Solve(m.Reference(), Options{Logger: logger}); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, msg := range []string{"built equations", "solved", "verified"} {
		if !strings.Contains(out, msg) {
			t.Errorf("expected log %q in %q", msg, out)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if got := r.ListSolvers(); len(got) != 2 || got[0] != "exact" || got[1] != "lu" {
		t.Errorf("unexpected solvers: %v", got)
	}
	if _, err := r.GetSolver("gauss"); err == nil {
		t.Error("expected error for unknown solver")
	}
}
