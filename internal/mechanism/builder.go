package mechanism

import "github.com/san-kum/threelink/internal/linsys"

// Equation labels, in system order.
const (
	KinematicA = "kinematic A"
	KinematicB = "kinematic b"
	Arm3Force  = "arm 3 force"
	Arm3Moment = "arm 3 moment"
	Arm2Force  = "arm 2 force"
	Arm2Moment = "arm 2 moment"
	Arm1Force  = "arm 1 force"
	Arm1Moment = "arm 1 moment"
)

const NumEquations = 8

// Labels returns the equation labels in system order.
func Labels() []string {
	return []string{KinematicA, KinematicB, Arm3Force, Arm3Moment, Arm2Force, Arm2Moment, Arm1Force, Arm1Moment}
}

// Build formulates the eight linear equations of the linkage, each of the
// form expression = 0: two kinematic constraints followed by force and
// moment balance for arm 3, arm 2 and arm 1.
func Build(p Params) *linsys.System {
	sys := linsys.NewSystem(UnknownNames()...)
	t := func(u Unknown, c float64) linsys.Term { return linsys.T(int(u), c) }

	// a_A - alpha_k*r_A_K
	sys.Add(KinematicA, 0,
		t(AccA, 1),
		t(AlphaK, -p.RAK))

	// a_b - (alpha_k*r_A_K + alpha_A*r_b_A)
	sys.Add(KinematicB, 0,
		t(AccB, 1),
		t(AlphaK, -p.RAK),
		t(AlphaA, -p.RBA))

	// F_cb - W3 - M3*g - m_com_3*(a_b + alpha_b*r_com_b)
	sys.Add(Arm3Force, -p.W3-p.M3*p.G,
		t(FCB, 1),
		t(AccB, -p.MCom3),
		t(AlphaB, -p.MCom3*p.RComB))

	// T_c - W3*r1 - M3*g*L3 - m_com_3*r_com_b²*alpha_b
	sys.Add(Arm3Moment, p.Tc-p.W3*p.R1-p.M3*p.G*p.L3,
		t(AlphaB, -p.MCom3*p.RComB*p.RComB))

	// -W2 - F_cb + F_ba - m_com_2*(a_A + alpha_A*r_com_A)
	sys.Add(Arm2Force, -p.W2,
		t(FCB, -1),
		t(FBA, 1),
		t(AccA, -p.MCom2),
		t(AlphaA, -p.MCom2*p.RComA))

	// T_a - F_cb*L2 + W2*r2 - m_com_2*r2²*alpha_A
	sys.Add(Arm2Moment, p.Ta+p.W2*p.R2,
		t(FCB, -p.L2),
		t(AlphaA, -p.MCom2*p.R2*p.R2))

	// F_b - W1 - F_ba - m_com_1*alpha_k*r_com_k
	sys.Add(Arm1Force, -p.W1,
		t(FB, 1),
		t(FBA, -1),
		t(AlphaK, -p.MCom1*p.RComK))

	// T_k - W1*r3 - F_ba*L1 - m_com_1*r3²*alpha_k
	sys.Add(Arm1Moment, p.Tk-p.W1*p.R3,
		t(FBA, -p.L1),
		t(AlphaK, -p.MCom1*p.R3*p.R3))

	return sys
}
