package mechanism

// Unknown identifies one of the eight quantities solved for.
type Unknown int

const (
	FCB    Unknown = iota // reaction force between arm 3 and arm 2
	FBA                   // reaction force between arm 2 and arm 1
	FB                    // force at the base pivot
	AlphaB                // angular acceleration of arm 3
	AlphaA                // angular acceleration of arm 2
	AlphaK                // angular acceleration of arm 1
	AccA                  // linear acceleration of pivot A
	AccB                  // linear acceleration of pivot b

	NumUnknowns = 8
)

// Kind groups unknowns by physical quantity.
type Kind int

const (
	Angular Kind = iota
	Linear
	Force
)

var unknownInfo = [NumUnknowns]struct {
	name string
	kind Kind
}{
	FCB:    {"F_cb", Force},
	FBA:    {"F_ba", Force},
	FB:     {"F_b", Force},
	AlphaB: {"alpha_b", Angular},
	AlphaA: {"alpha_A", Angular},
	AlphaK: {"alpha_k", Angular},
	AccA:   {"a_A", Linear},
	AccB:   {"a_b", Linear},
}

func (u Unknown) String() string {
	if u < 0 || u >= NumUnknowns {
		return "unknown"
	}
	return unknownInfo[u].name
}

func (u Unknown) Kind() Kind {
	return unknownInfo[u].kind
}

func (u Unknown) Unit() string {
	return u.Kind().Unit()
}

func (k Kind) Unit() string {
	switch k {
	case Angular:
		return "rad/s²"
	case Linear:
		return "m/s²"
	default:
		return "N"
	}
}

func (k Kind) String() string {
	switch k {
	case Angular:
		return "angular acceleration"
	case Linear:
		return "linear acceleration"
	default:
		return "force"
	}
}

// Unknowns returns all unknowns in solve order.
func Unknowns() []Unknown {
	return []Unknown{FCB, FBA, FB, AlphaB, AlphaA, AlphaK, AccA, AccB}
}

func UnknownNames() []string {
	names := make([]string, NumUnknowns)
	for i, u := range Unknowns() {
		names[i] = u.String()
	}
	return names
}

// ByKind returns the unknowns of one kind, in solve order.
func ByKind(k Kind) []Unknown {
	var out []Unknown
	for _, u := range Unknowns() {
		if u.Kind() == k {
			out = append(out, u)
		}
	}
	return out
}

func ParseUnknown(name string) (Unknown, bool) {
	for _, u := range Unknowns() {
		if u.String() == name {
			return u, true
		}
	}
	return 0, false
}
