package lockbench

// Role is the part a worker plays in a mixed workload.
type Role uint8

const (
	// Reader runs the read body under the reader side of the strategy.
	Reader Role = iota
	// Writer runs the write body under the writer side. At most one
	// worker per run holds this role.
	Writer
)

// String returns "reader" or "writer".
func (r Role) String() string {
	if r == Writer {
		return "writer"
	}
	return "reader"
}

// RoleFor maps a worker ordinal to its role: ordinal 0 writes, every other
// ordinal reads. The mapping is identical across strategies and worker
// counts so that configurations stay comparable.
func RoleFor(ordinal int) Role {
	if ordinal == 0 {
		return Writer
	}
	return Reader
}
