package rules

// Offset is a neighbour position relative to the centre cell with its weight.
type Offset struct {
	DRow, DCol int
	Weight     int
}

// Kernel is the neighbour weight pattern for a topology. The centre is never
// part of it.
type Kernel struct {
	Offsets []Offset
}

var (
	mooreKernel = Kernel{Offsets: []Offset{
		{-1, -1, 1}, {-1, 0, 1}, {-1, 1, 1},
		{0, -1, 1}, {0, 1, 1},
		{1, -1, 1}, {1, 0, 1}, {1, 1, 1},
	}}
	vonNeumannKernel = Kernel{Offsets: []Offset{
		{-1, 0, 1},
		{0, -1, 1}, {0, 1, 1},
		{1, 0, 1},
	}}
)

// KernelFor returns the kernel of t. The returned value must not be mutated.
func KernelFor(t Topology) Kernel {
	if t == VonNeumann {
		return vonNeumannKernel
	}
	return mooreKernel
}

// Matrix returns the kernel as a dense 3x3 weight matrix centred on [1][1].
func (k Kernel) Matrix() [3][3]int {
	var m [3][3]int
	for _, o := range k.Offsets {
		m[o.DRow+1][o.DCol+1] = o.Weight
	}
	return m
}

// Sum returns the total weight, which is the largest count the kernel yields.
func (k Kernel) Sum() int {
	s := 0
	for _, o := range k.Offsets {
		s += o.Weight
	}
	return s
}
