package cpu

const (
	STACK_LIMIT = 16 // Maximum stack depth
)

// Stack of subroutine return addresses.
// Pointer is the current depth: the next push stores at Data[Pointer].
type Stack struct {
	Data    [STACK_LIMIT]Address
	Pointer int
}

func (s *Stack) Push(addr Address) (err error) {
	if s.Full() {
		err = ErrStackOverflow
		return
	}

	s.Data[s.Pointer] = addr
	s.Pointer++

	return
}

func (s *Stack) Pop() (addr Address, err error) {
	if s.Empty() {
		err = ErrStackUnderflow
		return
	}

	s.Pointer--
	addr = s.Data[s.Pointer]

	return
}

func (s *Stack) Empty() bool {
	return s.Pointer == 0
}

func (s *Stack) Full() bool {
	return s.Pointer == STACK_LIMIT
}

func (s *Stack) Peek() (addr Address, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[s.Pointer-1], true
}

func (s *Stack) Reset() {
	clear(s.Data[:])
	s.Pointer = 0
}
