// Package stack implements the bounded LIFO operand stack of signed 16-bit
// values that the interpreter executes against.
package stack

import "github.com/forthkit/goforth/internal/langerr"

// DefaultCapacityBytes is the capacity used when a Stack is constructed
// without an explicit size. It is expressed in bytes, matching the unit
// the CLI's stack-size=N argument takes.
const DefaultCapacityBytes = 128

// Stack is an ordered sequence of int16 values with a fixed element
// capacity. The capacity is supplied in bytes and converted to an element
// count by integer division by 2, since each element is 16 bits wide.
type Stack struct {
	data []int16
	cap  int
}

// New creates a Stack with the given capacity in bytes. A capacityBytes of
// 0 or less selects DefaultCapacityBytes.
func New(capacityBytes int) *Stack {
	if capacityBytes <= 0 {
		capacityBytes = DefaultCapacityBytes
	}
	return &Stack{
		data: make([]int16, 0, capacityBytes/2),
		cap:  capacityBytes / 2,
	}
}

// Size returns the number of elements currently on the stack.
func (s *Stack) Size() int {
	return len(s.data)
}

// Capacity returns the maximum number of elements the stack can hold.
func (s *Stack) Capacity() int {
	return s.cap
}

// Push appends v to the top of the stack.
func (s *Stack) Push(v int16) error {
	if len(s.data) >= s.cap {
		return langerr.New(langerr.Overflow, "")
	}
	s.data = append(s.data, v)
	return nil
}

// Drop removes and returns the top element.
func (s *Stack) Drop() (int16, error) {
	if len(s.data) == 0 {
		return 0, langerr.New(langerr.Underflow, "")
	}
	n := len(s.data) - 1
	v := s.data[n]
	s.data = s.data[:n]
	return v, nil
}

// Top returns the top element without removing it.
func (s *Stack) Top() (int16, error) {
	if len(s.data) == 0 {
		return 0, langerr.New(langerr.Underflow, "")
	}
	return s.data[len(s.data)-1], nil
}

// Dup pushes a copy of the top element.
func (s *Stack) Dup() error {
	if len(s.data) == 0 {
		return langerr.New(langerr.Underflow, "")
	}
	if len(s.data) >= s.cap {
		return langerr.New(langerr.Overflow, "")
	}
	top := s.data[len(s.data)-1]
	s.data = append(s.data, top)
	return nil
}

// Swap exchanges the top two elements.
func (s *Stack) Swap() error {
	n := len(s.data)
	if n < 2 {
		return langerr.New(langerr.Underflow, "")
	}
	s.data[n-1], s.data[n-2] = s.data[n-2], s.data[n-1]
	return nil
}

// Over pushes a copy of the second-from-top element.
func (s *Stack) Over() error {
	n := len(s.data)
	if n < 2 {
		return langerr.New(langerr.Underflow, "")
	}
	if n >= s.cap {
		return langerr.New(langerr.Overflow, "")
	}
	s.data = append(s.data, s.data[n-2])
	return nil
}

// Rot rotates the top three elements so that the third-from-top becomes
// the new top: a b c -> b c a.
func (s *Stack) Rot() error {
	n := len(s.data)
	if n < 3 {
		return langerr.New(langerr.Underflow, "")
	}
	a, b, c := s.data[n-3], s.data[n-2], s.data[n-1]
	s.data[n-3], s.data[n-2], s.data[n-1] = b, c, a
	return nil
}

// Elements returns a copy of the stack contents, bottom first, top last.
// Used by the persistence layer to snapshot the stack after each line.
func (s *Stack) Elements() []int16 {
	out := make([]int16, len(s.data))
	copy(out, s.data)
	return out
}
