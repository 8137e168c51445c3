package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.True(s.Empty())
	assert.False(s.Full())

	assert.NoError(s.Push(0x234))
	assert.False(s.Empty())
	assert.Equal(1, s.Pointer)
	assert.Equal(Address(0x234), s.Data[0])

	top, ok := s.Peek()
	assert.True(ok)
	assert.Equal(Address(0x234), top)
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.NoError(s.Push(0x202))
	assert.NoError(s.Push(0xABC))

	val, err := s.Pop()
	assert.NoError(err)
	assert.Equal(Address(0xABC), val)
	assert.Equal(1, s.Pointer)

	val, err = s.Pop()
	assert.NoError(err)
	assert.Equal(Address(0x202), val)
	assert.Equal(0, s.Pointer)
}

func TestStack_Pop_Empty(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	_, err := s.Pop()
	assert.ErrorIs(err, ErrStackUnderflow)

	_, ok := s.Peek()
	assert.False(ok)
}

func TestStack_Overflow(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	for n := range STACK_LIMIT {
		assert.NoError(s.Push(Address(0x200+2*n)))
	}
	assert.True(s.Full())

	err := s.Push(0x300)
	assert.ErrorIs(err, ErrStackOverflow)
	assert.Equal(STACK_LIMIT, s.Pointer)

	top, _ := s.Peek()
	assert.Equal(Address(0x200+2*(STACK_LIMIT-1)), top)
}

func TestStack_Reset(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	s.Push(0x123)
	s.Reset()
	assert.True(s.Empty())
	assert.Equal(Address(0), s.Data[0])
}
