// Package register provides a generic fixed-width unsigned register with
// mutators that report carry, borrow and shift-out flags the way the CHIP-8
// arithmetic opcodes expect them.
package register

import "fmt"

// Unsigned is the set of storage widths a register can be instantiated with.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Register is a single unsigned storage cell. The zero value is a valid
// register holding 0. All arithmetic wraps at the storage width.
type Register[T Unsigned] struct {
	label string
	value T
}

// New returns a labelled register initialised to the given value.
func New[T Unsigned](label string, value T) Register[T] {
	return Register[T]{
		label: label,
		value: value,
	}
}

// String returns the register label and value formatted as hex.
func (r Register[T]) String() string {
	digits := 0
	for mask := ^T(0); mask != 0; mask >>= 4 {
		digits++
	}
	return fmt.Sprintf("%s=$%0*X", r.label, digits, uint64(r.value))
}

// Get returns the current value of the register.
func (r Register[T]) Get() T {
	return r.value
}

// Set overwrites the value of the register.
func (r *Register[T]) Set(value T) {
	r.value = value
}

// Add adds the value to the register, wrapping on overflow.
func (r *Register[T]) Add(value T) {
	r.value += value
}

// Subtract subtracts the value of another register, wrapping on underflow.
func (r *Register[T]) Subtract(other Register[T]) {
	r.value -= other.value
}

// Or stores the bitwise OR of the register and value.
func (r *Register[T]) Or(value T) {
	r.value |= value
}

// And stores the bitwise AND of the register and value.
func (r *Register[T]) And(value T) {
	r.value &= value
}

// Xor stores the bitwise XOR of the register and value.
func (r *Register[T]) Xor(value T) {
	r.value ^= value
}

// AddWithCarry adds the value to the register and returns 1 if the sum fit
// into the register width, or 0 if it overflowed and was truncated.
func (r *Register[T]) AddWithCarry(value T) T {
	sum := r.value + value
	overflow := sum < r.value
	r.value = sum
	if overflow {
		return 0
	}
	return 1
}

// SubWithBorrow subtracts the value from the register and returns 1 if the
// subtraction had to borrow, which happens when value is larger than the
// current register content.
func (r *Register[T]) SubWithBorrow(value T) T {
	var borrow T
	if value > r.value {
		borrow = 1
	}
	r.value -= value
	return borrow
}

// Shr stores value shifted right by count bits and returns the least
// significant bit of value before the shift.
func (r *Register[T]) Shr(value, count T) T {
	flag := value & 1
	r.value = value >> count
	return flag
}

// Shl stores value shifted left by count bits and returns the most
// significant bit of value before the shift.
func (r *Register[T]) Shl(value, count T) T {
	var flag T
	if value&topBit[T]() != 0 {
		flag = 1
	}
	r.value = value << count
	return flag
}

// topBit returns a mask with only the most significant bit of T set.
func topBit[T Unsigned]() T {
	return ^(^T(0) >> 1)
}
