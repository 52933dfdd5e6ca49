package mangle

import "fmt"

// ValueWitness enumerates the per-type value lifecycle operations a
// witness table carries. Size, Alignment and Stride are layout values
// rather than functions and have no symbol of their own.
type ValueWitness uint8

const (
	WitnessAllocateBuffer ValueWitness = iota
	WitnessAssignWithCopy
	WitnessAssignWithTake
	WitnessDeallocateBuffer
	WitnessDestroy
	WitnessDestroyBuffer
	WitnessInitializeBufferWithCopyOfBuffer
	WitnessInitializeBufferWithCopy
	WitnessInitializeWithCopy
	WitnessInitializeBufferWithTake
	WitnessInitializeWithTake
	WitnessProjectBuffer

	WitnessSize
	WitnessAlignment
	WitnessStride
)

// valueWitnessCodes holds the fixed two-letter selector per witness.
// The capitals correspond roughly to the positions of buffers (as
// opposed to objects) in the arguments.
var valueWitnessCodes = [...]string{
	WitnessAllocateBuffer:                   "al",
	WitnessAssignWithCopy:                   "ac",
	WitnessAssignWithTake:                   "at",
	WitnessDeallocateBuffer:                 "de",
	WitnessDestroy:                          "xx",
	WitnessDestroyBuffer:                    "XX",
	WitnessInitializeBufferWithCopyOfBuffer: "CP",
	WitnessInitializeBufferWithCopy:         "Cp",
	WitnessInitializeWithCopy:               "cp",
	WitnessInitializeBufferWithTake:         "Tk",
	WitnessInitializeWithTake:               "tk",
	WitnessProjectBuffer:                    "pr",
}

// Code returns the witness's two-letter selector. Layout witnesses
// and out-of-range values are fatal.
func (w ValueWitness) Code() string {
	switch w {
	case WitnessSize, WitnessAlignment, WitnessStride:
		panic("mangle: not a function witness")
	}
	if int(w) >= len(valueWitnessCodes) {
		panic(fmt.Sprintf("mangle: bad value witness %d", w))
	}
	return valueWitnessCodes[w]
}
