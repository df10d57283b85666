//go:build avr

package usart

import (
	"runtime/volatile"
	"unsafe"
)

type mmio struct{}

func (mmio) Load(r Reg) uint8 {
	return (*volatile.Register8)(unsafe.Pointer(uintptr(r))).Get()
}

func (mmio) Store(r Reg, v uint8) {
	(*volatile.Register8)(unsafe.Pointer(uintptr(r))).Set(v)
}

// MMIO returns the memory-mapped register window of the running part.
func MMIO() Registers { return mmio{} }

// USART0 is the on-chip port.
var USART0 = New(MMIO())
