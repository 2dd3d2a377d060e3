package domain

import (
	"slices"
	"strings"
)

// ToolchainName names a supported compiler family.
type ToolchainName string

const (
	// ToolchainGCC is the GNU compiler collection.
	ToolchainGCC ToolchainName = "gcc"
	// ToolchainClang is the LLVM C frontend.
	ToolchainClang ToolchainName = "clang"
	// ToolchainAVRGCC is the GNU toolchain for AVR microcontrollers.
	ToolchainAVRGCC ToolchainName = "avr-gcc"
)

// KnownToolchains lists every toolchain with a compiler driver.
var KnownToolchains = []ToolchainName{ToolchainGCC, ToolchainClang, ToolchainAVRGCC}

// ParseToolchain lower-cases s and reports whether it names a known toolchain.
func ParseToolchain(s string) (ToolchainName, bool) {
	name := ToolchainName(strings.ToLower(s))
	return name, slices.Contains(KnownToolchains, name)
}

func (t ToolchainName) String() string {
	return string(t)
}
