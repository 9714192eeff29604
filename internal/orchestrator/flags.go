package orchestrator

// Flags is the verbosity/diagnostic bitmask of spec.md §6.1, composed the
// same way original_source/nyla/compiler.h's compiler_flags enum is: one
// bit per independently toggleable CLI switch.
type Flags uint32

const (
	FlagVerbose Flags = 1 << iota
	FlagDisplayAST
	FlagDisplayStages
	FlagDisplaySourcePaths
	FlagDisplayLLVMIR
	FlagDisplayTimes
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }
