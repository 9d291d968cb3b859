package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

var (
	// ErrOwnerWitnessFailed appears when the method must be
	// called by the contract owner but was not.
	ErrOwnerWitnessFailed = "owner witness check failed"
	// ErrAdminWitnessFailed appears when the method must be
	// called by one of the contract admins but was not.
	ErrAdminWitnessFailed = "admin witness check failed"
	// ErrWitnessFailed appears when the method must be called
	// using certain account but was not.
	ErrWitnessFailed = "witness check failed"
	// ErrAlreadyInitialized appears on repeated init calls.
	ErrAlreadyInitialized = "contract is already initialized"
)

// CheckOwnerWitness checks witness of the passed caller.
// It panics with ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(caller interop.Hash160) {
	checkWitnessWithPanic(caller, ErrOwnerWitnessFailed)
}

// CheckWitness checks witness of the passed caller.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(caller interop.Hash160) {
	checkWitnessWithPanic(caller, ErrWitnessFailed)
}

// CheckAnyWitness checks whether any of the passed accounts witnessed the
// invocation. It panics with ErrAdminWitnessFailed message if none did.
func CheckAnyWitness(callers []interop.Hash160) {
	for i := range callers {
		if runtime.CheckWitness(callers[i]) {
			return
		}
	}

	panic(ErrAdminWitnessFailed)
}

func checkWitnessWithPanic(caller interop.Hash160, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}
