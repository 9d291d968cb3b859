package tests

import (
	"math/rand"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func randomBytes(n int) []byte {
	a := make([]byte, n)
	rand.Read(a) //nolint:staticcheck // SA1019: rand.Read has been deprecated since Go 1.20
	return a
}

func randomHash() util.Uint160 {
	var h util.Uint160
	copy(h[:], randomBytes(util.Uint160Size))
	return h
}

// hashArray packs account hashes the way contracts return hash lists.
func hashArray(hashes ...util.Uint160) stackitem.Item {
	arr := make([]stackitem.Item, len(hashes))
	for i := range hashes {
		arr[i] = stackitem.NewByteArray(hashes[i].BytesBE())
	}
	return stackitem.NewArray(arr)
}

// transferGAS moves amount of GAS from the validator account to the given
// account or contract.
func transferGAS(t *testing.T, e *neotest.Executor, to util.Uint160, amount int64) {
	gasHash := e.NativeHash(t, nativenames.Gas)

	vc := e.CommitteeInvoker(gasHash).WithSigners(e.Validator)
	vc.Invoke(t, true, "transfer",
		e.Validator.ScriptHash(), to, amount, nil)
}
