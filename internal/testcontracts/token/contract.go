package token

/*
	Minimal fungible token used by pool tests. It keeps plain per-account
	balances, implements the transfer-and-notify deposit protocol on top of
	them and records registration payments received from the pool.
*/

import (
	"github.com/memepool/pool-contracts/common"
	"github.com/memepool/pool-contracts/pool"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

var registeredPrefix = []byte("registered")

// Mint credits the account with the given amount. Test helper, no
// authorization.
func Mint(to interop.Hash160, amount int) {
	ctx := storage.GetContext()
	setBalance(ctx, to, balanceOf(ctx, to)+amount)
}

// BalanceOf returns the token balance of the account.
func BalanceOf(acc interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return balanceOf(ctx, acc)
}

// Transfer moves amount between accounts. It can be invoked by the owner of
// the source account or by the source account contract itself.
func Transfer(from, to interop.Hash160, amount int, data interface{}) bool {
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len || amount < 0 {
		panic("transfer: bad arguments")
	}

	if !authorized(from) {
		return false
	}

	ctx := storage.GetContext()

	fromBalance := balanceOf(ctx, from)
	if fromBalance < amount {
		return false
	}

	setBalance(ctx, from, fromBalance-amount)
	setBalance(ctx, to, balanceOf(ctx, to)+amount)

	runtime.Notify("Transfer", from, to, amount)

	return true
}

// TransferCall moves amount between accounts and notifies the receiving
// contract with the declared token hash, refunding whatever portion the
// receiver reports back. It returns the refunded amount.
func TransferCall(from, to interop.Hash160, amount int, declared interop.Hash160) int {
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len || amount < 0 {
		panic("transferCall: bad arguments")
	}

	if !authorized(from) {
		panic("transferCall: transfer is not authorized")
	}

	ctx := storage.GetContext()

	fromBalance := balanceOf(ctx, from)
	if fromBalance < amount {
		panic("transferCall: not enough assets")
	}

	setBalance(ctx, from, fromBalance-amount)
	setBalance(ctx, to, balanceOf(ctx, to)+amount)

	refund := contract.Call(to, "onTokenTransfer", contract.All, from, amount, declared).(int)
	if refund > 0 {
		if refund > amount {
			panic("transferCall: refund exceeds transferred amount")
		}

		setBalance(ctx, to, balanceOf(ctx, to)-refund)
		setBalance(ctx, from, balanceOf(ctx, from)+refund)
	}

	return refund
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// A payment carrying the pool registration marker registers the sending
// account.
func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	caller := runtime.GetCallingScriptHash()
	if !common.BytesEqual(caller, interop.Hash160(gas.Hash)) {
		panic("onNEP17Payment: token contract accepts GAS only")
	}

	if data != nil && common.BytesEqual(data.([]byte), pool.RegistrationMarker) {
		ctx := storage.GetContext()
		storage.Put(ctx, registeredKey(from), true)
	}
}

// Registered reports whether the account has paid the registration fee.
func Registered(acc interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, registeredKey(acc)) != nil
}

func registeredKey(acc interop.Hash160) []byte {
	return append(registeredPrefix, acc...)
}

func authorized(from interop.Hash160) bool {
	if runtime.CheckWitness(from) {
		return true
	}

	return common.BytesEqual(runtime.GetCallingScriptHash(), from)
}

func balanceOf(ctx storage.Context, acc interop.Hash160) int {
	data := storage.Get(ctx, acc)
	if data != nil {
		return data.(int)
	}

	return 0
}

func setBalance(ctx storage.Context, acc interop.Hash160, amount int) {
	if amount == 0 {
		storage.Delete(ctx, acc)
		return
	}

	storage.Put(ctx, acc, amount)
}
