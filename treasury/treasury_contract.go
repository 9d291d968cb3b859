package treasury

import (
	"github.com/memepool/pool-contracts/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	treasuryKey    = "treasuryWallet"
	poolBalanceKey = "poolBalance"
)

// ErrInsufficientBalance appears on withdrawal of more GAS than the pool
// balance holds.
const ErrInsufficientBalance = "insufficient pool balance"

func _deploy(data interface{}, isUpdate bool) {
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}
}

// Init sets the treasury wallet. It can be called exactly once, before any
// other state-changing method.
func Init(treasury interop.Hash160) {
	ctx := storage.GetContext()

	if storage.Get(ctx, treasuryKey) != nil {
		panic(common.ErrAlreadyInitialized)
	}

	if len(treasury) != interop.Hash160Len {
		panic("init: incorrect treasury script hash length")
	}

	storage.Put(ctx, treasuryKey, treasury)
	storage.Put(ctx, poolBalanceKey, 0)

	runtime.Log("treasury contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the treasury wallet.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(treasuryWallet(ctx))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("treasury contract updated")
}

// GetTreasuryWallet returns the script hash of the treasury wallet.
func GetTreasuryWallet() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return treasuryWallet(ctx)
}

// GetPoolBalance returns the amount of GAS deposited into the pool and not
// yet withdrawn.
func GetPoolBalance() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, poolBalanceKey).(int)
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// Every accepted payment increases the pool balance by the transferred
// amount. Payments in anything but GAS are aborted, which unwinds the
// sending contract's transfer.
func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	caller := runtime.GetCallingScriptHash()
	if !common.BytesEqual(caller, interop.Hash160(gas.Hash)) {
		panic("onNEP17Payment: treasury contract accepts GAS only")
	}

	if amount <= 0 {
		panic("onNEP17Payment: deposit amount must be positive")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, poolBalanceKey, storage.Get(ctx, poolBalanceKey).(int)+amount)

	runtime.Notify("Deposit", from, amount)
}

// Withdraw debits the pool balance and transfers amount of GAS to the given
// destination. It can be invoked only by the treasury wallet. The debit and
// the transfer commit together: a failed transfer aborts the invocation and
// rolls the debit back.
func Withdraw(to interop.Hash160, amount int) bool {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(treasuryWallet(ctx))

	if len(to) != interop.Hash160Len {
		panic("withdraw: incorrect destination script hash length")
	}

	if amount <= 0 {
		panic("withdraw: non positive amount number")
	}

	balance := storage.Get(ctx, poolBalanceKey).(int)
	if amount > balance {
		panic(ErrInsufficientBalance)
	}

	storage.Put(ctx, poolBalanceKey, balance-amount)

	this := runtime.GetExecutingScriptHash()
	transferred := gas.Transfer(this, to, amount, nil)
	if !transferred {
		panic("withdraw: failed to transfer funds, aborting")
	}

	runtime.Notify("Withdraw", to, amount)

	return true
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func treasuryWallet(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, treasuryKey).(interop.Hash160)
}
