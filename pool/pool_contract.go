package pool

/*
	Custodial multi-token pool contract for Neo N3.

	Utility methods, executed once in deploy stage:
	- Init

	Access control methods:
	- GetContractOwner
	- GetContractAdmins
	- SetAdmins

	Whitelist methods:
	- GetWhitelistedTokens
	- SetWhitelistedTokens

	User related methods:
	- OnTokenTransfer
	- GetUserBalance
	- GetUserTokenBalance
	- Withdraw

	Other utility methods:
	- Version
	- Update
*/

import (
	"github.com/memepool/pool-contracts/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	// RegistrationFee is the fixed amount of GAS sent to a token contract
	// when it is added to the whitelist. Token contracts are expected to
	// register the pool account on reception.
	RegistrationFee = 10_000_000 // 0.1 Fixed8 GAS

	ownerKey     = "contractOwner"
	adminsKey    = "contractAdmins"
	whitelistKey = "whitelistedTokens"
)

const (
	// ErrMalformedMessage appears when a transfer notification carries
	// a payload that cannot be interpreted as a token script hash.
	ErrMalformedMessage = "malformed transfer message"
	// ErrNotWhitelisted appears on withdrawal of a token that is absent
	// from the whitelist.
	ErrNotWhitelisted = "token is not whitelisted"
)

var (
	balancePrefix = []byte("balance")

	// RegistrationMarker is attached as data to the whitelist registration
	// fee transfer so that token contracts can tell it apart from regular
	// payments.
	RegistrationMarker = []byte("pool-register")
)

func _deploy(data interface{}, isUpdate bool) {
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}
}

// Init sets the contract owner and makes them the only admin. It can be
// called exactly once, before any other state-changing method.
func Init(owner interop.Hash160) {
	ctx := storage.GetContext()

	if storage.Get(ctx, ownerKey) != nil {
		panic(common.ErrAlreadyInitialized)
	}

	if len(owner) != interop.Hash160Len {
		panic("init: incorrect owner script hash length")
	}

	storage.Put(ctx, ownerKey, owner)
	common.SetSerialized(ctx, adminsKey, []interop.Hash160{owner})
	common.SetSerialized(ctx, whitelistKey, []interop.Hash160{})

	runtime.Log("pool contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(contractOwner(ctx))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("pool contract updated")
}

// GetContractOwner returns the script hash of the contract owner.
func GetContractOwner() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return contractOwner(ctx)
}

// GetContractAdmins returns the list of admin script hashes.
func GetContractAdmins() []interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return common.GetHashList(ctx, adminsKey)
}

// SetAdmins replaces the admin list with the provided one and returns it.
// It can be invoked only by the contract owner, admin membership is not
// enough. The previous list is discarded entirely: the owner is NOT re-added
// implicitly and locks themselves out of admin-only methods unless present
// in the new list.
func SetAdmins(admins []interop.Hash160) []interop.Hash160 {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(contractOwner(ctx))

	for i := range admins {
		if len(admins[i]) != interop.Hash160Len {
			panic("setAdmins: incorrect admin script hash length")
		}
	}

	common.SetSerialized(ctx, adminsKey, admins)
	runtime.Log("pool: admin list replaced")

	return admins
}

// GetWhitelistedTokens returns the list of whitelisted token script hashes.
func GetWhitelistedTokens() []interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return common.GetHashList(ctx, whitelistKey)
}

// SetWhitelistedTokens replaces the token whitelist with the provided list
// and returns it. It can be invoked only by an admin.
//
// For every listed token the contract pays RegistrationFee of GAS to the
// token contract with RegistrationMarker attached, registering the pool
// account on the token side before any real transfer happens. The outcome of
// the payment is not checked: if the pool has no GAS or the token ignores the
// fee, registration fails silently and surfaces later as a failed transfer.
// Balances credited under tokens removed from the whitelist are kept.
func SetWhitelistedTokens(tokens []interop.Hash160) []interop.Hash160 {
	ctx := storage.GetContext()
	common.CheckAnyWitness(common.GetHashList(ctx, adminsKey))

	for i := range tokens {
		if len(tokens[i]) != interop.Hash160Len {
			panic("setWhitelistedTokens: incorrect token script hash length")
		}
	}

	common.SetSerialized(ctx, whitelistKey, tokens)

	this := runtime.GetExecutingScriptHash()
	for i := range tokens {
		gas.Transfer(this, tokens[i], RegistrationFee, RegistrationMarker)
	}

	runtime.Notify("WhitelistUpdate", tokens)

	return tokens
}

// OnTokenTransfer is the receiving half of the token transfer-and-notify
// protocol. The token contract has already moved amount to the pool account
// and asks how much of it to refund: the method returns 0 if the deposit is
// fully consumed and the whole amount if it must be refunded.
//
// The data argument carries the script hash of the token the sender claims
// to deposit. The claim is trusted as is and is NOT verified against the
// calling contract, so a non-whitelisted token contract can declare a
// whitelisted one; callers integrating the pool must treat this as part of
// the protocol's trust model.
//
// A whitelist miss never aborts: aborting would leave the calling token's
// tentative transfer unresolved, so the method refunds instead.
func OnTokenTransfer(from interop.Hash160, amount int, data interface{}) int {
	if data == nil {
		panic(ErrMalformedMessage)
	}

	declared := data.(interop.Hash160)
	if len(declared) != interop.Hash160Len {
		panic(ErrMalformedMessage)
	}

	ctx := storage.GetContext()

	if !common.ContainsHash(common.GetHashList(ctx, whitelistKey), declared) {
		runtime.Log("onTokenTransfer: token is not whitelisted, refunding")
		return amount
	}

	if amount <= 0 {
		return amount
	}

	key := userBalanceKey(from, declared)
	storage.Put(ctx, key, balanceAt(ctx, key)+amount)

	runtime.Notify("Deposit", from, declared, amount)

	return 0
}

// GetUserBalance returns all recorded deposits of the user as a map from
// token script hash to balance.
func GetUserBalance(user interop.Hash160) map[string]int {
	if len(user) != interop.Hash160Len {
		panic("getUserBalance: incorrect user script hash length")
	}

	ctx := storage.GetReadOnlyContext()
	prefix := append(balancePrefix, user...)
	balances := map[string]int{}

	it := storage.Find(ctx, prefix, storage.None)
	for iterator.Next(it) {
		pair := iterator.Value(it).([]interface{})
		key := pair[0].([]byte)
		balances[string(key[len(prefix):])] = convert.ToInteger(pair[1])
	}

	return balances
}

// GetUserTokenBalance returns the recorded deposit of the user in the given
// token. Missing entry is reported as zero balance.
func GetUserTokenBalance(user, token interop.Hash160) int {
	if len(user) != interop.Hash160Len || len(token) != interop.Hash160Len {
		panic("getUserTokenBalance: incorrect script hash length")
	}

	ctx := storage.GetReadOnlyContext()
	return balanceAt(ctx, userBalanceKey(user, token))
}

// Withdraw asks the token contract to move amount from the pool account to
// the given destination and returns exactly the result of that call. It can
// be invoked only by an admin and only for a whitelisted token.
//
// Withdrawal is pool-level: no per-user ledger entry is checked or debited,
// an admin can withdraw more than any single user deposited, up to whatever
// the token contract holds on the pool account.
func Withdraw(token, to interop.Hash160, amount int) bool {
	ctx := storage.GetReadOnlyContext()
	common.CheckAnyWitness(common.GetHashList(ctx, adminsKey))

	if len(token) != interop.Hash160Len || len(to) != interop.Hash160Len {
		panic("withdraw: incorrect script hash length")
	}

	if amount <= 0 {
		panic("withdraw: non positive amount number")
	}

	if !common.ContainsHash(common.GetHashList(ctx, whitelistKey), token) {
		panic(ErrNotWhitelisted)
	}

	this := runtime.GetExecutingScriptHash()
	result := contract.Call(token, "transfer", contract.All, this, to, amount, nil)

	runtime.Notify("Withdraw", token, to, amount)

	return result.(bool)
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// GAS is accepted to fund whitelist registration fees.
func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	caller := runtime.GetCallingScriptHash()
	if !common.BytesEqual(caller, interop.Hash160(gas.Hash)) {
		panic("onNEP17Payment: pool contract accepts GAS only")
	}
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func contractOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, ownerKey).(interop.Hash160)
}

func userBalanceKey(user, token interop.Hash160) []byte {
	key := append(balancePrefix, user...)
	return append(key, token...)
}

// balanceAt returns the integer stored under the key or zero if it is missing.
func balanceAt(ctx storage.Context, key []byte) int {
	data := storage.Get(ctx, key)
	if data != nil {
		return data.(int)
	}

	return 0
}
