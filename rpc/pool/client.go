// Package pool contains RPC wrappers for the Memepool Pool contract.
package pool

import (
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Invoker is used by ContractReader to call safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader

	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract
// hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the
// given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// GetContractOwner invokes `getContractOwner` method of contract.
func (c *ContractReader) GetContractOwner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "getContractOwner"))
}

// GetContractAdmins invokes `getContractAdmins` method of contract.
func (c *ContractReader) GetContractAdmins() ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.Call(c.hash, "getContractAdmins"))
}

// GetWhitelistedTokens invokes `getWhitelistedTokens` method of contract.
func (c *ContractReader) GetWhitelistedTokens() ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.Call(c.hash, "getWhitelistedTokens"))
}

// GetUserTokenBalance invokes `getUserTokenBalance` method of contract.
func (c *ContractReader) GetUserTokenBalance(user, token util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getUserTokenBalance", user, token))
}

// GetUserBalance invokes `getUserBalance` method of contract and returns all
// recorded deposits of the user keyed by token script hash.
func (c *ContractReader) GetUserBalance(user util.Uint160) (map[util.Uint160]*big.Int, error) {
	itm, err := unwrap.Item(c.invoker.Call(c.hash, "getUserBalance", user))
	if err != nil {
		return nil, err
	}

	m, ok := itm.(*stackitem.Map)
	if !ok {
		return nil, fmt.Errorf("unexpected return type %s", itm.Type())
	}

	balances := make(map[util.Uint160]*big.Int, m.Len())
	for _, elem := range m.Value().([]stackitem.MapElement) {
		rawKey, err := elem.Key.TryBytes()
		if err != nil {
			return nil, fmt.Errorf("invalid balance key: %w", err)
		}

		token, err := util.Uint160DecodeBytesBE(rawKey)
		if err != nil {
			return nil, fmt.Errorf("invalid token hash in balance key: %w", err)
		}

		val, err := elem.Value.TryInteger()
		if err != nil {
			return nil, fmt.Errorf("invalid balance value: %w", err)
		}

		balances[token] = val
	}

	return balances, nil
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Init creates a transaction invoking `init` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Init(owner util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "init", owner)
}

// SetAdmins creates a transaction invoking `setAdmins` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetAdmins(admins []util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setAdmins", hashesToParams(admins))
}

// SetWhitelistedTokens creates a transaction invoking `setWhitelistedTokens`
// method of the contract. This transaction is signed and immediately sent to
// the network. The values returned are its hash, ValidUntilBlock value and
// error if any.
func (c *Contract) SetWhitelistedTokens(tokens []util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setWhitelistedTokens", hashesToParams(tokens))
}

// Withdraw creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Withdraw(token, to util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdraw", token, to, amount)
}

// WithdrawTransaction creates a transaction invoking `withdraw` method of the
// contract. This transaction is signed, but not sent to the network, instead
// it's returned to the caller.
func (c *Contract) WithdrawTransaction(token, to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdraw", token, to, amount)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

func hashesToParams(hashes []util.Uint160) []any {
	params := make([]any, len(hashes))
	for i := range hashes {
		params[i] = hashes[i]
	}
	return params
}
