package tests

import (
	"path"
	"testing"

	"github.com/memepool/pool-contracts/common"
	"github.com/memepool/pool-contracts/pool"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const poolPath = "../pool"

const tokenPath = "../internal/testcontracts/token"

func deployPoolContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, poolPath, path.Join(poolPath, "config.yml"))
	e.DeployContract(t, c, nil)
	return c.Hash
}

func deployTokenContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, tokenPath, path.Join(tokenPath, "config.yml"))
	e.DeployContract(t, c, nil)
	return c.Hash
}

// newPoolInvoker deploys the pool contract, initializes it with a fresh
// owner account and returns the pool invoker, the token invoker and the
// owner signer.
func newPoolInvoker(t *testing.T) (*neotest.ContractInvoker, *neotest.ContractInvoker, neotest.Signer) {
	e := newExecutor(t)

	poolHash := deployPoolContract(t, e)
	tokenHash := deployTokenContract(t, e)

	owner := e.NewAccount(t)

	c := e.CommitteeInvoker(poolHash)
	c.Invoke(t, stackitem.Null{}, "init", owner.ScriptHash())

	return c, e.CommitteeInvoker(tokenHash), owner
}

func TestPoolInit(t *testing.T) {
	c, _, owner := newPoolInvoker(t)

	c.InvokeFail(t, common.ErrAlreadyInitialized, "init", owner.ScriptHash())

	c.Invoke(t, stackitem.NewBuffer(owner.ScriptHash().BytesBE()), "getContractOwner")
	c.Invoke(t, hashArray(owner.ScriptHash()), "getContractAdmins")
}

func TestPoolSetAdmins(t *testing.T) {
	c, _, owner := newPoolInvoker(t)

	admin := c.NewAccount(t)
	notOwner := c.NewAccount(t)

	cNotOwner := c.WithSigners(notOwner)
	cNotOwner.InvokeFail(t, common.ErrOwnerWitnessFailed, "setAdmins",
		[]interface{}{admin.ScriptHash()})

	// failed call must not touch the admin list
	c.Invoke(t, hashArray(owner.ScriptHash()), "getContractAdmins")

	cOwner := c.WithSigners(owner)
	cOwner.Invoke(t, hashArray(admin.ScriptHash()), "setAdmins",
		[]interface{}{admin.ScriptHash()})
	c.Invoke(t, hashArray(admin.ScriptHash()), "getContractAdmins")

	// the owner is not re-added implicitly and has lost admin-only access
	cOwner.InvokeFail(t, common.ErrAdminWitnessFailed, "setWhitelistedTokens",
		[]interface{}{})

	// owner keeps owner-only access and can always re-admit themselves
	cOwner.Invoke(t, hashArray(owner.ScriptHash(), admin.ScriptHash()), "setAdmins",
		[]interface{}{owner.ScriptHash(), admin.ScriptHash()})
}

func TestPoolWhitelist(t *testing.T) {
	c, tok, owner := newPoolInvoker(t)

	notAdmin := c.NewAccount(t)
	cNotAdmin := c.WithSigners(notAdmin)
	cNotAdmin.InvokeFail(t, common.ErrAdminWitnessFailed, "setWhitelistedTokens",
		[]interface{}{tok.Hash})

	cOwner := c.WithSigners(owner)
	cOwner.Invoke(t, hashArray(tok.Hash), "setWhitelistedTokens",
		[]interface{}{tok.Hash})
	c.Invoke(t, hashArray(tok.Hash), "getWhitelistedTokens")

	// the pool has no GAS yet, so the registration payment silently failed
	tok.Invoke(t, false, "registered", c.Hash)

	transferGAS(t, c.Executor, c.Hash, 10_0000_0000)

	cOwner.Invoke(t, hashArray(tok.Hash), "setWhitelistedTokens",
		[]interface{}{tok.Hash})
	tok.Invoke(t, true, "registered", c.Hash)

	// replacement is wholesale, not additive
	other := randomHash()
	cOwner.Invoke(t, hashArray(other), "setWhitelistedTokens",
		[]interface{}{other})
	c.Invoke(t, hashArray(other), "getWhitelistedTokens")
}

func TestPoolDeposit(t *testing.T) {
	c, tok, owner := newPoolInvoker(t)

	cOwner := c.WithSigners(owner)
	cOwner.Invoke(t, hashArray(tok.Hash), "setWhitelistedTokens",
		[]interface{}{tok.Hash})

	user := c.NewAccount(t)
	tok.Invoke(t, stackitem.Null{}, "mint", user.ScriptHash(), 1500)

	tokUser := tok.WithSigners(user)
	tokUser.Invoke(t, stackitem.Make(0), "transferCall",
		user.ScriptHash(), c.Hash, 1000, tok.Hash)

	c.Invoke(t, stackitem.Make(1000), "getUserTokenBalance",
		user.ScriptHash(), tok.Hash)
	tok.Invoke(t, stackitem.Make(1000), "balanceOf", c.Hash)
	tok.Invoke(t, stackitem.Make(500), "balanceOf", user.ScriptHash())

	// deposits accumulate
	tokUser.Invoke(t, stackitem.Make(0), "transferCall",
		user.ScriptHash(), c.Hash, 500, tok.Hash)
	c.Invoke(t, stackitem.Make(1500), "getUserTokenBalance",
		user.ScriptHash(), tok.Hash)
}

func TestPoolDepositRefund(t *testing.T) {
	c, tok, owner := newPoolInvoker(t)

	cOwner := c.WithSigners(owner)
	cOwner.Invoke(t, hashArray(tok.Hash), "setWhitelistedTokens",
		[]interface{}{tok.Hash})

	user := c.NewAccount(t)
	tok.Invoke(t, stackitem.Null{}, "mint", user.ScriptHash(), 1000)

	// the declared token is not whitelisted: everything is refunded and
	// no deposit is recorded
	declared := randomHash()
	tokUser := tok.WithSigners(user)
	tokUser.Invoke(t, stackitem.Make(1000), "transferCall",
		user.ScriptHash(), c.Hash, 1000, declared)

	c.Invoke(t, stackitem.Make(0), "getUserTokenBalance",
		user.ScriptHash(), declared)
	tok.Invoke(t, stackitem.Make(1000), "balanceOf", user.ScriptHash())
	tok.Invoke(t, stackitem.Make(0), "balanceOf", c.Hash)
}

func TestPoolOnTokenTransferDirect(t *testing.T) {
	c, tok, owner := newPoolInvoker(t)

	cOwner := c.WithSigners(owner)
	cOwner.Invoke(t, hashArray(tok.Hash), "setWhitelistedTokens",
		[]interface{}{tok.Hash})

	user := c.NewAccount(t)

	c.InvokeFail(t, pool.ErrMalformedMessage, "onTokenTransfer",
		user.ScriptHash(), 100, nil)
	c.InvokeFail(t, pool.ErrMalformedMessage, "onTokenTransfer",
		user.ScriptHash(), 100, []byte{1, 2, 3})

	// the declared token is taken from the message as is, so a direct call
	// claiming a whitelisted token is credited even though no assets moved
	c.Invoke(t, stackitem.Make(0), "onTokenTransfer",
		user.ScriptHash(), 100, tok.Hash)
	c.Invoke(t, stackitem.Make(100), "getUserTokenBalance",
		user.ScriptHash(), tok.Hash)
}

func TestPoolWithdraw(t *testing.T) {
	c, tok, owner := newPoolInvoker(t)

	cOwner := c.WithSigners(owner)
	cOwner.Invoke(t, hashArray(tok.Hash), "setWhitelistedTokens",
		[]interface{}{tok.Hash})

	user := c.NewAccount(t)
	tok.Invoke(t, stackitem.Null{}, "mint", user.ScriptHash(), 1000)

	tokUser := tok.WithSigners(user)
	tokUser.Invoke(t, stackitem.Make(0), "transferCall",
		user.ScriptHash(), c.Hash, 1000, tok.Hash)

	recipient := c.NewAccount(t)

	notAdmin := c.NewAccount(t)
	cNotAdmin := c.WithSigners(notAdmin)
	cNotAdmin.InvokeFail(t, common.ErrAdminWitnessFailed, "withdraw",
		tok.Hash, recipient.ScriptHash(), 400)

	cOwner.InvokeFail(t, pool.ErrNotWhitelisted, "withdraw",
		randomHash(), recipient.ScriptHash(), 400)
	cOwner.InvokeFail(t, "non positive amount", "withdraw",
		tok.Hash, recipient.ScriptHash(), 0)

	cOwner.Invoke(t, true, "withdraw", tok.Hash, recipient.ScriptHash(), 400)
	tok.Invoke(t, stackitem.Make(400), "balanceOf", recipient.ScriptHash())
	tok.Invoke(t, stackitem.Make(600), "balanceOf", c.Hash)

	// withdrawal is pool-level: the user's recorded deposit is untouched
	c.Invoke(t, stackitem.Make(1000), "getUserTokenBalance",
		user.ScriptHash(), tok.Hash)

	// the result of the token call is passed through as is
	cOwner.Invoke(t, false, "withdraw", tok.Hash, recipient.ScriptHash(), 5000)
	tok.Invoke(t, stackitem.Make(600), "balanceOf", c.Hash)
}

func TestPoolGetUserBalance(t *testing.T) {
	c, tok, owner := newPoolInvoker(t)

	second := randomHash()

	cOwner := c.WithSigners(owner)
	cOwner.Invoke(t, hashArray(tok.Hash, second), "setWhitelistedTokens",
		[]interface{}{tok.Hash, second})

	user := c.NewAccount(t)

	c.Invoke(t, stackitem.Make(0), "onTokenTransfer",
		user.ScriptHash(), 100, tok.Hash)
	c.Invoke(t, stackitem.Make(0), "onTokenTransfer",
		user.ScriptHash(), 200, second)

	res, err := c.TestInvoke(t, "getUserBalance", user.ScriptHash())
	require.NoError(t, err)

	m, ok := res.Top().Item().(*stackitem.Map)
	require.True(t, ok)
	require.Equal(t, 2, m.Len())

	expected := map[string]int64{
		string(tok.Hash.BytesBE()): 100,
		string(second.BytesBE()):   200,
	}
	for _, elem := range m.Value().([]stackitem.MapElement) {
		key, err := elem.Key.TryBytes()
		require.NoError(t, err)
		val, err := elem.Value.TryInteger()
		require.NoError(t, err)
		require.Equal(t, expected[string(key)], val.Int64())
	}

	// unknown user has no entries
	res, err = c.TestInvoke(t, "getUserBalance", randomHash())
	require.NoError(t, err)
	m, ok = res.Top().Item().(*stackitem.Map)
	require.True(t, ok)
	require.Equal(t, 0, m.Len())
}

func TestPoolVersion(t *testing.T) {
	c, _, _ := newPoolInvoker(t)
	c.Invoke(t, stackitem.Make(common.Version), "version")
}
