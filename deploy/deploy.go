// Package deploy provides deployment routines for the Memepool contracts.
package deploy

import (
	"context"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for contract deployment.
type Blockchain interface {
	// GetContractStateByHash returns network state of the smart contract by
	// its address. GetContractStateByHash returns an error with 'Unknown
	// contract' substring if the requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// Prm groups deployment parameters of a smart contract.
type Prm struct {
	// Logger for deployment progress. Optional.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy to.
	Blockchain Blockchain

	// Local account that signs and pays for the deployment transaction.
	LocalAccount *actor.Actor

	NEF      nef.File
	Manifest manifest.Manifest

	// Arguments passed to the contract's _deploy method.
	DeployData any
}

// Contract deploys the smart contract described by prm and returns its
// address. If the contract is already on chain, Contract is a no-op
// returning the on-chain address.
func Contract(ctx context.Context, prm Prm) (util.Uint160, error) {
	l := prm.Logger
	if l == nil {
		l = zap.NewNop()
	}

	sender := prm.LocalAccount.Sender()
	h := state.CreateContractHash(sender, prm.NEF.Checksum, prm.Manifest.Name)

	onChain, err := prm.Blockchain.GetContractStateByHash(h)
	if err == nil {
		l.Info("contract is already deployed",
			zap.String("name", prm.Manifest.Name), zap.Stringer("address", onChain.Hash))
		return onChain.Hash, nil
	} else if !strings.Contains(err.Error(), "Unknown contract") {
		return util.Uint160{}, fmt.Errorf("read on-chain state of contract '%s': %w", prm.Manifest.Name, err)
	}

	if err := ctx.Err(); err != nil {
		return util.Uint160{}, fmt.Errorf("wait for deployment of contract '%s': %w", prm.Manifest.Name, err)
	}

	l.Info("deploying contract",
		zap.String("name", prm.Manifest.Name), zap.Stringer("address", h))

	txHash, vub, err := management.New(prm.LocalAccount).Deploy(&prm.NEF, &prm.Manifest, prm.DeployData)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("send deployment transaction of contract '%s': %w", prm.Manifest.Name, err)
	}

	res, err := prm.LocalAccount.Wait(txHash, vub, nil)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("wait for deployment transaction of contract '%s': %w", prm.Manifest.Name, err)
	}

	if res.VMState != vmstate.Halt {
		return util.Uint160{}, fmt.Errorf("deployment transaction of contract '%s' failed: %s",
			prm.Manifest.Name, res.FaultException)
	}

	l.Info("contract deployed",
		zap.String("name", prm.Manifest.Name), zap.Stringer("address", h),
		zap.Stringer("tx", txHash))

	return h, nil
}
