package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"

	"github.com/google/uuid"
	"github.com/memepool/pool-contracts/deploy"
	poolrpc "github.com/memepool/pool-contracts/rpc/pool"
	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	contractAddr := flag.String("contract", "", "Address of the pool contract")
	walletPath := flag.String("wallet", "", "Path to the NEP-6 wallet file")
	walletPassword := flag.String("password", "", "Password of the wallet account")
	nefPath := flag.String("nef", "", "Path to the compiled contract NEF file")
	manifestPath := flag.String("manifest", "", "Path to the contract manifest file")
	userAddr := flag.String("user", "", "Address of the user account")
	tokenAddr := flag.String("token", "", "Address of the token contract")
	toAddr := flag.String("to", "", "Address of the transfer destination")
	amount := flag.Int64("amount", 0, "Amount of token units")

	flag.Parse()

	if *neoRPCEndpoint == "" {
		log.Fatal("missing Neo RPC endpoint")
	}

	c, err := rpcclient.New(context.Background(), *neoRPCEndpoint, rpcclient.Options{})
	if err != nil {
		log.Fatal(fmt.Errorf("create RPC client: %w", err))
	}

	if err := c.Init(); err != nil {
		log.Fatal(fmt.Errorf("init RPC client: %w", err))
	}

	switch cmd := flag.Arg(0); cmd {
	case "deploy":
		err = deployContract(c, *walletPath, *walletPassword, *nefPath, *manifestPath)
	case "init":
		err = initContract(c, *walletPath, *walletPassword, *contractAddr, *userAddr)
	case "info":
		err = printInfo(c, *contractAddr)
	case "balance":
		err = printBalance(c, *contractAddr, *userAddr)
	case "withdraw":
		err = withdraw(c, *walletPath, *walletPassword, *contractAddr, *tokenAddr, *toAddr, *amount)
	default:
		err = fmt.Errorf("unknown command '%s', expected one of: deploy, init, info, balance, withdraw", cmd)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func deployContract(c *rpcclient.Client, walletPath, password, nefPath, manifestPath string) error {
	a, err := openActor(c, walletPath, password)
	if err != nil {
		return err
	}

	rawNEF, err := os.ReadFile(nefPath)
	if err != nil {
		return fmt.Errorf("read NEF file: %w", err)
	}

	nefFile, err := nef.FileFromBytes(rawNEF)
	if err != nil {
		return fmt.Errorf("parse NEF file: %w", err)
	}

	rawManifest, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest file: %w", err)
	}

	var m manifest.Manifest
	if err := json.Unmarshal(rawManifest, &m); err != nil {
		return fmt.Errorf("parse manifest file: %w", err)
	}

	l, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer l.Sync() //nolint:errcheck

	h, err := deploy.Contract(context.Background(), deploy.Prm{
		Logger:       l,
		Blockchain:   c,
		LocalAccount: a,
		NEF:          nefFile,
		Manifest:     m,
	})
	if err != nil {
		return err
	}

	log.Printf("contract '%s' is on chain as %s\n", m.Name, address.Uint160ToString(h))

	return nil
}

func initContract(c *rpcclient.Client, walletPath, password, contractAddr, ownerAddr string) error {
	a, err := openActor(c, walletPath, password)
	if err != nil {
		return err
	}

	contractHash, err := parseUint160(contractAddr)
	if err != nil {
		return fmt.Errorf("parse contract address: %w", err)
	}

	owner, err := parseUint160(ownerAddr)
	if err != nil {
		return fmt.Errorf("parse owner address: %w", err)
	}

	txHash, _, err := poolrpc.New(a, contractHash).Init(owner)
	if err != nil {
		return fmt.Errorf("send init transaction: %w", err)
	}

	log.Printf("init transaction sent: %s\n", txHash.StringLE())

	return nil
}

func printInfo(c *rpcclient.Client, contractAddr string) error {
	contractHash, err := parseUint160(contractAddr)
	if err != nil {
		return fmt.Errorf("parse contract address: %w", err)
	}

	reader := poolrpc.NewReader(invoker.New(c, nil), contractHash)

	owner, err := reader.GetContractOwner()
	if err != nil {
		return fmt.Errorf("get contract owner: %w", err)
	}

	admins, err := reader.GetContractAdmins()
	if err != nil {
		return fmt.Errorf("get contract admins: %w", err)
	}

	tokens, err := reader.GetWhitelistedTokens()
	if err != nil {
		return fmt.Errorf("get whitelisted tokens: %w", err)
	}

	version, err := reader.Version()
	if err != nil {
		return fmt.Errorf("get contract version: %w", err)
	}

	fmt.Printf("version: %s\n", version)
	fmt.Printf("owner: %s\n", address.Uint160ToString(owner))
	for i := range admins {
		fmt.Printf("admin: %s\n", address.Uint160ToString(admins[i]))
	}
	for i := range tokens {
		fmt.Printf("whitelisted token: %s\n", address.Uint160ToString(tokens[i]))
	}

	return nil
}

func printBalance(c *rpcclient.Client, contractAddr, userAddr string) error {
	contractHash, err := parseUint160(contractAddr)
	if err != nil {
		return fmt.Errorf("parse contract address: %w", err)
	}

	user, err := parseUint160(userAddr)
	if err != nil {
		return fmt.Errorf("parse user address: %w", err)
	}

	balances, err := poolrpc.NewReader(invoker.New(c, nil), contractHash).GetUserBalance(user)
	if err != nil {
		return fmt.Errorf("get user balance: %w", err)
	}

	for token, balance := range balances {
		fmt.Printf("%s: %s\n", base58.Encode(token.BytesBE()), balance)
	}

	return nil
}

func withdraw(c *rpcclient.Client, walletPath, password, contractAddr, tokenAddr, toAddr string, amount int64) error {
	a, err := openActor(c, walletPath, password)
	if err != nil {
		return err
	}

	contractHash, err := parseUint160(contractAddr)
	if err != nil {
		return fmt.Errorf("parse contract address: %w", err)
	}

	token, err := parseUint160(tokenAddr)
	if err != nil {
		return fmt.Errorf("parse token address: %w", err)
	}

	to, err := parseUint160(toAddr)
	if err != nil {
		return fmt.Errorf("parse destination address: %w", err)
	}

	if amount <= 0 {
		return fmt.Errorf("non positive withdrawal amount %d", amount)
	}

	requestID := uuid.New()
	log.Printf("withdrawal request %s: %d units of %s to %s\n",
		requestID, amount, tokenAddr, toAddr)

	txHash, vub, err := poolrpc.New(a, contractHash).Withdraw(token, to, big.NewInt(amount))
	if err != nil {
		return fmt.Errorf("send withdrawal transaction of request %s: %w", requestID, err)
	}

	log.Printf("withdrawal request %s sent: tx %s, valid until block %d\n",
		requestID, txHash.StringLE(), vub)

	return nil
}

func openActor(c *rpcclient.Client, walletPath, password string) (*actor.Actor, error) {
	if walletPath == "" {
		return nil, fmt.Errorf("missing wallet path")
	}

	w, err := wallet.NewWalletFromFile(walletPath)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}

	if len(w.Accounts) == 0 {
		return nil, fmt.Errorf("wallet '%s' has no accounts", walletPath)
	}

	acc := w.Accounts[0]
	if err := acc.Decrypt(password, w.Scrypt); err != nil {
		return nil, fmt.Errorf("decrypt wallet account: %w", err)
	}

	return actor.NewSimple(c, acc)
}

// parseUint160 accepts both Neo addresses and little-endian hex script hashes.
func parseUint160(s string) (util.Uint160, error) {
	if s == "" {
		return util.Uint160{}, fmt.Errorf("missing address")
	}

	if h, err := address.StringToUint160(s); err == nil {
		return h, nil
	}

	return util.Uint160DecodeStringLE(s)
}
