/*
Pool contract is a custodial multi-token pool deployed in a Neo N3 network.

Pool contract accepts deposits of whitelisted NEP-17-like tokens through the
transfer-and-notify protocol: the token contract moves assets to the pool
account first and then calls OnTokenTransfer asking the pool how much of the
transfer to refund. Deposits of whitelisted tokens are recorded per user and
per token; deposits of any other token are refunded in full. Recorded
balances are attribution records only, withdrawals are pool-level and gated
to the contract admins.

The contract owner is set once at initialization and controls the admin
list. Admins control the token whitelist and withdrawals. Replacing the
admin list does not implicitly keep the owner in it.

# Contract notifications

Deposit notification. Produced when a whitelisted token deposit is consumed.

	Deposit:
	  - name: from
	    type: Hash160
	  - name: token
	    type: Hash160
	  - name: amount
	    type: Integer

WhitelistUpdate notification. Produced when the token whitelist is replaced.

	WhitelistUpdate:
	  - name: tokens
	    type: Array

Withdraw notification. Produced when a pool-level withdrawal is dispatched.

	Withdraw:
	  - name: token
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package pool
