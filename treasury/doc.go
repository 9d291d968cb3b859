/*
Treasury contract is a single-asset custodial pool deployed in a Neo N3
network.

Treasury contract accepts native GAS deposits from any account and keeps
them in a single pool balance with no per-user attribution. Withdrawals are
gated to the treasury wallet set at initialization and are bounded by the
pool balance; the balance debit and the outgoing transfer commit atomically
within the withdrawal invocation.

# Contract notifications

Deposit notification. Produced on every accepted GAS payment.

	Deposit:
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer

Withdraw notification. Produced on every successful withdrawal.

	Withdraw:
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package treasury
