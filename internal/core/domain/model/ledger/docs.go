// Package ledger provides the customer Account: an append-only wallet ledger plus loyalty
// points. The balance is never stored independently of the transactions that produce it.
package ledger
