package repo

import "context"

type TxHandler func(context.Context, Tx) error

type Conn interface {
	Queryer

	// Tx runs handler in a transaction with the default isolation
	// level of the underlying DBMS (read-committed for PostgreSQL).
	Tx(ctx context.Context, handler TxHandler) error

	// SerializableTx runs handler in a SERIALIZABLE transaction.
	// Mutations which must observe and update an invariant atomically,
	// such as the creation of a car together with its initial owner or
	// the removal of an owner with its orphan-cascade, must use this
	// method so two concurrent transactions may not both act on the
	// same stale owner set.
	SerializableTx(ctx context.Context, handler TxHandler) error

	IsConn()
}
