package explorer

import "context"

// TxOut is the metadata of an unspent transaction output as reported by the
// blockchain explorer.
type TxOut struct {
	Txid      string
	Vout      uint32
	Value     uint64
	Script    string
	Confirmed bool
}

// Service is the representation of an explorer that allows to query the
// blockchain for the liveness of transaction outputs. Results are
// authoritative at call time only, liveness can change between any two
// calls, therefore callers must never cache them.
type Service interface {
	// GetTxOut returns the metadata of the given output if it is part of the
	// current utxo set, or nil if it has been spent or never existed.
	GetTxOut(ctx context.Context, txid string, vout uint32) (*TxOut, error)
	// GetBlockHeight returns the number of blocks of the chain. Used as a
	// health check.
	GetBlockHeight(ctx context.Context) (int, error)
}
