package ports

import "context"

// WalletInfo holds the identity of the local wallet. PrivateKey is the WIF
// encoded signing credential, forwarded to the write database client to
// verify that the key can pay for WDB entries.
type WalletInfo struct {
	Address    string
	PublicKey  string
	PrivateKey string
}

// Utxo is one entry of the local wallet utxo snapshot.
type Utxo struct {
	Txid    string
	Vout    uint32
	Value   uint64
	TokenID string
	Address string
}

// OrderOutpoint references the advertised output a settlement transaction
// must spend, together with the advertised terms.
type OrderOutpoint struct {
	Txid       string
	Vout       uint32
	NumTokens  uint64
	RateInSats uint64
}

// WalletService is the interface of the wallet collaborator. Balance and
// utxo reads are best-effort snapshots: the wallet is mutated externally by
// transaction broadcasts, nothing is locked between a read and its use.
type WalletService interface {
	// Info returns the wallet identity.
	Info(ctx context.Context) (WalletInfo, error)
	// Balance returns the current spendable balance in sats.
	Balance(ctx context.Context) (uint64, error)
	// ListUtxos returns the current utxo snapshot of the wallet.
	ListUtxos(ctx context.Context) ([]Utxo, error)
	// CreatePartialTx builds and half-signs the settlement transaction
	// spending the given order outpoint along with funds selected from the
	// provided utxo snapshot. It returns the hex encoded partially-signed
	// transaction, to be relayed to the advertiser for co-signing.
	CreatePartialTx(
		ctx context.Context, order OrderOutpoint, utxos []Utxo,
	) (string, error)
}
