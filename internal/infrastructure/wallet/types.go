package walletservice

type walletInfo struct {
	Address    string `json:"address"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

type walletBalance struct {
	Sats uint64 `json:"sats"`
}

type walletUtxo struct {
	Txid    string `json:"txid"`
	Vout    uint32 `json:"vout"`
	Value   uint64 `json:"value"`
	TokenID string `json:"tokenId,omitempty"`
	Address string `json:"address,omitempty"`
}

type partialTxRequest struct {
	Txid       string       `json:"utxoTxid"`
	Vout       uint32       `json:"utxoVout"`
	NumTokens  uint64       `json:"numTokens"`
	RateInSats uint64       `json:"rateInSats"`
	Utxos      []walletUtxo `json:"utxos"`
}

type partialTxResponse struct {
	TxHex string `json:"txHex"`
}
