package esplora

// outspendStatus is the JSON shape of the /tx/:txid/outspend/:vout response.
type outspendStatus struct {
	Spent  bool   `json:"spent"`
	Txid   string `json:"txid,omitempty"`
	Vin    uint32 `json:"vin,omitempty"`
	Status struct {
		Confirmed bool `json:"confirmed"`
	} `json:"status,omitempty"`
}

// txDetails is the JSON shape of the /tx/:txid response, reduced to the
// fields the service needs.
type txDetails struct {
	Txid string `json:"txid"`
	Vout []struct {
		ScriptPubKey string `json:"scriptpubkey"`
		Value        uint64 `json:"value"`
	} `json:"vout"`
	Status struct {
		Confirmed bool `json:"confirmed"`
	} `json:"status"`
}
