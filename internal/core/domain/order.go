package domain

import (
	"encoding/json"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/shopspring/decimal"
)

const (
	// OrderTypeSell is the only order side the daemon can fill.
	OrderTypeSell = "sell"
	// OrderTypeBuy is recognized on the wire but rejected at take time.
	OrderTypeBuy = "buy"

	// OrderStatusPosted marks an order that is advertised and fillable.
	OrderStatusPosted = "posted"
	// OrderStatusTaken marks an order claimed by a taker. Terminal.
	OrderStatusTaken = "taken"
)

// OrderFields is the loosely-typed shape of an order event as delivered by
// the write database webhook, before any validation. Numeric fields are kept
// as json.Number since peers are free to encode them as numbers or strings.
type OrderFields struct {
	P2wdbHash  string      `json:"p2wdbHash"`
	UtxoTxid   string      `json:"utxoTxid"`
	UtxoVout   json.Number `json:"utxoVout"`
	BuyOrSell  string      `json:"buyOrSell"`
	NumTokens  json.Number `json:"numTokens"`
	RateInSats json.Number `json:"rateInSats"`
}

// Order is the data structure representing a trade advertisement backed by a
// specific on-chain output. Instances are produced only by ParseOrder so that
// downstream code can rely on the fields being well formed.
type Order struct {
	P2wdbHash   string
	UtxoTxid    string
	UtxoVout    uint32
	BuyOrSell   string
	NumTokens   uint64
	RateInSats  uint64
	OrderStatus string
	CreatedAt   int64
}

// ParseOrder validates the raw webhook payload and returns the canonical
// order entity with status Posted. It is pure, no I/O is involved.
func ParseOrder(fields OrderFields) (*Order, error) {
	if fields.P2wdbHash == "" {
		return nil, ErrOrderMissingHash
	}
	if _, err := chainhash.NewHashFromStr(fields.UtxoTxid); err != nil {
		return nil, ErrOrderInvalidTxid
	}
	vout, err := parseUint(fields.UtxoVout, false)
	if err != nil || vout > maxVout {
		return nil, ErrOrderInvalidVout
	}
	if fields.BuyOrSell != OrderTypeSell && fields.BuyOrSell != OrderTypeBuy {
		return nil, ErrOrderInvalidType
	}
	numTokens, err := parseUint(fields.NumTokens, true)
	if err != nil {
		return nil, ErrOrderInvalidNumTokens
	}
	rateInSats, err := parseUint(fields.RateInSats, true)
	if err != nil {
		return nil, ErrOrderInvalidRate
	}

	return &Order{
		P2wdbHash:   fields.P2wdbHash,
		UtxoTxid:    fields.UtxoTxid,
		UtxoVout:    uint32(vout),
		BuyOrSell:   fields.BuyOrSell,
		NumTokens:   numTokens,
		RateInSats:  rateInSats,
		OrderStatus: OrderStatusPosted,
		CreatedAt:   time.Now().Unix(),
	}, nil
}

// IsPosted returns whether the order is still fillable.
func (o *Order) IsPosted() bool {
	return o.OrderStatus == OrderStatusPosted
}

// Take moves the order from Posted to Taken. Calling it on an order in any
// other status returns ErrOrderAlreadyTaken and leaves the order untouched.
func (o *Order) Take() error {
	if o.OrderStatus != OrderStatusPosted {
		return ErrOrderAlreadyTaken
	}
	o.OrderStatus = OrderStatusTaken
	return nil
}

// Release brings a Taken order back to Posted. Used to undo a claim when the
// settlement transaction could not be built.
func (o *Order) Release() error {
	if o.OrderStatus != OrderStatusTaken {
		return ErrOrderNotTaken
	}
	o.OrderStatus = OrderStatusPosted
	return nil
}

// SatsNeeded returns the total amount of sats required to buy the advertised
// quantity at the advertised rate.
func (o *Order) SatsNeeded() decimal.Decimal {
	return decimal.NewFromInt(int64(o.NumTokens)).
		Mul(decimal.NewFromInt(int64(o.RateInSats)))
}

const maxVout = 0xffffffff

func parseUint(num json.Number, strictlyPositive bool) (uint64, error) {
	d, err := decimal.NewFromString(num.String())
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() || d.Sign() < 0 || (strictlyPositive && d.Sign() == 0) {
		return 0, ErrOrderInvalidAmount
	}
	bi := d.BigInt()
	if !bi.IsUint64() {
		return 0, ErrOrderInvalidAmount
	}
	return bi.Uint64(), nil
}
