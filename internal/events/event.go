package events

import "encoding/json"

const TypeStockUpdate = "stock_update"

const (
	ActionCheckout      = "checkout"
	ActionStockAdjusted = "stock_adjusted"
	ActionProductSaved  = "product_saved"
)

// StockLevel is the stock of one product after the change.
type StockLevel struct {
	Name     string `json:"name"`
	OldStock int    `json:"old_stock"`
	NewStock int    `json:"new_stock"`
}

type StockEvent struct {
	Type      string       `json:"type"`
	Action    string       `json:"action"`
	Products  []StockLevel `json:"products"`
	ReceiptID string       `json:"receipt_id,omitempty"`
	Total     float64      `json:"total,omitempty"`
	Message   string       `json:"message"`
}

func NewStockEvent(action, message string, products ...StockLevel) StockEvent {
	return StockEvent{Type: TypeStockUpdate, Action: action, Products: products, Message: message}
}

func (e StockEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Decode parses a message produced by Encode.
func Decode(msg []byte) (StockEvent, error) {
	var e StockEvent
	err := json.Unmarshal(msg, &e)
	return e, err
}
