package offer

import "encoding/json"

// TokenDataID identifies a token by creator, collection and name
type TokenDataID struct {
	Creator    string `json:"creator"`
	Collection string `json:"collection"`
	Name       string `json:"name"`
}

// TokenID is a TokenDataID at a given property version
type TokenID struct {
	TokenDataID     TokenDataID `json:"token_data_id"`
	PropertyVersion string      `json:"property_version"`
}

// Record is the decoded value of an offer table item
type Record struct {
	State            int       `json:"state"`
	Sender           string    `json:"sender"`
	OfferID          string    `json:"offer_id"`
	Receiver         string    `json:"receiver"`
	SendTokens       []TokenID `json:"send_tokens"`
	ReceiveTokens    []TokenID `json:"receive_tokens"`
	ExtraSenderPay   string    `json:"extra_sender_pay"`
	ExtraReceiverPay string    `json:"extra_receiver_pay"`
}

// TableItem is one row of current_table_items
type TableItem struct {
	DecodedKey   json.RawMessage `json:"decoded_key"`
	DecodedValue Record          `json:"decoded_value"`
}

// QueryResult is the data section of the offer query
type QueryResult struct {
	CurrentTableItems []TableItem `json:"current_table_items"`
}

// Token is the display form of a token: collection and name only
type Token struct {
	Collection string `json:"collection"`
	Name       string `json:"name"`
}

// View is what gets displayed for an offer
type View struct {
	Sender string  `json:"sender"`
	Coins  uint64  `json:"coins"`
	Tokens []Token `json:"tokens"`
}
