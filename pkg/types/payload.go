package types

// EntryFunctionPayloadType is the payload discriminator the fullnode expects
const EntryFunctionPayloadType = "entry_function_payload"

// EntryFunctionPayload is a call to an on-chain entry function
type EntryFunctionPayload struct {
	Type          string        `json:"type"`
	Function      string        `json:"function"`
	TypeArguments []string      `json:"type_arguments"`
	Arguments     []interface{} `json:"arguments"`
}

// NewEntryFunctionPayload builds a payload for function with the given arguments and no
// type arguments
func NewEntryFunctionPayload(function string, args ...interface{}) EntryFunctionPayload {
	if args == nil {
		args = []interface{}{}
	}
	return EntryFunctionPayload{
		Type:          EntryFunctionPayloadType,
		Function:      function,
		TypeArguments: []string{},
		Arguments:     args,
	}
}

// PendingTransaction is what the wallet hands back after a successful submission
type PendingTransaction struct {
	Hash string `json:"hash"`
}
