package model

// DecodeError records a transaction the humanizer could not summarize.
type DecodeError struct {
	RunID    string `json:"run_id"`
	Line     uint64 `json:"line,omitempty"`
	ChainID  uint64 `json:"chain_id"`
	TxHash   string `json:"tx_hash,omitempty"`
	To       string `json:"to,omitempty"`
	Selector string `json:"selector,omitempty"`
	Module   string `json:"module,omitempty"`
	Method   string `json:"method,omitempty"`
	Kind     string `json:"kind"`
	Error    string `json:"error"`
}
