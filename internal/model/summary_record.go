package model

// SummaryRecord is the persisted result of humanizing one transaction.
type SummaryRecord struct {
	RunID       string   `json:"run_id"`
	Line        uint64   `json:"line,omitempty"`
	ChainID     uint64   `json:"chain_id"`
	TxHash      string   `json:"tx_hash,omitempty"`
	To          string   `json:"to"`
	Module      string   `json:"module"`
	Method      string   `json:"method"`
	Selector    string   `json:"selector"`
	Lines       []string `json:"lines,omitempty"`
	Actions     []Action `json:"actions,omitempty"`
	HumanizedAt string   `json:"humanized_at"`
}
