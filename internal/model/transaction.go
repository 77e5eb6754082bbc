package model

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// TransactionRecord is a raw call as submitted to the humanizer.
type TransactionRecord struct {
	Hash    string `json:"hash,omitempty"`
	From    string `json:"from,omitempty" validate:"omitempty,eth_addr"`
	To      string `json:"to" validate:"required,eth_addr"`
	Data    string `json:"data,omitempty" validate:"omitempty,startswith=0x"`
	Value   string `json:"value,omitempty"`
	ChainID uint64 `json:"chain_id" validate:"required"`
}

// UnmarshalJSON accepts numeric or string value/chain id fields and the
// camel-cased chainId spelling used by wallet payloads.
func (tx *TransactionRecord) UnmarshalJSON(data []byte) error {
	type Alias TransactionRecord
	aux := struct {
		*Alias
		Value        json.RawMessage `json:"value,omitempty"`
		ChainID      json.RawMessage `json:"chain_id,omitempty"`
		ChainIDCamel json.RawMessage `json:"chainId,omitempty"`
	}{Alias: (*Alias)(tx)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if len(aux.Value) > 0 {
		tx.Value = rawScalar(aux.Value)
	}
	chainRaw := aux.ChainID
	if len(chainRaw) == 0 {
		chainRaw = aux.ChainIDCamel
	}
	if len(chainRaw) > 0 {
		text := rawScalar(chainRaw)
		if text != "" {
			id, err := strconv.ParseUint(text, 0, 64)
			if err != nil {
				return fmt.Errorf("chain id %q: %w", text, err)
			}
			tx.ChainID = id
		}
	}
	return nil
}

// Validate checks the record shape.
func (tx TransactionRecord) Validate() error {
	return validate.Struct(tx)
}

// ToAddress returns the call target.
func (tx TransactionRecord) ToAddress() common.Address {
	return common.HexToAddress(tx.To)
}

// FromAddress returns the sender, zero when unknown.
func (tx TransactionRecord) FromAddress() common.Address {
	return common.HexToAddress(tx.From)
}

// CallData decodes the hex call data. Empty data yields an empty slice.
func (tx TransactionRecord) CallData() ([]byte, error) {
	if tx.Data == "" || tx.Data == "0x" {
		return []byte{}, nil
	}
	return hexutil.Decode(tx.Data)
}

// ValueBig parses the native value in wei. Empty means zero.
func (tx TransactionRecord) ValueBig() (*big.Int, error) {
	text := strings.TrimSpace(tx.Value)
	if text == "" {
		return new(big.Int), nil
	}
	base := 10
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		text, base = text[2:], 16
	}
	v, ok := new(big.Int).SetString(text, base)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid value %q", tx.Value)
	}
	return v, nil
}

func rawScalar(raw json.RawMessage) string {
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		return ""
	}
	if unquoted, err := strconv.Unquote(text); err == nil {
		return unquoted
	}
	return text
}
