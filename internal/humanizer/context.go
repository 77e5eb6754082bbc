package humanizer

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"txHumanizer/internal/format"
	"txHumanizer/internal/model"
	"txHumanizer/internal/namer"
)

// ContractMeta carries per-contract facts gathered before humanizing, such
// as the staking token of a rewards contract.
type ContractMeta struct {
	Address string            `json:"address"`
	Manager string            `json:"manager,omitempty"`
	Data    map[string]string `json:"data,omitempty"`
}

// Get returns a metadata value, "" when absent.
func (m ContractMeta) Get(key string) string {
	if m.Data == nil {
		return ""
	}
	return m.Data[key]
}

// Options selects the rendering and deadline behavior.
type Options struct {
	Extended bool
	// Mined suppresses deadline notes for transactions already included.
	Mined bool
}

// DecodeContext is everything a summary function may read.
type DecodeContext struct {
	Network  model.Network
	Tx       model.TransactionRecord
	Info     *model.HumanizerInfo
	Contract ContractMeta
	Module   string
	Method   abi.Method
	Inputs   Inputs
	Options  Options
	Now      time.Time
}

// AddressRef names an address.
func (c *DecodeContext) AddressRef(addr common.Address) model.AddressRef {
	return namer.Address(c.Info, addr.Hex())
}

// TokenName references a token without an amount.
func (c *DecodeContext) TokenName(token string) model.TokenRef {
	return c.tokenRef(token, "", 0)
}

// TokenAmount references an amount of a token displayed with up to
// precision fraction digits; precision <= 0 means the token decimals.
func (c *DecodeContext) TokenAmount(token string, amount *big.Int, precision int) model.TokenRef {
	raw := "0"
	if amount != nil {
		raw = amount.String()
	}
	return c.tokenRef(token, raw, precision)
}

// NativeAmount references an amount of the network's native coin.
func (c *DecodeContext) NativeAmount(amount *big.Int) model.TokenRef {
	raw := "0"
	if amount != nil {
		raw = amount.String()
	}
	return model.TokenRef{
		Amount:   raw,
		Decimals: c.Network.NativeDecimals,
		Symbol:   c.Network.NativeSymbol,
		Known:    true,
	}
}

// Deadline formats an expiration timestamp for the action note.
func (c *DecodeContext) Deadline(epochSeconds *big.Int) string {
	return format.FormatDeadlineBig(epochSeconds, c.Options.Mined, c.Now)
}

// IsSender reports whether addr is the transaction sender.
func (c *DecodeContext) IsSender(addr common.Address) bool {
	return c.Tx.From != "" && c.Tx.FromAddress() == addr
}

// Target is the called contract.
func (c *DecodeContext) Target() common.Address {
	return c.Tx.ToAddress()
}

func (c *DecodeContext) tokenRef(token, raw string, precision int) model.TokenRef {
	ref := model.TokenRef{Address: token, Amount: raw, Precision: precision}
	if strings.TrimSpace(token) == "" {
		return ref
	}
	if meta, ok := namer.Token(c.Info, token); ok {
		ref.Known = true
		ref.Decimals = meta.Decimals
		ref.Symbol = meta.Label()
		if name, ok := c.Info.Name(token); ok && ref.Symbol == "" {
			ref.Symbol = name
		}
		return ref
	}
	ref.Symbol = namer.ResolveName(c.Info, token)
	return ref
}
