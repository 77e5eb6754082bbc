package modules

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"txHumanizer/internal/model"
)

const stakingRewardsABIJSON = `[
  {"inputs":[],"name":"exit","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[],"name":"getReward","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"stake","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"withdraw","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[],"name":"stakingToken","outputs":[{"internalType":"contract IERC20","name":"","type":"address"}],"stateMutability":"view","type":"function"},
  {"inputs":[],"name":"rewardsToken","outputs":[{"internalType":"contract IERC20","name":"","type":"address"}],"stateMutability":"view","type":"function"},
  {"inputs":[{"internalType":"address","name":"account","type":"address"}],"name":"balanceOf","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
  {"inputs":[{"internalType":"address","name":"account","type":"address"}],"name":"earned","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

const permit2ABIJSON = `[
  {
    "inputs": [
      {"internalType": "address", "name": "token", "type": "address"},
      {"internalType": "address", "name": "spender", "type": "address"},
      {"internalType": "uint160", "name": "amount", "type": "uint160"},
      {"internalType": "uint48", "name": "expiration", "type": "uint48"}
    ],
    "name": "approve", "outputs": [], "stateMutability": "nonpayable", "type": "function"
  },
  {
    "inputs": [
      {"internalType": "address", "name": "owner", "type": "address"},
      {
        "components": [
          {
            "components": [
              {"internalType": "address", "name": "token", "type": "address"},
              {"internalType": "uint160", "name": "amount", "type": "uint160"},
              {"internalType": "uint48", "name": "expiration", "type": "uint48"},
              {"internalType": "uint48", "name": "nonce", "type": "uint48"}
            ],
            "internalType": "struct IAllowanceTransfer.PermitDetails", "name": "details", "type": "tuple"
          },
          {"internalType": "address", "name": "spender", "type": "address"},
          {"internalType": "uint256", "name": "sigDeadline", "type": "uint256"}
        ],
        "internalType": "struct IAllowanceTransfer.PermitSingle", "name": "permitSingle", "type": "tuple"
      },
      {"internalType": "bytes", "name": "signature", "type": "bytes"}
    ],
    "name": "permit", "outputs": [], "stateMutability": "nonpayable", "type": "function"
  },
  {
    "inputs": [
      {"internalType": "address", "name": "owner", "type": "address"},
      {
        "components": [
          {
            "components": [
              {"internalType": "address", "name": "token", "type": "address"},
              {"internalType": "uint160", "name": "amount", "type": "uint160"},
              {"internalType": "uint48", "name": "expiration", "type": "uint48"},
              {"internalType": "uint48", "name": "nonce", "type": "uint48"}
            ],
            "internalType": "struct IAllowanceTransfer.PermitDetails[]", "name": "details", "type": "tuple[]"
          },
          {"internalType": "address", "name": "spender", "type": "address"},
          {"internalType": "uint256", "name": "sigDeadline", "type": "uint256"}
        ],
        "internalType": "struct IAllowanceTransfer.PermitBatch", "name": "permitBatch", "type": "tuple"
      },
      {"internalType": "bytes", "name": "signature", "type": "bytes"}
    ],
    "name": "permit", "outputs": [], "stateMutability": "nonpayable", "type": "function"
  },
  {
    "inputs": [
      {
        "components": [
          {"internalType": "address", "name": "from", "type": "address"},
          {"internalType": "address", "name": "to", "type": "address"},
          {"internalType": "uint160", "name": "amount", "type": "uint160"},
          {"internalType": "address", "name": "token", "type": "address"}
        ],
        "internalType": "struct IAllowanceTransfer.AllowanceTransferDetails[]", "name": "transferDetails", "type": "tuple[]"
      }
    ],
    "name": "transferFrom", "outputs": [], "stateMutability": "nonpayable", "type": "function"
  },
  {
    "inputs": [
      {"internalType": "address", "name": "from", "type": "address"},
      {"internalType": "address", "name": "to", "type": "address"},
      {"internalType": "uint160", "name": "amount", "type": "uint160"},
      {"internalType": "address", "name": "token", "type": "address"}
    ],
    "name": "transferFrom", "outputs": [], "stateMutability": "nonpayable", "type": "function"
  },
  {
    "inputs": [
      {"internalType": "address", "name": "", "type": "address"},
      {"internalType": "address", "name": "", "type": "address"},
      {"internalType": "address", "name": "", "type": "address"}
    ],
    "name": "allowance",
    "outputs": [
      {"internalType": "uint160", "name": "amount", "type": "uint160"},
      {"internalType": "uint48", "name": "expiration", "type": "uint48"},
      {"internalType": "uint48", "name": "nonce", "type": "uint48"}
    ],
    "stateMutability": "view", "type": "function"
  }
]`

const erc20ABIJSON = `[
  {"inputs":[{"internalType":"address","name":"spender","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"approve","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"address","name":"from","type":"address"},{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"transferFrom","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
]`

const wethABIJSON = `[
  {"inputs":[],"name":"deposit","outputs":[],"stateMutability":"payable","type":"function"},
  {"inputs":[{"internalType":"uint256","name":"wad","type":"uint256"}],"name":"withdraw","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

type lazyABI struct {
	json   string
	once   sync.Once
	parsed abi.ABI
	err    error
}

func (l *lazyABI) get() (abi.ABI, error) {
	l.once.Do(func() {
		l.parsed, l.err = abi.JSON(strings.NewReader(l.json))
	})
	return l.parsed, l.err
}

var builtinABIs = map[string]*lazyABI{
	StakingRewardsName: {json: stakingRewardsABIJSON},
	Permit2Name:        {json: permit2ABIJSON},
	ERC20Name:          {json: erc20ABIJSON},
	WETHName:           {json: wethABIJSON},
}

// ModuleABI returns the ABI for a module, preferring an override carried in
// the humanizer info.
func ModuleABI(info *model.HumanizerInfo, module string) (abi.ABI, error) {
	if raw, ok := info.ABI(module); ok {
		parsed, err := parseRawABI(raw)
		if err != nil {
			return abi.ABI{}, fmt.Errorf("parse %s abi from info: %w", module, err)
		}
		return parsed, nil
	}
	builtin, ok := builtinABIs[module]
	if !ok {
		return abi.ABI{}, fmt.Errorf("no abi for module %s", module)
	}
	parsed, err := builtin.get()
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parse %s abi: %w", module, err)
	}
	return parsed, nil
}

// parseRawABI accepts either a bare ABI array or a {"abi": [...]} artifact.
func parseRawABI(raw json.RawMessage) (abi.ABI, error) {
	var artifact struct {
		ABI json.RawMessage `json:"abi"`
	}
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal(raw, &artifact); err != nil {
			return abi.ABI{}, err
		}
		trimmed = string(artifact.ABI)
	}
	return abi.JSON(strings.NewReader(trimmed))
}
