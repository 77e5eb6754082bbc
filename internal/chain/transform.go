package chain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"txHumanizer/internal/model"
)

// BuildTransactionRecord converts a signed transaction into the record the
// humanizer consumes, recovering the sender from its signature.
func BuildTransactionRecord(chainID *big.Int, tx *types.Transaction) (model.TransactionRecord, error) {
	if tx == nil {
		return model.TransactionRecord{}, errors.New("transaction is nil")
	}
	if tx.To() == nil {
		return model.TransactionRecord{}, fmt.Errorf("tx %s is a contract creation", tx.Hash().Hex())
	}
	if chainID == nil || !chainID.IsUint64() {
		return model.TransactionRecord{}, fmt.Errorf("invalid chain id %v", chainID)
	}

	signer := types.LatestSignerForChainID(chainID)
	from, err := types.Sender(signer, tx)
	if err != nil {
		return model.TransactionRecord{}, fmt.Errorf("recover sender of %s: %w", tx.Hash().Hex(), err)
	}

	value := "0"
	if tx.Value() != nil {
		value = tx.Value().String()
	}
	return model.TransactionRecord{
		Hash:    tx.Hash().Hex(),
		From:    from.Hex(),
		To:      tx.To().Hex(),
		Data:    hexutil.Encode(tx.Data()),
		Value:   value,
		ChainID: chainID.Uint64(),
	}, nil
}
