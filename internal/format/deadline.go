package format

import (
	"fmt"
	"math/big"
	"time"
)

const (
	expiredGrace  = 2 * time.Minute
	expiryHorizon = 10 * time.Minute
)

// FormatDeadline describes how close an epoch-seconds deadline is to now.
// Mined transactions and deadlines outside the reporting window yield "".
func FormatDeadline(epochSeconds int64, isFinalized bool, now time.Time) string {
	if isFinalized {
		return ""
	}
	diff := time.Unix(epochSeconds, 0).Sub(now)
	switch {
	case diff <= 0 && diff > -expiredGrace:
		return "expired just now"
	case diff <= 0:
		return ""
	case diff < time.Minute:
		return "expires in less than a minute"
	case diff < expiryHorizon:
		return fmt.Sprintf("expires in %d minutes", int(diff/time.Minute))
	}
	return ""
}

// FormatDeadlineBig is FormatDeadline for ABI-decoded timestamps. Values
// beyond int64 are treated as never expiring.
func FormatDeadlineBig(epochSeconds *big.Int, isFinalized bool, now time.Time) string {
	if epochSeconds == nil || !epochSeconds.IsInt64() {
		return ""
	}
	return FormatDeadline(epochSeconds.Int64(), isFinalized, now)
}
