package format

import (
	"math/big"
	"strings"
)

// DefaultMaxFractionDigits is the display precision used for token amounts
// when the caller has no better value.
const DefaultMaxFractionDigits = 18

// AmountOptions controls the rendering of a scaled integer amount.
type AmountOptions struct {
	Grouping          bool
	MinFractionDigits int
	MaxFractionDigits int
}

// FormatTokenAmount renders raw / 10^decimals with thousands separators.
// raw may be decimal or 0x-prefixed hex; anything else is returned unchanged.
func FormatTokenAmount(raw string, decimals uint8, maxFractionDigits int) string {
	value, ok := ParseRaw(raw)
	if !ok {
		return raw
	}
	if maxFractionDigits < 0 {
		maxFractionDigits = 0
	}
	return FormatAmount(value, decimals, AmountOptions{
		Grouping:          true,
		MinFractionDigits: min(2, maxFractionDigits),
		MaxFractionDigits: maxFractionDigits,
	})
}

// FormatAmount renders raw / 10^decimals rounded half away from zero at
// MaxFractionDigits, trimming trailing zeros down to MinFractionDigits.
func FormatAmount(raw *big.Int, decimals uint8, opts AmountOptions) string {
	if raw == nil {
		raw = new(big.Int)
	}
	maxDigits := opts.MaxFractionDigits
	if maxDigits < 0 {
		maxDigits = 0
	}
	minDigits := opts.MinFractionDigits
	if minDigits < 0 {
		minDigits = 0
	}
	if minDigits > maxDigits {
		minDigits = maxDigits
	}

	abs := new(big.Int).Abs(raw)
	rat := new(big.Rat).SetFrac(abs, pow10(int(decimals)))
	text := rat.FloatString(maxDigits)

	intPart, fracPart, _ := strings.Cut(text, ".")
	fracPart = trimFraction(fracPart, minDigits)
	if opts.Grouping {
		intPart = groupThousands(intPart)
	}

	out := intPart
	if fracPart != "" {
		out += "." + fracPart
	}
	if raw.Sign() < 0 && strings.Trim(text, "0.") != "" {
		out = "-" + out
	}
	return out
}

// ParseRaw parses a decimal or 0x-prefixed hex integer.
func ParseRaw(raw string) (*big.Int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		if len(s) == 2 {
			return nil, false
		}
		return new(big.Int).SetString(s[2:], 16)
	}
	return new(big.Int).SetString(s, 10)
}

// IsMaxUint reports whether v equals 2^bits - 1, the unlimited allowance of
// an unsigned integer of that width.
func IsMaxUint(v *big.Int, bits int) bool {
	if v == nil || bits <= 0 {
		return false
	}
	return v.Cmp(MaxUint(bits)) == 0
}

// MaxUint returns 2^bits - 1.
func MaxUint(bits int) *big.Int {
	max := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return max.Sub(max, big.NewInt(1))
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

func trimFraction(frac string, minDigits int) string {
	end := len(frac)
	for end > minDigits && frac[end-1] == '0' {
		end--
	}
	return frac[:end]
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
