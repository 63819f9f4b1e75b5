package types

import (
	"math/big"
	"strconv"
	"strings"
)

const etherDecimals = 18

var weiPerEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(etherDecimals), nil)

// FormatEther renders a wei amount as an ether decimal string, keeping at
// least one fractional digit ("1.0", "0.05"). Unparsable input renders as
// "0.0".
func FormatEther(raw string) string {
	wei, ok := new(big.Int).SetString(strings.TrimSpace(raw), 10)
	if !ok {
		return "0.0"
	}
	negative := wei.Sign() < 0
	wei.Abs(wei)
	whole, frac := new(big.Int).QuoRem(wei, weiPerEther, new(big.Int))

	digits := frac.String()
	digits = strings.Repeat("0", etherDecimals-len(digits)) + digits
	digits = strings.TrimRight(digits, "0")
	if digits == "" {
		digits = "0"
	}
	result := whole.String() + "." + digits
	if negative {
		return "-" + result
	}
	return result
}

func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
