package utils

import "math"

// ToMinorUnits converte um valor em reais para centavos. O arredondamento
// é half-away-from-zero (math.Round), determinístico: 10.5 -> 1050,
// 0.005 -> 1.
func ToMinorUnits(amount float64) int64 {
    return int64(math.Round(amount * 100))
}
