package utils

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// RoundWithTwoDecimalPlace arredonda para centavos, com meio centavo para longe do zero
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

// Percent retorna part/whole em percentual com duas casas; whole sem valor resulta em 0
func Percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}

	return decimal.NewFromFloat(part).
		Mul(hundred).
		DivRound(decimal.NewFromFloat(whole), 2).
		InexactFloat64()
}
