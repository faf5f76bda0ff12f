// Package amountwords renders monetary amounts as upper-case Spanish
// text for the legal amount line of printed tickets.
//
// Output is unaccented ASCII ("DIECISEIS", "UN MILLON") because thermal
// ticket printers ship with plain code pages.
package amountwords

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var units = []string{
	"", "UNO", "DOS", "TRES", "CUATRO", "CINCO", "SEIS", "SIETE", "OCHO", "NUEVE",
	"DIEZ", "ONCE", "DOCE", "TRECE", "CATORCE", "QUINCE",
	"DIECISEIS", "DIECISIETE", "DIECIOCHO", "DIECINUEVE", "VEINTE",
}

var tens = []string{
	"", "DIEZ", "VEINTE", "TREINTA", "CUARENTA", "CINCUENTA",
	"SESENTA", "SETENTA", "OCHENTA", "NOVENTA",
}

var hundreds = []string{
	"", "CIENTO", "DOSCIENTOS", "TRESCIENTOS", "CUATROCIENTOS", "QUINIENTOS",
	"SEISCIENTOS", "SETECIENTOS", "OCHOCIENTOS", "NOVECIENTOS",
}

// ToWords converts a non-negative amount into the legal ticket string:
// "<INTEGER PART IN WORDS> PESOS" or, with a fractional part,
// "<INTEGER PART IN WORDS> PESOS CON <CC>/100".
//
// Negative amounts are out of contract; the pricing engine guarantees
// the final total is never negative.
func ToWords(amount decimal.Decimal) string {
	totalCents := amount.Round(2).Mul(decimal.NewFromInt(100)).IntPart()
	pesos := totalCents / 100
	cents := totalCents % 100

	words := fixUno(integerWords(pesos))

	if cents == 0 {
		return words + " PESOS"
	}
	// Cents always print as two digits, zero-padded.
	return fmt.Sprintf("%s PESOS CON %02d/100", words, cents)
}

// integerWords renders n in Spanish words by base-1000 chunking.
func integerWords(n int64) string {
	if n == 0 {
		return "CERO"
	}

	if n >= 1_000_000 {
		millions := n / 1_000_000
		remainder := n % 1_000_000

		var head string
		if millions == 1 {
			head = "UN MILLON"
		} else {
			head = fixUno(integerWords(millions)) + " MILLONES"
		}

		if remainder == 0 {
			return head
		}
		return head + " " + integerWords(remainder)
	}

	if n >= 1000 {
		thousands := n / 1000
		remainder := n % 1000

		var head string
		switch {
		case thousands == 1 && remainder == 0:
			// Legal-ticket convention: a round thousand prints "UN MIL".
			head = "UN MIL"
		case thousands == 1:
			head = "MIL"
		default:
			head = fixUno(integerWords(thousands)) + " MIL"
		}

		if remainder == 0 {
			return head
		}
		return head + " " + integerWords(remainder)
	}

	return belowThousand(n)
}

// belowThousand renders 1–999.
func belowThousand(n int64) string {
	if n == 100 {
		return "CIEN"
	}

	var parts []string
	if n >= 100 {
		parts = append(parts, hundreds[n/100])
		n %= 100
	}

	switch {
	case n == 0:
	case n <= 20:
		parts = append(parts, units[n])
	case n < 30:
		// Agglutinated form: 21–29 use the "veinti" prefix.
		parts = append(parts, "VEINTI"+units[n%10])
	default:
		if n%10 == 0 {
			parts = append(parts, tens[n/10])
		} else {
			parts = append(parts, tens[n/10]+" Y "+units[n%10])
		}
	}

	return strings.Join(parts, " ")
}

// fixUno applies the apocope used before a noun: a trailing or bare
// "UNO" becomes "UN" ("TREINTA Y UN MIL", "UN PESOS"). The agglutinated
// "VEINTIUNO" is left as-is, matching the source tickets.
func fixUno(s string) string {
	if s == "UNO" {
		return "UN"
	}
	if strings.HasSuffix(s, " UNO") {
		return strings.TrimSuffix(s, " UNO") + " UN"
	}
	return s
}
