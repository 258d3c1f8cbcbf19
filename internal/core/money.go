// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing ledger amounts from spreadsheet
// cells and formatting them back for display.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a spreadsheet cell into a decimal amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators, an optional
// leading sign, and surrounding whitespace. Ledger amounts are signed, so
// negative values and zero are valid. Returns ErrInvalidAmount for anything
// that is not a plain decimal number, including grouped thousands: a single
// comma followed by exactly three digits is read as a thousands separator and
// rejected rather than guessed.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("12,34")  -> 12.34, nil
//	ParseAmount("-250")   -> -250, nil
//	ParseAmount("1,500")  -> 0, ErrInvalidAmount
//	ParseAmount("12 EUR") -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Contains(s, ",") {
		_, frac, _ := strings.Cut(s, ",")
		if strings.Count(s, ",") > 1 || strings.Contains(s, ".") || len(frac) == 3 {
			return decimal.Zero, ErrInvalidAmount
		}
		// Normalize decimal comma to dot
		s = strings.Replace(s, ",", ".", 1)
	}
	digits := strings.TrimLeft(s, "+-")
	if len(s)-len(digits) > 1 || digits == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Count(digits, ".") > 1 {
		return decimal.Zero, ErrInvalidAmount
	}
	for _, r := range digits {
		if r != '.' && !unicode.IsDigit(r) {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmount renders an amount with two decimals for reports and menus.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
