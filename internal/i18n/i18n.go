// Package i18n translates the handful of strings the backend renders itself
// (receipts, notifications) and formats money in the store's currency.
package i18n

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLanguage is used when nothing better matches.
const DefaultLanguage = "en"

var supported = []language.Tag{
	language.English, // first entry is the matcher fallback
	language.Arabic,
	language.French,
	language.Spanish,
	language.German,
}

var matcher = language.NewMatcher(supported)

// DetectLanguage picks the best supported language for an Accept-Language
// header or a bare code like "ar" or "fr-CA".
func DetectLanguage(accept string) string {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLanguage
	}
	base, _ := supported[idx].Base()
	return base.String()
}

// IsRTL reports whether text in lang is laid out right to left.
func IsRTL(lang string) bool { return lang == "ar" }

// T returns the translation of key in lang, falling back to English and then
// to the key itself.
func T(lang, key string) string {
	if m, ok := catalog[strings.ToLower(lang)]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := catalog[DefaultLanguage][key]; ok {
		return s
	}
	return key
}

// Money formats amount in the given ISO currency using lang's number
// conventions, e.g. "EGP 1,250.00". Unknown currency codes are printed as is.
func Money(lang, code string, amount decimal.Decimal) string {
	tag := language.Make(lang)
	p := message.NewPrinter(tag)

	unit, err := currency.ParseISO(code)
	label := strings.ToUpper(code)
	scale := 2
	if err == nil {
		label = unit.String()
		scale, _ = currency.Standard.Rounding(unit)
	}
	f, _ := amount.Round(int32(scale)).Float64()
	return p.Sprintf("%s %v", label, number.Decimal(f, number.Scale(scale)))
}

// ValidCurrency reports whether code is a known ISO 4217 currency.
func ValidCurrency(code string) bool {
	_, err := currency.ParseISO(code)
	return err == nil
}
