package i18n

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "en", DetectLanguage("en-US,en;q=0.9"))
	assert.Equal(t, "ar", DetectLanguage("ar-EG,ar;q=0.9,en;q=0.5"))
	assert.Equal(t, "fr", DetectLanguage("fr-CA"))
	assert.Equal(t, "en", DetectLanguage(""))
	assert.Equal(t, "en", DetectLanguage("ja-JP"))
}

func TestT_Fallbacks(t *testing.T) {
	assert.Equal(t, "Subtotal", T("en", KeySubtotal))
	assert.Equal(t, "Remise", T("fr", KeyDiscount))
	assert.Equal(t, "Total", T("pt", KeyTotal))
	assert.Equal(t, "__nope__", T("en", "__nope__"))
}

func TestT_LowStockMessageArguments(t *testing.T) {
	msg := fmt.Sprintf(T("es", KeyLowStock), "Abaya", 2)
	assert.Equal(t, "Stock bajo: quedan 2 de Abaya", msg)
}

func TestMoney(t *testing.T) {
	got := Money("en", "USD", decimal.RequireFromString("1234.5"))
	assert.Contains(t, got, "USD")
	assert.Contains(t, got, "1,234.50")

	assert.Contains(t, Money("en", "XYZ1", decimal.NewFromInt(3)), "XYZ1")
	assert.True(t, ValidCurrency("EGP"))
	assert.False(t, ValidCurrency("nope"))
	assert.True(t, IsRTL("ar"))
}
