package i18n

// Message keys.
const (
	KeyReceipt       = "receipt"
	KeyTicket        = "ticket"
	KeyDate          = "date"
	KeyCashier       = "cashier"
	KeyCustomer      = "customer"
	KeySubtotal      = "subtotal"
	KeyDiscount      = "discount"
	KeyTotal         = "total"
	KeyPayment       = "payment"
	KeyRentalDays    = "rental_days"
	KeyThanks        = "thanks"
	KeyRepairTicket  = "repair_ticket"
	KeyGarment       = "garment"
	KeyIssue         = "issue"
	KeyLowStock      = "low_stock"
	KeyReceiptEmail  = "receipt_email"
	KeyPaymentCash   = "CASH"
	KeyPaymentCard   = "CARD"
	KeyPaymentWallet = "EWALLET"
)

var catalog = map[string]map[string]string{
	"en": {
		KeyReceipt:       "Receipt",
		KeyTicket:        "Ticket",
		KeyDate:          "Date",
		KeyCashier:       "Cashier",
		KeyCustomer:      "Customer",
		KeySubtotal:      "Subtotal",
		KeyDiscount:      "Discount",
		KeyTotal:         "Total",
		KeyPayment:       "Payment",
		KeyRentalDays:    "days",
		KeyThanks:        "Thank you for your visit",
		KeyRepairTicket:  "Repair ticket",
		KeyGarment:       "Garment",
		KeyIssue:         "Issue",
		KeyLowStock:      "Low stock: %s has %d left",
		KeyReceiptEmail:  "Your receipt from %s",
		KeyPaymentCash:   "Cash",
		KeyPaymentCard:   "Card",
		KeyPaymentWallet: "E-wallet",
	},
	"ar": {
		KeyReceipt:       "إيصال",
		KeyTicket:        "رقم",
		KeyDate:          "التاريخ",
		KeyCashier:       "الكاشير",
		KeyCustomer:      "العميل",
		KeySubtotal:      "المجموع الفرعي",
		KeyDiscount:      "الخصم",
		KeyTotal:         "الإجمالي",
		KeyPayment:       "الدفع",
		KeyRentalDays:    "أيام",
		KeyThanks:        "شكرا لزيارتكم",
		KeyRepairTicket:  "إيصال تصليح",
		KeyGarment:       "القطعة",
		KeyIssue:         "المشكلة",
		KeyLowStock:      "مخزون منخفض: %s متبقي %d",
		KeyReceiptEmail:  "إيصالك من %s",
		KeyPaymentCash:   "نقدا",
		KeyPaymentCard:   "بطاقة",
		KeyPaymentWallet: "محفظة إلكترونية",
	},
	"fr": {
		KeyReceipt:       "Reçu",
		KeyTicket:        "Ticket",
		KeyDate:          "Date",
		KeyCashier:       "Caissier",
		KeyCustomer:      "Client",
		KeySubtotal:      "Sous-total",
		KeyDiscount:      "Remise",
		KeyTotal:         "Total",
		KeyPayment:       "Paiement",
		KeyRentalDays:    "jours",
		KeyThanks:        "Merci de votre visite",
		KeyRepairTicket:  "Ticket de retouche",
		KeyGarment:       "Vêtement",
		KeyIssue:         "Problème",
		KeyLowStock:      "Stock faible : il reste %[2]d %[1]s",
		KeyReceiptEmail:  "Votre reçu de %s",
		KeyPaymentCash:   "Espèces",
		KeyPaymentCard:   "Carte",
		KeyPaymentWallet: "Portefeuille électronique",
	},
	"es": {
		KeyReceipt:       "Recibo",
		KeyTicket:        "Ticket",
		KeyDate:          "Fecha",
		KeyCashier:       "Cajero",
		KeyCustomer:      "Cliente",
		KeySubtotal:      "Subtotal",
		KeyDiscount:      "Descuento",
		KeyTotal:         "Total",
		KeyPayment:       "Pago",
		KeyRentalDays:    "días",
		KeyThanks:        "Gracias por su visita",
		KeyRepairTicket:  "Ticket de arreglo",
		KeyGarment:       "Prenda",
		KeyIssue:         "Problema",
		KeyLowStock:      "Stock bajo: quedan %[2]d de %[1]s",
		KeyReceiptEmail:  "Su recibo de %s",
		KeyPaymentCash:   "Efectivo",
		KeyPaymentCard:   "Tarjeta",
		KeyPaymentWallet: "Billetera electrónica",
	},
	"de": {
		KeyReceipt:       "Beleg",
		KeyTicket:        "Bon",
		KeyDate:          "Datum",
		KeyCashier:       "Kassierer",
		KeyCustomer:      "Kunde",
		KeySubtotal:      "Zwischensumme",
		KeyDiscount:      "Rabatt",
		KeyTotal:         "Gesamt",
		KeyPayment:       "Zahlung",
		KeyRentalDays:    "Tage",
		KeyThanks:        "Vielen Dank für Ihren Besuch",
		KeyRepairTicket:  "Änderungsschein",
		KeyGarment:       "Kleidungsstück",
		KeyIssue:         "Problem",
		KeyLowStock:      "Niedriger Bestand: %s, noch %d",
		KeyReceiptEmail:  "Ihr Beleg von %s",
		KeyPaymentCash:   "Bar",
		KeyPaymentCard:   "Karte",
		KeyPaymentWallet: "E-Wallet",
	},
}
