package infra

// pdf.go: receipt and repair ticket generation using go-pdf/fpdf.
// Tickets are sized for 74mm thermal paper and carry:
//   - Store header (name, phone, registration number)
//   - Ticket number, timestamp and cashier
//   - Item table (name, variant, quantity, line total)
//   - Subtotal, discount and bold total
//   - Payment method and footer text
//
// Files are written to storagePath/receipt_{ticket}.pdf and
// storagePath/repair_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nedpos/internal/i18n"
	"nedpos/internal/model"

	"github.com/go-pdf/fpdf"
)

const (
	ticketWidth  = 74.0
	ticketMargin = 4.0
)

// ticketWriter wraps fpdf with the store's language and currency.
type ticketWriter struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	lang     string
	currency string
	contentW float64
}

func newTicket(store *model.StoreSettings, height float64) *ticketWriter {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: ticketWidth, Ht: height},
	})
	pdf.SetMargins(ticketMargin, ticketMargin, ticketMargin)
	pdf.SetAutoPageBreak(true, ticketMargin)
	pdf.AddPage()

	// Core fonts cannot shape right-to-left scripts; those stores get English tickets.
	lang := store.Language
	if lang == "" || i18n.IsRTL(lang) {
		lang = i18n.DefaultLanguage
	}
	return &ticketWriter{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		lang:     lang,
		currency: store.Currency,
		contentW: ticketWidth - 2*ticketMargin,
	}
}

func (w *ticketWriter) t(key string) string { return w.tr(i18n.T(w.lang, key)) }

func (w *ticketWriter) line(h float64, style string, size float64, text, align string) {
	w.pdf.SetFont("Helvetica", style, size)
	w.pdf.CellFormat(w.contentW, h, w.tr(text), "", 1, align, false, 0, "")
}

func (w *ticketWriter) pair(h float64, style string, size float64, label, value string) {
	w.pdf.SetFont("Helvetica", style, size)
	w.pdf.CellFormat(w.contentW*0.55, h, label, "", 0, "L", false, 0, "")
	w.pdf.CellFormat(w.contentW*0.45, h, w.tr(value), "", 1, "R", false, 0, "")
}

func (w *ticketWriter) separator() {
	w.pdf.Ln(1)
	y := w.pdf.GetY()
	w.pdf.Line(ticketMargin, y, ticketWidth-ticketMargin, y)
	w.pdf.Ln(2)
}

func (w *ticketWriter) header(store *model.StoreSettings, title string) {
	w.line(7, "B", 12, store.Name, "C")
	if store.Phone != "" {
		w.line(4, "", 7, store.Phone, "C")
	}
	if store.RegistrationNumber != "" {
		w.line(4, "", 7, store.RegistrationNumber, "C")
	}
	w.pdf.SetFont("Helvetica", "", 8)
	w.pdf.CellFormat(w.contentW, 5, title, "", 1, "C", false, 0, "")
	w.pdf.Ln(1)
}

func (w *ticketWriter) footer(store *model.StoreSettings) {
	w.pdf.Ln(3)
	text := store.FooterText
	if text == "" {
		text = i18n.T(w.lang, i18n.KeyThanks)
	}
	w.pdf.SetFont("Helvetica", "I", 7)
	w.pdf.MultiCell(w.contentW, 4, w.tr(text), "", "C", false)
}

func (w *ticketWriter) save(storagePath, fileName string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fileName)
	if err := w.pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateReceiptPDF renders the sale receipt and returns the written path.
func GenerateReceiptPDF(sale *model.Sale, store *model.StoreSettings, storagePath string) (string, error) {
	height := 95.0 + 9*float64(len(sale.Items))
	w := newTicket(store, height)

	w.header(store, w.t(i18n.KeyReceipt))

	w.pdf.SetFont("Helvetica", "B", 8)
	w.pdf.CellFormat(w.contentW, 5, fmt.Sprintf("%s #%d", w.t(i18n.KeyTicket), sale.TicketNumber), "", 1, "L", false, 0, "")
	w.pdf.SetFont("Helvetica", "", 7)
	w.pdf.CellFormat(w.contentW, 4, sale.Date.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	w.pdf.CellFormat(w.contentW, 4, w.t(i18n.KeyCashier)+": "+w.tr(sale.Cashier), "", 1, "L", false, 0, "")
	if sale.CustomerName != nil {
		w.pdf.CellFormat(w.contentW, 4, w.t(i18n.KeyCustomer)+": "+w.tr(*sale.CustomerName), "", 1, "L", false, 0, "")
	}
	w.separator()

	col1 := w.contentW * 0.52
	col2 := w.contentW * 0.12
	col3 := w.contentW * 0.36
	for _, item := range sale.Items {
		name := []rune(item.ProductName)
		if len(name) > 24 {
			name = append(name[:23], '.')
		}
		w.pdf.SetFont("Helvetica", "", 7)
		w.pdf.CellFormat(col1, 4, w.tr(string(name)), "", 0, "L", false, 0, "")
		w.pdf.CellFormat(col2, 4, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		w.pdf.CellFormat(col3, 4, w.tr(i18n.Money(w.lang, w.currency, item.LineTotal())), "", 1, "R", false, 0, "")

		var extra []string
		if item.VariantLabel != "" {
			extra = append(extra, item.VariantLabel)
		}
		if item.RentalDays != nil {
			extra = append(extra, fmt.Sprintf("%d %s", *item.RentalDays, i18n.T(w.lang, i18n.KeyRentalDays)))
		}
		if len(extra) > 0 {
			w.pdf.SetFont("Helvetica", "I", 6)
			w.pdf.CellFormat(w.contentW, 3.5, "  "+w.tr(strings.Join(extra, " · ")), "", 1, "L", false, 0, "")
		}
	}
	w.separator()

	w.pair(4, "", 7, w.t(i18n.KeySubtotal), i18n.Money(w.lang, w.currency, sale.Subtotal))
	if !sale.Discount.IsZero() {
		w.pair(4, "", 7, w.t(i18n.KeyDiscount), "-"+i18n.Money(w.lang, w.currency, sale.Discount))
	}
	w.pair(6, "B", 9, w.t(i18n.KeyTotal), i18n.Money(w.lang, w.currency, sale.Total))
	w.pdf.Ln(1)
	w.pair(4, "", 7, w.t(i18n.KeyPayment), i18n.T(w.lang, string(sale.PaymentMethod)))

	w.footer(store)
	return w.save(storagePath, fmt.Sprintf("receipt_%d.pdf", sale.TicketNumber))
}

// GenerateRepairTicketPDF renders the pickup ticket handed over with a completed repair.
func GenerateRepairTicketPDF(r *model.Repair, store *model.StoreSettings, storagePath string) (string, error) {
	w := newTicket(store, 90)
	w.header(store, w.t(i18n.KeyRepairTicket))

	if r.Tag != "" {
		w.line(6, "B", 11, "#"+r.Tag, "C")
	}
	w.pdf.SetFont("Helvetica", "", 7)
	w.pdf.CellFormat(w.contentW, 4, w.t(i18n.KeyCustomer)+": "+w.tr(r.CustomerName), "", 1, "L", false, 0, "")
	w.pdf.CellFormat(w.contentW, 4, w.t(i18n.KeyGarment)+": "+w.tr(r.Garment), "", 1, "L", false, 0, "")
	if r.IssueDescription != "" {
		w.pdf.MultiCell(w.contentW, 4, w.t(i18n.KeyIssue)+": "+w.tr(r.IssueDescription), "", "L", false)
	}
	w.separator()
	w.pdf.CellFormat(w.contentW, 4, w.t(i18n.KeyDate)+": "+r.ReceivedAt.Format("02/01/2006"), "", 1, "L", false, 0, "")
	if r.CompletedAt != nil {
		w.pdf.CellFormat(w.contentW, 4, string(r.Status)+": "+r.CompletedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	}

	w.footer(store)
	return w.save(storagePath, "repair_"+r.ID.String()+".pdf")
}
