package dto

type ReceiptResponse struct {
	ID          string  `json:"id"`
	SaleID      string  `json:"sale_id"`
	Status      string  `json:"status"`
	PDFUrl      *string `json:"pdf_url"`
	RetryCount  int     `json:"retry_count"`
	NextRetryAt *string `json:"next_retry_at"`
	LastError   *string `json:"last_error"`
	CreatedAt   string  `json:"created_at"`
}
