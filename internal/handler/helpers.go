package handler

import (
	"errors"
	"net/http"
	"reflect"

	"nedpos/internal/apierror"
	"nedpos/internal/checkout"
	"nedpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

// bindQuery is bindAndValidate for query-string filters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

func runValidation(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// paramID parses a UUID path parameter, answering 400 when malformed.
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return uuid.Nil, false
	}
	return id, true
}

// queryID parses an optional UUID query parameter.
func queryID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid "+name))
		return nil, false
	}
	return &id, true
}

type errorMapping struct {
	err    error
	status int
	code   string
}

// domainErrors maps service and checkout sentinels to HTTP responses.
var domainErrors = []errorMapping{
	{service.ErrEmptyCart, http.StatusBadRequest, "empty_cart"},
	{service.ErrNotAuthenticated, http.StatusUnauthorized, "not_authenticated"},
	{service.ErrInvalidPaymentMethod, http.StatusBadRequest, "invalid_payment_method"},
	{service.ErrCustomerNotFound, http.StatusNotFound, "customer_not_found"},
	{service.ErrProductNotFound, http.StatusNotFound, "product_not_found"},
	{service.ErrSaleNotFound, http.StatusNotFound, "sale_not_found"},
	{service.ErrRepairNotFound, http.StatusNotFound, "repair_not_found"},
	{service.ErrSupplierNotFound, http.StatusNotFound, "supplier_not_found"},
	{service.ErrNotificationNotFound, http.StatusNotFound, "notification_not_found"},
	{service.ErrReceiptNotFound, http.StatusNotFound, "receipt_not_found"},
	{service.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{service.ErrReceiptNotReady, http.StatusConflict, "receipt_not_ready"},
	{service.ErrTicketNotReady, http.StatusConflict, "ticket_not_ready"},
	{service.ErrDuplicateBarcode, http.StatusConflict, "duplicate_barcode"},
	{service.ErrUsernameTaken, http.StatusConflict, "username_taken"},
	{service.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{service.ErrVariantRequired, http.StatusBadRequest, "variant_required"},
	{service.ErrServiceStock, http.StatusBadRequest, "service_stock"},
	{service.ErrInvalidCurrency, http.StatusBadRequest, "invalid_currency"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{service.ErrInvalidToken, http.StatusUnauthorized, "invalid_token"},
	{checkout.ErrOutOfStock, http.StatusConflict, "out_of_stock"},
	{checkout.ErrUnknownVariant, http.StatusBadRequest, "unknown_variant"},
	{checkout.ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity"},
	{checkout.ErrLineNotFound, http.StatusNotFound, "line_not_found"},
	{checkout.ErrNotRental, http.StatusBadRequest, "not_rental"},
	{checkout.ErrInvalidRentalDay, http.StatusBadRequest, "invalid_rental_days"},
}

// respondError writes the mapped domain error, or a generic 500 for anything
// else. ErrCommitFailed keeps its cause out of the response.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrCommitFailed) {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.WithCode("commit_failed", service.ErrCommitFailed.Error()))
		return
	}
	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			c.JSON(m.status, apierror.WithCode(m.code, err.Error()))
			return
		}
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
}
