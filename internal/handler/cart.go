package handler

import (
	"net/http"

	"nedpos/internal/checkout"
	"nedpos/internal/dto"
	"nedpos/internal/middleware"
	"nedpos/internal/service"

	"github.com/gin-gonic/gin"
)

// CartHandler serves the open cart of the authenticated cashier.
type CartHandler struct{ svc service.CartService }

func NewCartHandler(svc service.CartService) *CartHandler { return &CartHandler{svc: svc} }

// Get godoc
// @Summary Current cart with totals
// @Description discount_type and discount_value preview a discount without storing it.
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param discount_type query string false "FIXED or PERCENT"
// @Param discount_value query string false "Discount value"
// @Success 200 {object} dto.CartResponse
// @Router /v1/cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	var in dto.DiscountInput
	if err := c.ShouldBindQuery(&in); err != nil {
		in = dto.DiscountInput{}
	}
	resp, err := h.svc.Get(c.Request.Context(), middleware.Cashier(c), checkout.ParseDiscount(in.Type, string(in.Value)))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddItem godoc
// @Summary Add a product to the cart
// @Description Adding the same product and variant again increases its quantity.
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AddCartItemRequest true "Item"
// @Success 200 {object} dto.CartResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddItem(c.Request.Context(), middleware.Cashier(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}
	variantID, ok := queryID(c, "variant_id")
	if !ok {
		return
	}
	resp, err := h.svc.RemoveItem(c.Request.Context(), middleware.Cashier(c), productID, variantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) SetRentalDays(c *gin.Context) {
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}
	var req dto.RentalDaysRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetRentalDays(c.Request.Context(), middleware.Cashier(c), productID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.svc.Clear(c.Request.Context(), middleware.Cashier(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout godoc
// @Summary Commit the cart as a sale
// @Description The cart is emptied only when the sale is stored.
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CheckoutRequest true "Payment"
// @Success 201 {object} model.Sale
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Failure 500 {object} apierror.APIError
// @Router /v1/cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sale, err := h.svc.Checkout(c.Request.Context(), middleware.Cashier(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}
