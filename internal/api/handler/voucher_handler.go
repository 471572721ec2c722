package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/confiteria/conference-system/internal/core/ports"
)

// VoucherHandler handles HTTP requests for registration vouchers.
type VoucherHandler struct {
	vouchers ports.VoucherService
}

func NewVoucherHandler(vouchers ports.VoucherService) *VoucherHandler {
	return &VoucherHandler{vouchers: vouchers}
}

type generateVoucherRequest struct {
	Buyer string `json:"buyer"`
	Type  string `json:"type" validate:"omitempty,oneof=regular sponsor speaker"`
}

// Generate handles POST /vouchers.
//
// @Summary      Mint a new registration voucher
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      generateVoucherRequest  true  "Voucher details"
// @Success      201   {object}  domain.Voucher
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /vouchers [post]
func (h *VoucherHandler) Generate(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req generateVoucherRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	voucher, err := h.vouchers.Generate(c.Request().Context(), actor, req.Buyer, req.Type)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, voucher)
}

// Get handles GET /vouchers/:id.
//
// @Summary      Get a voucher by ID
// @Tags         vouchers
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Voucher ID"
// @Success      200  {object}  domain.Voucher
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /vouchers/{id} [get]
func (h *VoucherHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	voucher, err := h.vouchers.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, voucher)
}
