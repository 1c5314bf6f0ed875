package handlers

import (
	"errors"
	"log"

	domainErrors "shipfee/internal/errors"
	"shipfee/internal/models"
	"shipfee/internal/services/shipping"
	"shipfee/internal/utils/response"
	"shipfee/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type ShippingHandler struct {
	shippingService shipping.Service
}

func NewShippingHandler(shippingService shipping.Service) *ShippingHandler {
	return &ShippingHandler{
		shippingService: shippingService,
	}
}

// CalculateFee is the checkout endpoint: one store, one method, one fee.
// A destination the method cannot serve is reported as 422 naming the method.
func (h *ShippingHandler) CalculateFee(c *fiber.Ctx) error {
	var req models.ShippingFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.ShippingRequest("", req)
	if err := v.Err(); err != nil {
		return response.Domain(c, fiber.StatusBadRequest, err)
	}

	quote, err := h.shippingService.Quote(c.UserContext(), req.Destination(), req.ShippingMethod)
	if err != nil {
		return quoteError(c, err)
	}

	if !quote.Available {
		unavailable := domainErrors.MethodUnavailable(quote.Method)
		return response.UnprocessableEntity(c, unavailable.Message, fiber.Map{
			"code":   unavailable.Code,
			"reason": quote.Reason,
		})
	}

	return c.JSON(models.ShippingFeeResponse{
		FeePerStore: *quote.Fee,
		DistanceKm:  *quote.DistanceKm,
		Method:      quote.Method,
	})
}

// Quote returns the raw FeeQuote, including unavailable ones, with 200.
func (h *ShippingHandler) Quote(c *fiber.Ctx) error {
	var req models.ShippingFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.ShippingRequest("", req)
	if err := v.Err(); err != nil {
		return response.Domain(c, fiber.StatusBadRequest, err)
	}

	quote, err := h.shippingService.Quote(c.UserContext(), req.Destination(), req.ShippingMethod)
	if err != nil {
		return quoteError(c, err)
	}

	return c.JSON(quote)
}

// BatchQuotes quotes every store of a cart. Per-store failures are reported
// inline; only a malformed batch fails the whole request.
func (h *ShippingHandler) BatchQuotes(c *fiber.Ctx) error {
	var req models.BatchShippingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.BatchRequest(req)
	if err := v.Err(); err != nil {
		return response.Domain(c, fiber.StatusBadRequest, err)
	}

	result, err := h.shippingService.QuoteStores(c.UserContext(), req.Stores)
	if err != nil {
		switch {
		case errors.Is(err, shipping.ErrEmptyBatch), errors.Is(err, shipping.ErrBatchTooLarge):
			return response.BadRequest(c, err.Error())
		}
		return quoteError(c, err)
	}

	return c.JSON(result)
}

func (h *ShippingHandler) ListMethods(c *fiber.Ctx) error {
	info, err := h.shippingService.Methods(c.UserContext())
	if err != nil {
		return quoteError(c, err)
	}
	return c.JSON(info)
}

// quoteError maps service errors to HTTP responses.
func quoteError(c *fiber.Ctx, err error) error {
	var de *domainErrors.DomainError
	if errors.As(err, &de) {
		switch de.Code {
		case domainErrors.CodeMissingField, domainErrors.CodeInvalidMethod, domainErrors.CodeInvalidField:
			return response.Domain(c, fiber.StatusBadRequest, de)
		case domainErrors.CodePolicyNotLoaded:
			return response.Domain(c, fiber.StatusServiceUnavailable, de)
		}
	}

	log.Printf("Shipping quote failed: %v", err)
	return response.ServerError(c, "Failed to compute shipping fee")
}
