package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storefront-labs/orderflow/internal/apperr"
	"github.com/storefront-labs/orderflow/internal/checkout"
	"github.com/storefront-labs/orderflow/internal/gateway"
	ord "github.com/storefront-labs/orderflow/internal/order"
	"github.com/storefront-labs/orderflow/internal/payment"
)

func writeErr(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), ord.HTTPError{Error: err.Error()})
}

// createOrderHandler godoc
// @Summary  Create an order (checkout)
// @Accept   json
// @Produce  json
// @Param    order body order.CreateOrderRequest true "order"
// @Success  201 {object} order.Order
// @Failure  400 {object} order.HTTPError
// @Router   /orders [post]
func createOrderHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ord.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ord.HTTPError{Error: "invalid json"})
			return
		}
		total, err := ord.ParseMoney("total", req.Total)
		if err != nil {
			writeErr(c, err)
			return
		}
		o, err := svc.CreateOrder(c.Request.Context(), checkout.CustomerInfo{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		}, total)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// getOrderHandler godoc
// @Summary  Fetch an order
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {object} order.Order
// @Failure  404 {object} order.HTTPError
// @Router   /orders/{id} [get]
func getOrderHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.GetOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// listOrdersHandler godoc
// @Summary  List orders
// @Produce  json
// @Param    status query string false "status filter"
// @Param    limit  query int    false "page size"
// @Param    offset query int    false "page offset"
// @Success  200 {object} order.ListResponse
// @Router   /orders [get]
func listOrdersHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f ord.Filter
		if raw := c.Query("status"); raw != "" {
			st, ok := ord.ParseStatus(raw)
			if !ok {
				c.JSON(http.StatusBadRequest, ord.HTTPError{Error: "unknown status " + raw})
				return
			}
			f.Status = st
		}
		f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
		f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

		items, err := svc.ListOrders(c.Request.Context(), f)
		if err != nil {
			writeErr(c, err)
			return
		}
		if items == nil {
			items = []ord.Order{}
		}
		c.JSON(http.StatusOK, ord.ListResponse{
			Status: string(f.Status),
			Limit:  f.Limit,
			Offset: f.Offset,
			Items:  items,
		})
	}
}

// listOrderPaymentsHandler godoc
// @Summary  List payment attempts of an order
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {array} payment.Detail
// @Failure  404 {object} order.HTTPError
// @Router   /orders/{id}/payments [get]
func listOrderPaymentsHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ListAttempts(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeErr(c, err)
			return
		}
		if items == nil {
			items = []payment.Detail{}
		}
		c.JSON(http.StatusOK, items)
	}
}

// startPaymentHandler godoc
// @Summary  Start a payment attempt
// @Accept   json
// @Produce  json
// @Param    id path string true "order id"
// @Param    attempt body order.StartPaymentRequest true "attempt"
// @Success  201 {object} payment.Detail
// @Failure  400 {object} order.HTTPError
// @Failure  404 {object} order.HTTPError
// @Failure  409 {object} order.HTTPError
// @Router   /orders/{id}/payments [post]
func startPaymentHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ord.StartPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ord.HTTPError{Error: "invalid json"})
			return
		}
		amount, err := ord.ParseMoney("amount", req.Amount)
		if err != nil {
			writeErr(c, err)
			return
		}
		method, ok := payment.ParseMethod(req.Method)
		if !ok {
			c.JSON(http.StatusBadRequest, ord.HTTPError{Error: "unknown payment method " + req.Method})
			return
		}
		d, err := svc.StartPaymentAttempt(c.Request.Context(), c.Param("id"), amount, method)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, d)
	}
}

// webhookHandler godoc
// @Summary  Gateway webhook intake
// @Accept   json
// @Produce  json
// @Param    gateway path string true "gateway (stripe|jazzcash)"
// @Success  200 {object} map[string]bool
// @Failure  400 {object} order.HTTPError
// @Router   /webhooks/{gateway} [post]
func webhookHandler(svc *checkout.Service, adapters map[gateway.Type]gateway.Adapter) gin.HandlerFunc {
	return func(c *gin.Context) {
		gw, ok := gateway.ParseType(c.Param("gateway"))
		if !ok {
			c.JSON(http.StatusNotFound, ord.HTTPError{Error: "unknown gateway"})
			return
		}
		adapter, ok := adapters[gw]
		if !ok {
			c.JSON(http.StatusNotFound, ord.HTTPError{Error: "gateway not configured"})
			return
		}
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, ord.HTTPError{Error: "unreadable body"})
			return
		}

		n, err := adapter.Parse(body, c.Request.Header)
		if errors.Is(err, gateway.ErrIgnoredEvent) {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, ord.HTTPError{Error: err.Error()})
			return
		}

		if err := svc.RecordNotification(c.Request.Context(), n); err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

// cancelOrderHandler godoc
// @Summary  Cancel a pending/failed order (admin)
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {object} order.Order
// @Failure  409 {object} order.HTTPError
// @Router   /orders/{id}/cancel [post]
func cancelOrderHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Cancel(c.Request.Context(), c.Param("id")); err != nil {
			writeErr(c, err)
			return
		}
		o, err := svc.GetOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// fulfillOrderHandler godoc
// @Summary  Mark a paid order fulfilled (admin)
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {object} order.Order
// @Failure  409 {object} order.HTTPError
// @Router   /orders/{id}/fulfill [post]
func fulfillOrderHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.MarkFulfilled(c.Request.Context(), c.Param("id")); err != nil {
			writeErr(c, err)
			return
		}
		o, err := svc.GetOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}
