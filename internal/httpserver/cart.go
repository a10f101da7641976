package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"plantshop/internal/domain"
	"plantshop/internal/service/cart"
)

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func respondCart(c *gin.Context, svc *cart.Service, status int) {
	c.JSON(status, cartResponse{Cart: svc.Cart(), Summary: svc.Summary()})
}

func getCartHandler(c *gin.Context) {
	respondCart(c, currentSession(c).Cart, http.StatusOK)
}

func addItemHandler(c *gin.Context) {
	var plant domain.Plant
	if err := c.ShouldBindJSON(&plant); err != nil {
		badRequest(c, "invalid plant payload")
		return
	}
	if plant.ID < 1 {
		badRequest(c, "plant id must be a positive integer")
		return
	}
	svc := currentSession(c).Cart
	svc.Add(c.Request.Context(), plant)
	respondCart(c, svc, http.StatusOK)
}

func updateItemHandler(c *gin.Context) {
	id, ok := plantIDParam(c)
	if !ok {
		badRequest(c, "invalid plant id")
		return
	}
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		badRequest(c, "quantity is required")
		return
	}
	if *req.Quantity > domain.MaxQuantity {
		badRequest(c, "quantity is too large")
		return
	}
	svc := currentSession(c).Cart
	svc.UpdateQuantity(c.Request.Context(), id, *req.Quantity)
	respondCart(c, svc, http.StatusOK)
}

func removeItemHandler(c *gin.Context) {
	id, ok := plantIDParam(c)
	if !ok {
		badRequest(c, "invalid plant id")
		return
	}
	svc := currentSession(c).Cart
	svc.Remove(c.Request.Context(), id)
	respondCart(c, svc, http.StatusOK)
}

func clearCartHandler(c *gin.Context) {
	svc := currentSession(c).Cart
	svc.Clear(c.Request.Context())
	respondCart(c, svc, http.StatusOK)
}

func checkoutHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := currentSession(c)
		charged, err := state.Cart.Checkout(c.Request.Context())
		if err != nil {
			logger.Info("checkout rejected", zap.String("session", state.ID), zap.Error(err))
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "completed",
			"charged": charged,
			"cart":    cartResponse{Cart: state.Cart.Cart(), Summary: state.Cart.Summary()},
		})
	}
}
