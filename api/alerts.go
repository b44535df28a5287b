package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tulsagolf/teetimes/internal/domain"
	"github.com/tulsagolf/teetimes/internal/repository"
	"github.com/tulsagolf/teetimes/internal/service/alerts"
)

type AlertHandler struct {
	service alerts.AlertUseCase
}

func NewAlertHandler(service alerts.AlertUseCase) *AlertHandler {
	return &AlertHandler{service: service}
}

func (h *AlertHandler) Register(router *gin.RouterGroup) {
	router.POST("/alerts", h.create)
	router.GET("/alerts", h.list)
	router.DELETE("/alerts/:id", h.delete)
}

func (h *AlertHandler) create(c *gin.Context) {
	var input alerts.CreateAlertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	alert, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, alert)
}

func (h *AlertHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), c.Query("phone"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if list == nil {
		list = []domain.Alert{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *AlertHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
