package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tulsagolf/teetimes/internal/service/teetimes"
)

type TeeTimeHandler struct {
	service teetimes.SearchUseCase
}

type courseSummary struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	BookingURL string `json:"bookingUrl"`
}

func NewTeeTimeHandler(service teetimes.SearchUseCase) *TeeTimeHandler {
	return &TeeTimeHandler{service: service}
}

func (h *TeeTimeHandler) Register(router *gin.RouterGroup) {
	router.GET("/teetimes", h.search)
	router.GET("/courses", h.courses)
	router.GET("/health", h.health)
}

func (h *TeeTimeHandler) search(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required (MM-DD-YYYY)"})
		return
	}

	players := 0
	if raw := c.Query("players"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			players = n
		}
	}

	var courseKeys []string
	for _, key := range strings.Split(c.Query("courses"), ",") {
		if key = strings.TrimSpace(key); key != "" {
			courseKeys = append(courseKeys, key)
		}
	}

	result, err := h.service.Search(c.Request.Context(), date, players, courseKeys)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *TeeTimeHandler) courses(c *gin.Context) {
	courses := h.service.Courses()
	out := make([]courseSummary, 0, len(courses))
	for _, course := range courses {
		out = append(out, courseSummary{Key: course.Key, Name: course.Name, BookingURL: course.BookingURL})
	}
	c.JSON(http.StatusOK, out)
}

func (h *TeeTimeHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
