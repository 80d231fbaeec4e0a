package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nutridiary/backend/internal/service"
)

type DiaryHandler struct {
	diary *service.DiaryService
}

func NewDiaryHandler(diary *service.DiaryService) *DiaryHandler {
	return &DiaryHandler{diary: diary}
}

func (h *DiaryHandler) RegisterRoutes(router *gin.RouterGroup) {
	diary := router.Group("/diary")
	{
		diary.POST("/add-many", h.AddMany)
		diary.POST("/add-water", h.AddWater)
		diary.GET("/day", h.Day)
		diary.DELETE("/entry/:id", h.DeleteEntry)
		diary.GET("/summary", h.Summary)
	}
}

type addManyRequest struct {
	UserID string              `json:"user_id"`
	Date   string              `json:"date"`
	Meal   string              `json:"meal"`
	Items  []service.DiaryItem `json:"items"`
}

func (h *DiaryHandler) AddMany(c *gin.Context) {
	var req addManyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	entries, totals, err := h.diary.AddEntries(req.UserID, req.Date, req.Meal, req.Items)
	if err != nil {
		respondError(c, "add_many", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"date":    service.NormalizeDate(req.Date),
		"meal":    req.Meal,
		"entries": entries,
		"totals":  totals,
	})
}

type addWaterRequest struct {
	UserID string  `json:"user_id"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

func (h *DiaryHandler) AddWater(c *gin.Context) {
	var req addWaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	entries, totals, err := h.diary.AddWater(req.UserID, req.Date, req.Amount)
	if err != nil {
		respondError(c, "add_water", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"date":    service.NormalizeDate(req.Date),
		"entries": entries,
		"totals":  totals,
	})
}

func (h *DiaryHandler) Day(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_user_id"})
		return
	}
	date := service.NormalizeDate(c.Query("date"))

	entries, totals, err := h.diary.Day(userID, date)
	if err != nil {
		respondError(c, "day", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    date,
		"entries": entries,
		"totals":  totals,
	})
}

func (h *DiaryHandler) DeleteEntry(c *gin.Context) {
	userID := c.Query("user_id")
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if userID == "" || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	deleted, err := h.diary.DeleteEntry(id, userID)
	if err != nil {
		respondError(c, "delete", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": deleted})
}

func (h *DiaryHandler) Summary(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_user_id"})
		return
	}
	from := service.NormalizeDate(c.Query("from"))
	to := service.NormalizeDate(c.Query("to"))

	rows, err := h.diary.Summary(userID, from, to)
	if err != nil {
		respondError(c, "summary", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "rows": rows})
}
