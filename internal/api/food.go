package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nutridiary/backend/internal/fatsecret"
)

type FoodHandler struct {
	api *fatsecret.Client
}

func NewFoodHandler(api *fatsecret.Client) *FoodHandler {
	return &FoodHandler{api: api}
}

func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	food := router.Group("/food")
	{
		food.GET("/search", h.Search)
		food.GET("/:barcode", h.Barcode)
	}
}

// Search forwards a food search upstream and passes the response through.
func (h *FoodHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	maxResults, err := strconv.Atoi(c.DefaultQuery("max_results", "20"))
	if err != nil {
		maxResults = 20
	}
	flagDefaultServing := yes(c.Query("flag_default_serving"), false)

	raw, err := h.api.SearchFoods(c.Request.Context(), query, page, maxResults,
		flagDefaultServing, c.Query("region"), c.Query("language"))
	if err != nil {
		respondError(c, "food_search", err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// Barcode resolves a scanned barcode to a food id, then returns the upstream
// food record for it.
func (h *FoodHandler) Barcode(c *gin.Context) {
	foodID, err := h.api.LookupFoodByBarcode(c.Request.Context(), c.Param("barcode"), c.Query("region"))
	if err != nil {
		respondError(c, "food_barcode", err)
		return
	}

	raw, err := h.api.GetFood(c.Request.Context(), foodID, c.Query("region"), c.Query("language"))
	if err != nil {
		respondError(c, "food_get", err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}
