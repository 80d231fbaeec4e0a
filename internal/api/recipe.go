package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutridiary/backend/internal/fatsecret"
	"github.com/nutridiary/backend/internal/service"
)

type RecipeHandler struct {
	api       *fatsecret.Client
	favorites *service.FavoritesService
}

func NewRecipeHandler(api *fatsecret.Client, favorites *service.FavoritesService) *RecipeHandler {
	return &RecipeHandler{api: api, favorites: favorites}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("/search", h.Search)
		recipes.GET("/favorites", h.ListFavorites)
		recipes.GET("/favorite/check", h.CheckFavorite)
		recipes.POST("/favorite", h.AddFavorite)
		recipes.DELETE("/favorite", h.RemoveFavorite)
		recipes.GET("/:id", h.Get)
	}
}

// Search forwards a recipe search upstream and passes the response through
// verbatim. Pagination bounds and sort fallbacks are enforced by the client.
func (h *RecipeHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	maxResults, err := strconv.Atoi(c.DefaultQuery("max_results", "20"))
	if err != nil {
		maxResults = 20
	}
	sortBy := c.DefaultQuery("sort_by", fatsecret.DefaultSort)
	mustHaveImages := yes(c.Query("must_have_images"), true)

	raw, err := h.api.SearchRecipes(c.Request.Context(), query, page, maxResults, sortBy, mustHaveImages)
	if err != nil {
		respondError(c, "recipes_search", err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// Get passes an upstream recipe record through verbatim.
func (h *RecipeHandler) Get(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "Missing recipe id"})
		return
	}

	raw, err := h.api.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, "recipes_get", err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

type favoriteRequest struct {
	UserID   string `json:"user_id"`
	RecipeID string `json:"recipe_id"`
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	inserted, err := h.favorites.Add(req.UserID, req.RecipeID)
	if err != nil {
		respondError(c, "favorite_add", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "inserted": inserted})
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	deleted, err := h.favorites.Remove(c.Query("user_id"), c.Query("recipe_id"))
	if err != nil {
		respondError(c, "favorite_remove", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": deleted})
}

type favoriteRow struct {
	RecipeID  string `json:"recipe_id"`
	CreatedAt string `json:"created_at"`
}

func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_user_id"})
		return
	}

	if yes(c.Query("expand"), false) {
		items, err := h.favorites.ListExpanded(c.Request.Context(), userID)
		if err != nil {
			respondError(c, "favorites_list", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"favorites": items})
		return
	}

	favs, err := h.favorites.List(userID)
	if err != nil {
		respondError(c, "favorites_list", err)
		return
	}
	rows := make([]favoriteRow, 0, len(favs))
	for _, f := range favs {
		rows = append(rows, favoriteRow{
			RecipeID:  f.RecipeID,
			CreatedAt: f.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"favorites": rows})
}

func (h *RecipeHandler) CheckFavorite(c *gin.Context) {
	found, err := h.favorites.IsFavorite(c.Query("user_id"), c.Query("recipe_id"))
	if err != nil {
		respondError(c, "favorite_check", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isFavorite": found})
}
