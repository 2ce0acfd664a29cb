package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nutrifactor/backend/internal/domain"
	"github.com/nutrifactor/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers. The user identity is always
// taken from the route, never from a process-wide default.
type Handler struct {
	foods *usecase.FoodService
	logs  *usecase.LogService
	store domain.Store
}

// NewHandler creates a new HTTP handler.
func NewHandler(foods *usecase.FoodService, logs *usecase.LogService, store domain.Store) *Handler {
	return &Handler{
		foods: foods,
		logs:  logs,
		store: store,
	}
}

// HealthCheck returns the health status of the API.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nutrifactor-backend",
		"version": "1.0.0",
	})
}

// SearchFoods runs a composition database search and persists it as the
// user's last search snapshot.
func (h *Handler) SearchFoods(c *gin.Context) {
	userID := c.Param("userID")
	query := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.foods.Search(c.Request.Context(), userID, query, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"foods":      result.Records,
		"totalCount": result.TotalCount,
	})
}

// GetFood resolves one food record and previews its normalized nutrients at
// a 100 g basis together with the wellness factors.
func (h *Handler) GetFood(c *gin.Context) {
	fdcID, err := strconv.ParseInt(c.Param("fdcID"), 10, 64)
	if err != nil {
		respondError(c, domain.ErrInvalidRequest)
		return
	}

	record, err := h.foods.Resolve(c.Request.Context(), fdcID)
	if err != nil {
		respondError(c, err)
		return
	}

	basis, reference := usecase.BasisFromRecord(record)
	preview := basis.Scale(reference)
	calories := usecase.SnapshotCalories(preview)
	factors := usecase.ComputeFactors(calories, preview.Micro(domain.MicroFiber), preview.ProteinG, reference)
	c.JSON(http.StatusOK, gin.H{
		"record":       record,
		"servingGrams": reference,
		"nutrients":    preview,
		"caloriesKcal": usecase.Round(calories, 0),
		"factors":      factors,
	})
}

// addLogItemRequest adds a food to the log from exactly one source: an
// external id, a custom food id, or a manual entry.
type addLogItemRequest struct {
	ExternalFoodID int64                    `json:"fdcId,omitempty"`
	CustomFoodID   string                   `json:"customFoodId,omitempty"`
	Name           string                   `json:"name,omitempty"`
	Brand          string                   `json:"brand,omitempty"`
	ServingGrams   float64                  `json:"servingGrams,omitempty"`
	Nutrients      *domain.NutrientSnapshot `json:"nutrients,omitempty"`
}

// AddLogItem appends an item to the user's log.
func (h *Handler) AddLogItem(c *gin.Context) {
	userID := c.Param("userID")
	var req addLogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.ErrInvalidRequest)
		return
	}
	if req.ExternalFoodID != 0 && req.CustomFoodID != "" {
		respondError(c, domain.ErrConflictingSource)
		return
	}

	ctx := c.Request.Context()
	var (
		item domain.LogItem
		err  error
	)
	switch {
	case req.ExternalFoodID != 0:
		record, rerr := h.foods.Resolve(ctx, req.ExternalFoodID)
		if rerr != nil {
			respondError(c, rerr)
			return
		}
		item, err = h.logs.AddRecord(ctx, userID, record)
	case req.CustomFoodID != "":
		food, gerr := h.foods.GetCustomFood(ctx, userID, req.CustomFoodID)
		if gerr != nil {
			respondError(c, gerr)
			return
		}
		item, err = h.logs.AddCustomFood(ctx, userID, *food)
	default:
		var nutrients domain.NutrientSnapshot
		if req.Nutrients != nil {
			nutrients = *req.Nutrients
		}
		item, err = h.logs.AddManual(ctx, userID, req.Name, req.Brand, req.ServingGrams, nutrients)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, itemResponse(item, nil))
}

// ListLog returns the user's log with per-item factors.
func (h *Handler) ListLog(c *gin.Context) {
	items, err := h.logs.Items(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, itemResponse(item, nil))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

type changeAmountRequest struct {
	Grams float64 `json:"grams"`
}

// ChangeAmount sets a log item's serving. An out-of-range amount still
// applies; the validation message rides along for the UI to surface.
func (h *Handler) ChangeAmount(c *gin.Context) {
	var req changeAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.ErrInvalidRequest)
		return
	}

	item, fieldErr, err := h.logs.ChangeAmount(c.Request.Context(), c.Param("userID"), c.Param("itemID"), req.Grams)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemResponse(item, fieldErr))
}

// RemoveLogItem deletes one item; its favorite mark is untouched.
func (h *Handler) RemoveLogItem(c *gin.Context) {
	if err := h.logs.Remove(c.Request.Context(), c.Param("userID"), c.Param("itemID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearLog empties the user's log.
func (h *Handler) ClearLog(c *gin.Context) {
	if err := h.logs.Clear(c.Request.Context(), c.Param("userID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LogTotals returns the aggregate totals and the log-level verdict.
func (h *Handler) LogTotals(c *gin.Context) {
	totals, factors, err := h.logs.Totals(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totals":  totals,
		"factors": factors,
	})
}

// ExportLog returns the spreadsheet rows for the current log.
func (h *Handler) ExportLog(c *gin.Context) {
	rows, err := h.logs.Export(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

type customFoodRequest struct {
	Name         string  `json:"name" binding:"required"`
	Brand        string  `json:"brand,omitempty"`
	AmountGrams  float64 `json:"amountGrams"`
	CaloriesKcal float64 `json:"caloriesKcal"`
	FiberG       float64 `json:"fiberG"`
	ProteinG     float64 `json:"proteinG"`
}

// CreateCustomFood persists a user-authored food.
func (h *Handler) CreateCustomFood(c *gin.Context) {
	var req customFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.ErrInvalidRequest)
		return
	}
	food, err := h.foods.CreateCustomFood(c.Request.Context(), domain.CustomFood{
		UserID:       c.Param("userID"),
		Name:         req.Name,
		Brand:        req.Brand,
		AmountGrams:  req.AmountGrams,
		CaloriesKcal: req.CaloriesKcal,
		FiberG:       req.FiberG,
		ProteinG:     req.ProteinG,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

// ListCustomFoods lists the user's custom foods.
func (h *Handler) ListCustomFoods(c *gin.Context) {
	foods, err := h.foods.ListCustomFoods(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customFoods": foods})
}

// DeleteCustomFood removes a custom food, cascading to its favorite mark
// and any log items referencing it.
func (h *Handler) DeleteCustomFood(c *gin.Context) {
	if err := h.foods.DeleteCustomFood(c.Request.Context(), c.Param("userID"), c.Param("foodID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type favoriteRequest struct {
	ExternalFoodID int64  `json:"fdcId,omitempty"`
	CustomFoodID   string `json:"customFoodId,omitempty"`
	Favorited      bool   `json:"favorited"`
}

// SetFavorite adds or removes a favorite mark.
func (h *Handler) SetFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.ErrInvalidRequest)
		return
	}
	mark := domain.FavoriteMark{
		UserID:         c.Param("userID"),
		ExternalFoodID: req.ExternalFoodID,
		CustomFoodID:   req.CustomFoodID,
	}
	if err := h.foods.SetFavorite(c.Request.Context(), mark, req.Favorited); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListFavorites lists the user's favorite marks.
func (h *Handler) ListFavorites(c *gin.Context) {
	marks, err := h.foods.ListFavorites(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": marks})
}

// SaveProfile stores the user's energy-model profile.
func (h *Handler) SaveProfile(c *gin.Context) {
	var profile domain.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		respondError(c, domain.ErrInvalidRequest)
		return
	}
	profile.UserID = c.Param("userID")
	if err := h.store.SaveProfile(c.Request.Context(), profile); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Energy computes BMR and TDEE from the stored profile.
func (h *Handler) Energy(c *gin.Context) {
	profile, err := h.store.LoadProfile(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no profile on record"})
		return
	}
	estimate, ok := usecase.EstimateEnergy(*profile)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "profile is incomplete"})
		return
	}
	c.JSON(http.StatusOK, estimate)
}

type draftRequest struct {
	Draft string `json:"draft"`
}

// SaveDraft stores the draft form state; writes are debounced downstream.
func (h *Handler) SaveDraft(c *gin.Context) {
	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.ErrInvalidRequest)
		return
	}
	if err := h.store.SaveDraft(c.Request.Context(), c.Param("userID"), req.Draft); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetDraft returns the stored draft form state.
func (h *Handler) GetDraft(c *gin.Context) {
	draft, err := h.store.LoadDraft(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

type credentialRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
}

// SaveCredential stores the user's own composition API key.
func (h *Handler) SaveCredential(c *gin.Context) {
	var req credentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.ErrInvalidRequest)
		return
	}
	if err := h.store.SaveCredential(c.Request.Context(), c.Param("userID"), req.APIKey); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCredential reports whether a key is on record, without echoing it back.
func (h *Handler) GetCredential(c *gin.Context) {
	apiKey, err := h.store.LoadCredential(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"configured": apiKey != ""})
}

// itemResponse renders one log item with its factors and an optional
// advisory validation message.
func itemResponse(item domain.LogItem, fieldErr *usecase.FieldError) gin.H {
	out := gin.H{
		"item":    item,
		"factors": usecase.ItemFactors(&item),
	}
	if fieldErr != nil {
		out["validation"] = fieldErr
	}
	return out
}

// respondError maps domain errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrFoodNotFound),
		errors.Is(err, domain.ErrLogItemNotFound),
		errors.Is(err, domain.ErrCustomFoodNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrConflictingSource):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrLookupFailure):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
