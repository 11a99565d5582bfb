package controllers

import (
	"errors"
	"net/http"

	"github.com/Kariqs/agromarket-api/listing"
	"github.com/Kariqs/agromarket-api/middlewares"
	"github.com/Kariqs/agromarket-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const marketplaceEntity = "marketplace"

var marketplaceColumns = listing.Columns{
	Search:   []string{"name", "description", "location"},
	Category: "category",
	Location: "location",
	Price:    "price",
	Created:  "created_at",
}

type marketplacePatch struct {
	Name            *string   `json:"name" binding:"omitempty,min=2"`
	Description     *string   `json:"description"`
	Category        *string   `json:"category"`
	Price           *float64  `json:"price" binding:"omitempty,gte=0"`
	Unit            *string   `json:"unit"`
	Location        *string   `json:"location"`
	Images          *[]string `json:"images"`
	ContactPhone    *string   `json:"contact_phone"`
	ContactWhatsapp *string   `json:"contact_whatsapp"`
	ContactEmail    *string   `json:"contact_email" binding:"omitempty,email"`
	Stock           *int      `json:"stock" binding:"omitempty,gte=0"`
	Tags            *[]string `json:"tags"`
}

// updates lists only the columns the client sent, so concurrent stock
// reservations are never overwritten by stale values.
func (p marketplacePatch) updates() map[string]any {
	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Category != nil {
		updates["category"] = *p.Category
	}
	if p.Price != nil {
		updates["price"] = *p.Price
	}
	if p.Unit != nil {
		updates["unit"] = *p.Unit
	}
	if p.Location != nil {
		updates["location"] = *p.Location
	}
	if p.Images != nil {
		updates["images"] = datatypes.JSONSlice[string](*p.Images)
	}
	if p.ContactPhone != nil {
		updates["contact_phone"] = *p.ContactPhone
	}
	if p.ContactWhatsapp != nil {
		updates["contact_whatsapp"] = *p.ContactWhatsapp
	}
	if p.ContactEmail != nil {
		updates["contact_email"] = *p.ContactEmail
	}
	if p.Stock != nil {
		updates["stock"] = *p.Stock
	}
	if p.Tags != nil {
		updates["tags"] = datatypes.JSONSlice[string](*p.Tags)
	}
	return updates
}

func CreateMarketplaceItem(ctx *gin.Context) {
	var item models.MarketplaceItem
	if err := ctx.ShouldBindJSON(&item); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	item.ID = ""
	item.UserID = middlewares.UserID(ctx)

	if err := db(ctx).Create(&item).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create item", err)
		return
	}
	deps.Cache.Invalidate(marketplaceEntity)
	ctx.JSON(http.StatusCreated, item)
}

func GetMarketplaceItems(ctx *gin.Context) {
	f := listing.FilterFromQuery(ctx.Request.URL.Query(), deps.Config.Listing.PageSize)
	key := listing.CacheKey(marketplaceEntity, f)

	var page listing.Page[models.MarketplaceItem]
	if deps.Cache.Get(ctx.Request.Context(), key, &page) {
		ctx.JSON(http.StatusOK, page)
		return
	}

	var count int64
	if err := db(ctx).Model(&models.MarketplaceItem{}).Scopes(listing.Where(f, marketplaceColumns)).Count(&count).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch items", err)
		return
	}

	items := []models.MarketplaceItem{}
	if err := db(ctx).Scopes(listing.Scope(f, marketplaceColumns), listing.Paginate(f)).Find(&items).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch items", err)
		return
	}

	page = listing.Page[models.MarketplaceItem]{Items: items, Metadata: listing.NewMetadata(count, f)}
	deps.Cache.Set(ctx.Request.Context(), key, page)
	ctx.JSON(http.StatusOK, page)
}

func findMarketplaceItem(ctx *gin.Context) (*models.MarketplaceItem, bool) {
	var item models.MarketplaceItem
	if err := db(ctx).Where("id = ?", ctx.Param("id")).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Item not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve item", err)
		}
		return nil, false
	}
	return &item, true
}

func GetMarketplaceItem(ctx *gin.Context) {
	item, ok := findMarketplaceItem(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, item)
}

func UpdateMarketplaceItem(ctx *gin.Context) {
	item, ok := findMarketplaceItem(ctx)
	if !ok {
		return
	}
	if !canModify(ctx, item.UserID) {
		sendErrorResponse(ctx, http.StatusForbidden, "Only the owner can change this item")
		return
	}

	var patch marketplacePatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if updates := patch.updates(); len(updates) > 0 {
		if err := db(ctx).Model(&models.MarketplaceItem{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to update item", err)
			return
		}
	}
	if err := db(ctx).Where("id = ?", item.ID).First(item).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve item", err)
		return
	}
	deps.Cache.Invalidate(marketplaceEntity)
	ctx.JSON(http.StatusOK, item)
}

func DeleteMarketplaceItem(ctx *gin.Context) {
	item, ok := findMarketplaceItem(ctx)
	if !ok {
		return
	}
	if !canModify(ctx, item.UserID) {
		sendErrorResponse(ctx, http.StatusForbidden, "Only the owner can delete this item")
		return
	}

	if err := db(ctx).Delete(item).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete item", err)
		return
	}
	deps.Cache.Invalidate(marketplaceEntity)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item deleted successfully."})
}
