package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Kariqs/agromarket-api/initializers"
	"github.com/Kariqs/agromarket-api/listing"
	"github.com/Kariqs/agromarket-api/middlewares"
	"github.com/Kariqs/agromarket-api/models"
	"github.com/Kariqs/agromarket-api/services"
	"github.com/Kariqs/agromarket-api/storage"
	"github.com/Kariqs/agromarket-api/wizard"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ownedListing interface {
	models.Equipment | models.AnimalListing | models.LandListing | models.NurseryListing
	OwnerID() string
}

// ListingController serves one listing table. Every listing type shares
// the same handlers and differs only in its wizard, columns and builder.
type ListingController[M ownedListing] struct {
	entity  string
	wizard  wizard.Definition
	columns listing.Columns
	build   func(form any, owner string, images []string) *M
}

var (
	EquipmentListings = &ListingController[models.Equipment]{
		entity: "equipment",
		wizard: wizard.Equipment,
		columns: func() listing.Columns {
			cols := listing.ListingColumns("category")
			cols.Condition = "condition"
			return cols
		}(),
		build: func(form any, owner string, images []string) *models.Equipment {
			return form.(*models.EquipmentForm).Build(owner, images)
		},
	}

	AnimalListings = &ListingController[models.AnimalListing]{
		entity:  "animals",
		wizard:  wizard.Animal,
		columns: listing.ListingColumns("animal_type"),
		build: func(form any, owner string, images []string) *models.AnimalListing {
			return form.(*models.AnimalForm).Build(owner, images)
		},
	}

	LandListings = &ListingController[models.LandListing]{
		entity: "land",
		wizard: wizard.Land,
		columns: func() listing.Columns {
			cols := listing.ListingColumns("land_type")
			cols.Area = "area_size"
			return cols
		}(),
		build: func(form any, owner string, images []string) *models.LandListing {
			return form.(*models.LandForm).Build(owner, images)
		},
	}

	NurseryListings = &ListingController[models.NurseryListing]{
		entity:  "nurseries",
		wizard:  wizard.Nursery,
		columns: listing.ListingColumns("plant_type"),
		build: func(form any, owner string, images []string) *models.NurseryListing {
			return form.(*models.NurseryForm).Build(owner, images)
		},
	}
)

func (c *ListingController[M]) Entity() string {
	return c.entity
}

func (c *ListingController[M]) List(ctx *gin.Context) {
	f := listing.FilterFromQuery(ctx.Request.URL.Query(), deps.Config.Listing.PageSize)
	key := listing.CacheKey(c.entity, f)

	var page listing.Page[M]
	if deps.Cache.Get(ctx.Request.Context(), key, &page) {
		ctx.JSON(http.StatusOK, page)
		return
	}

	var total int64
	if err := db(ctx).Model(new(M)).Scopes(listing.Where(f, c.columns)).Count(&total).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch "+c.entity, err)
		return
	}

	items := []M{}
	if err := db(ctx).Scopes(listing.Scope(f, c.columns), listing.Paginate(f)).Find(&items).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch "+c.entity, err)
		return
	}

	page = listing.Page[M]{Items: items, Metadata: listing.NewMetadata(total, f)}
	deps.Cache.Set(ctx.Request.Context(), key, page)
	ctx.JSON(http.StatusOK, page)
}

// Get returns one listing and counts the view.
func (c *ListingController[M]) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	result := db(ctx).Model(new(M)).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve listing", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Listing not found", nil)
		return
	}

	var item M
	if err := db(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve listing", err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

func (c *ListingController[M]) Mine(ctx *gin.Context) {
	items := []M{}
	if err := db(ctx).Where("user_id = ?", middlewares.UserID(ctx)).Order("created_at DESC").Find(&items).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch "+c.entity, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{c.entity: items})
}

// Create accepts the wizard's fields either as JSON or as a multipart form
// carrying "images" files.
func (c *ListingController[M]) Create(ctx *gin.Context) {
	form := c.wizard.NewForm()
	if err := ctx.ShouldBind(form); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := c.wizard.ValidateAll(form); err != nil {
		if !respondWithValidation(ctx, err) {
			respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		}
		return
	}

	owner := middlewares.UserID(ctx)
	images := uploadListingImages(ctx, c.entity, owner)

	item := c.build(form, owner, images)
	if err := db(ctx).Create(item).Error; err != nil {
		// Stored images are not cleaned up; the upload records keep track of them.
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create listing", err)
		return
	}

	deps.Cache.Invalidate(c.entity)
	notify(ctx, services.NotificationNewListing, "New "+c.entity+" listing", "A new listing was posted by "+owner)
	ctx.JSON(http.StatusCreated, item)
}

func (c *ListingController[M]) Update(ctx *gin.Context) {
	item, ok := c.loadOwned(ctx)
	if !ok {
		return
	}

	var patch models.ListingPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	updates := patch.Updates(middlewares.IsAdmin(ctx))
	if len(updates) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Nothing to update")
		return
	}

	if err := db(ctx).Model(item).Updates(updates).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update listing", err)
		return
	}
	deps.Cache.Invalidate(c.entity)
	ctx.JSON(http.StatusOK, item)
}

func (c *ListingController[M]) Delete(ctx *gin.Context) {
	item, ok := c.loadOwned(ctx)
	if !ok {
		return
	}

	if err := db(ctx).Delete(item).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete listing", err)
		return
	}
	deps.Cache.Invalidate(c.entity)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Listing deleted successfully."})
}

// loadOwned writes the error response itself when it returns false.
func (c *ListingController[M]) loadOwned(ctx *gin.Context) (*M, bool) {
	var item M
	if err := db(ctx).Where("id = ?", ctx.Param("id")).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Listing not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve listing", err)
		}
		return nil, false
	}
	if !canModify(ctx, item.OwnerID()) {
		sendErrorResponse(ctx, http.StatusForbidden, "Only the owner can change this listing")
		return nil, false
	}
	return &item, true
}

// uploadListingImages never fails: files that cannot be stored come back as
// the placeholder. Every attempt is recorded in file_uploads.
func uploadListingImages(ctx *gin.Context, entity, owner string) []string {
	if !strings.HasPrefix(ctx.ContentType(), "multipart/") {
		return []string{}
	}
	form, err := ctx.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		return []string{}
	}

	results := storage.UploadImages(ctx.Request.Context(), deps.Uploader, form.File["images"], entity+"/"+owner)
	records := make([]models.FileUpload, 0, len(results))
	for _, r := range results {
		record := models.FileUpload{
			UserID:      owner,
			Entity:      entity,
			FileName:    r.FileName,
			URL:         r.URL,
			ContentType: r.ContentType,
			Size:        r.Size,
			Status:      models.UploadStatusUploaded,
		}
		if r.Failed() {
			record.Status = models.UploadStatusFailed
			initializers.Logger.Warn("image upload failed, using placeholder",
				zap.String("entity", entity),
				zap.String("file", r.FileName),
				zap.Error(r.Err),
			)
		}
		records = append(records, record)
	}
	if err := db(ctx).Create(&records).Error; err != nil {
		initializers.Logger.Warn("failed to record file uploads", zap.Error(err))
	}
	return storage.URLs(results)
}

func notify(ctx *gin.Context, kind, title, message string) {
	_ = services.NewNotifier(initializers.DB, initializers.Logger).Notify(ctx.Request.Context(), kind, title, message)
}
