package controllers

import (
	"errors"
	"net/http"

	"github.com/Kariqs/agromarket-api/config"
	"github.com/Kariqs/agromarket-api/experts"
	"github.com/Kariqs/agromarket-api/initializers"
	"github.com/Kariqs/agromarket-api/listing"
	"github.com/Kariqs/agromarket-api/middlewares"
	"github.com/Kariqs/agromarket-api/payments"
	"github.com/Kariqs/agromarket-api/services"
	"github.com/Kariqs/agromarket-api/storage"
	"github.com/Kariqs/agromarket-api/wizard"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the collaborators handlers share. The database itself is
// initializers.DB.
type Dependencies struct {
	Config   *config.Config
	Cache    *listing.Cache
	Uploader storage.Uploader
	Experts  experts.Repository
	Mailer   *services.Mailer
	Pesapal  *payments.PesapalClient
}

var deps Dependencies

// Configure fills in defaults for anything left nil.
func Configure(d Dependencies) {
	if d.Config == nil {
		d.Config = &config.Config{}
	}
	if d.Config.Listing.PageSize <= 0 {
		d.Config.Listing.PageSize = listing.DefaultPageSize
	}
	if d.Uploader == nil {
		d.Uploader = storage.InlineUploader{MaxBytes: d.Config.Storage.MaxInlineSize}
	}
	if d.Experts == nil {
		d.Experts = experts.NewGormRepository(initializers.DB)
	}
	if d.Mailer == nil {
		d.Mailer = services.NewMailer(nil, initializers.DB, initializers.Logger)
	}
	if d.Pesapal == nil {
		d.Pesapal = payments.NewPesapalClient(d.Config.Pesapal)
	}
	deps = d
}

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

func respondWithValidation(ctx *gin.Context, err error) bool {
	var verr *wizard.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	ctx.JSON(http.StatusBadRequest, gin.H{
		"message": "Validation failed",
		"step":    verr.Step,
		"fields":  verr.Fields,
	})
	return true
}

func db(ctx *gin.Context) *gorm.DB {
	return initializers.DB.WithContext(ctx.Request.Context())
}

func canModify(ctx *gin.Context, ownerID string) bool {
	return middlewares.IsAdmin(ctx) || (ownerID != "" && ownerID == middlewares.UserID(ctx))
}
