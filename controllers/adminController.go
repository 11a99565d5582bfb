package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Kariqs/agromarket-api/initializers"
	"github.com/Kariqs/agromarket-api/listing"
	"github.com/Kariqs/agromarket-api/models"
	"github.com/Kariqs/agromarket-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type adminRequest struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
}

func adminService() *services.AdminService {
	return services.NewAdminService(initializers.DB, initializers.Logger)
}

func adminErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidIdentifier):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotAdmin):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondAdminResult(ctx *gin.Context, res *services.AdminResult, err error) {
	if err != nil {
		status := adminErrorStatus(err)
		if status == http.StatusInternalServerError {
			initializers.Logger.Error("admin toggle failed", zap.Error(err))
		}
		ctx.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"created": res.Created,
		"changed": res.Changed,
		"profile": res.Profile,
	})
}

// AddAdmin accepts {"email": ...} or {"userId": ...}. Email wins when both
// are present.
func AddAdmin(ctx *gin.Context) {
	var req adminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	var (
		res *services.AdminResult
		err error
	)
	switch {
	case req.Email != "":
		res, err = adminService().AddAdminByEmail(ctx.Request.Context(), req.Email)
	case req.UserID != "":
		res, err = adminService().AddAdminByID(ctx.Request.Context(), req.UserID)
	default:
		err = services.ErrInvalidIdentifier
	}
	respondAdminResult(ctx, res, err)
}

func RemoveAdmin(ctx *gin.Context) {
	var req adminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	res, err := adminService().RemoveAdmin(ctx.Request.Context(), req.UserID)
	respondAdminResult(ctx, res, err)
}

func ListAdmins(ctx *gin.Context) {
	admins, err := adminService().ListAdmins(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch admins", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"admins": admins})
}

func GetDashboard(ctx *gin.Context) {
	stats, err := services.NewReportService(initializers.DB, deps.Experts).Dashboard(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to load dashboard", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"stats": stats})
}

func GetReports(ctx *gin.Context) {
	report, err := services.NewReportService(initializers.DB, deps.Experts).Reports(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to build reports", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"report": report})
}

func GetUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	f := listing.Filter{Page: page, PageSize: limit}.Normalize()

	query := db(ctx).Model(&models.Profile{})
	if search := ctx.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("email LIKE ? OR full_name LIKE ?", like, like)
	}
	if userType := ctx.Query("user_type"); userType != "" {
		query = query.Where("user_type = ?", userType)
	}

	var count int64
	if err := query.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch users", err)
		return
	}

	users := []models.Profile{}
	if err := query.Order("created_at DESC").Scopes(listing.Paginate(f)).Find(&users).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch users", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"users":    users,
		"metadata": listing.NewMetadata(count, f),
	})
}

func GetNotifications(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	notes, err := services.NewNotifier(initializers.DB, initializers.Logger).
		List(ctx.Request.Context(), ctx.Query("unread") == "true", limit)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch notifications", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"notifications": notes})
}

func MarkNotificationRead(ctx *gin.Context) {
	err := services.NewNotifier(initializers.DB, initializers.Logger).MarkRead(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Notification not found")
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Unable to update notification", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Notification marked as read."})
}
