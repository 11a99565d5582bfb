package controllers

import (
	"errors"
	"net/http"

	"github.com/Kariqs/agromarket-api/experts"
	"github.com/Kariqs/agromarket-api/listing"
	"github.com/Kariqs/agromarket-api/middlewares"
	"github.com/Kariqs/agromarket-api/models"
	"github.com/Kariqs/agromarket-api/services"
	"github.com/Kariqs/agromarket-api/wizard"
	"github.com/gin-gonic/gin"
)

const expertsEntity = "experts"

func GetExperts(ctx *gin.Context) {
	f := listing.FilterFromQuery(ctx.Request.URL.Query(), deps.Config.Listing.PageSize)
	key := listing.CacheKey(expertsEntity, f)

	var page listing.Page[models.ExpertProfile]
	if deps.Cache.Get(ctx.Request.Context(), key, &page) {
		ctx.JSON(http.StatusOK, page)
		return
	}

	page, err := deps.Experts.List(ctx.Request.Context(), f)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch experts", err)
		return
	}
	deps.Cache.Set(ctx.Request.Context(), key, page)
	ctx.JSON(http.StatusOK, page)
}

func GetExpert(ctx *gin.Context) {
	expert, err := deps.Experts.FindByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, experts.ErrExpertNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Expert not found", nil)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve expert", err)
		return
	}
	ctx.JSON(http.StatusOK, expert)
}

func CreateExpert(ctx *gin.Context) {
	var form models.ExpertForm
	if err := ctx.ShouldBind(&form); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := wizard.Expert.ValidateAll(&form); err != nil {
		if !respondWithValidation(ctx, err) {
			respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		}
		return
	}

	expert := form.Build(middlewares.UserID(ctx))
	if err := deps.Experts.Create(ctx.Request.Context(), expert); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create expert profile", err)
		return
	}

	deps.Cache.Invalidate(expertsEntity)
	notify(ctx, services.NotificationNewListing, "New expert profile", expert.Name+" registered as "+expert.Specialization+" expert")
	ctx.JSON(http.StatusCreated, expert)
}

func DeleteExpert(ctx *gin.Context) {
	id := ctx.Param("id")
	expert, err := deps.Experts.FindByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, experts.ErrExpertNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Expert not found", nil)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve expert", err)
		return
	}
	if !canModify(ctx, expert.UserID) {
		sendErrorResponse(ctx, http.StatusForbidden, "Only the owner can delete this profile")
		return
	}

	if err := deps.Experts.Delete(ctx.Request.Context(), id); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete expert profile", err)
		return
	}
	deps.Cache.Invalidate(expertsEntity)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Expert profile deleted successfully."})
}
