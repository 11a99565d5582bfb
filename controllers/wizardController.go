package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Kariqs/agromarket-api/wizard"
	"github.com/gin-gonic/gin"
)

// ValidateWizardStep lets a client check a step before moving on. The body
// carries every field entered so far.
func ValidateWizardStep(ctx *gin.Context) {
	def, ok := wizard.Lookup(ctx.Param("form"))
	if !ok {
		sendErrorResponse(ctx, http.StatusNotFound, "Unknown form")
		return
	}

	step, err := strconv.Atoi(ctx.Param("step"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid step", err)
		return
	}

	form := def.NewForm()
	if err := ctx.ShouldBindJSON(form); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err = def.Validate(step, form)
	switch {
	case err == nil:
		sendJSONResponse(ctx, http.StatusOK, gin.H{"valid": true, "step": step, "steps": len(def.Steps)})
	case errors.Is(err, wizard.ErrUnknownStep):
		respondWithError(ctx, http.StatusBadRequest, "Invalid step", err)
	default:
		var verr *wizard.ValidationError
		if errors.As(err, &verr) {
			ctx.JSON(http.StatusBadRequest, gin.H{"valid": false, "step": verr.Step, "fields": verr.Fields})
			return
		}
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
	}
}
