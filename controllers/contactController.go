package controllers

import (
	"net/http"

	"github.com/Kariqs/agromarket-api/models"
	"github.com/Kariqs/agromarket-api/services"
	"github.com/gin-gonic/gin"
)

func CreateContactMessage(ctx *gin.Context) {
	var message models.ContactMessage
	if err := ctx.ShouldBindJSON(&message); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	message.ID = ""
	message.IsRead = false

	if err := db(ctx).Create(&message).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to send message", err)
		return
	}

	notify(ctx, services.NotificationContact, "New contact message", message.Name+" <"+message.Email+">: "+message.Subject)
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Message received. We will get back to you soon."})
}
