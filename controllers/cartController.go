package controllers

import (
	"errors"
	"net/http"

	"github.com/Kariqs/agromarket-api/initializers"
	"github.com/Kariqs/agromarket-api/middlewares"
	"github.com/Kariqs/agromarket-api/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const msgFailedToCreateCart = "Failed to create cart"

func findOrCreateCart(ctx *gin.Context, userID string) (*models.Cart, error) {
	cart := models.Cart{UserID: userID}
	err := db(ctx).Where("user_id = ?", userID).FirstOrCreate(&cart).Error
	return &cart, err
}

// CreateCartItem adds a marketplace item to the caller's cart. Name and
// price are copied from the item, not trusted from the request.
func CreateCartItem(ctx *gin.Context) {
	var cartItem models.CartItem
	if err := ctx.ShouldBindJSON(&cartItem); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid input", err)
		return
	}

	var item models.MarketplaceItem
	if err := db(ctx).Where("id = ?", cartItem.ItemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Item not found")
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch item", err)
		return
	}

	cart, err := findOrCreateCart(ctx, middlewares.UserID(ctx))
	if err != nil {
		initializers.Logger.Error("cart lookup failed", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToCreateCart)
		return
	}

	var existingCartItem models.CartItem
	err = db(ctx).Where("cart_id = ? AND item_id = ?", cart.ID, item.ID).First(&existingCartItem).Error
	if err == nil {
		existingCartItem.Quantity += cartItem.Quantity
		existingCartItem.Price = item.Price

		if err := db(ctx).Save(&existingCartItem).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to update cart item quantity.", err)
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"message": "Cart item quantity updated",
			"id":      existingCartItem.ID,
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch cart item", err)
		return
	}

	cartItem.ID = ""
	cartItem.CartID = cart.ID
	cartItem.Name = item.Name
	cartItem.Price = item.Price
	if len(item.Images) > 0 {
		cartItem.ImageURL = item.Images[0]
	}
	if err := db(ctx).Create(&cartItem).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create cart item", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": cartItem.Name + " added to cart",
		"id":      cartItem.ID,
	})
}

func GetCart(ctx *gin.Context) {
	var cart models.Cart
	result := db(ctx).
		Where("user_id = ?", middlewares.UserID(ctx)).
		Preload("Items").
		First(&cart)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Cart not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch cart", result.Error)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cart})
}
