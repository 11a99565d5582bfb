package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to AgroMarket API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create account
- POST "/auth/login" - Access account
- GET "/auth/me" - Current profile
- PATCH "/auth/me" - Update current profile

LISTINGS (equipment, animals, land, nurseries)
- GET "/{kind}" - Search, filter, sort and paginate listings
- GET "/{kind}/:id" - Get listing by ID
- GET "/{kind}/mine" - Listings owned by the caller
- POST "/{kind}" - Create listing (JSON or multipart with images)
- PATCH "/{kind}/:id" - Update listing
- DELETE "/{kind}/:id" - Delete listing

EXPERTS
- GET "/experts", GET "/experts/:id", POST "/experts", DELETE "/experts/:id"

MARKETPLACE
- GET "/marketplace", POST "/marketplace"
- GET "/marketplace/:id", PATCH "/marketplace/:id", DELETE "/marketplace/:id"

CART AND ORDERS
- POST "/cart", GET "/cart"
- POST "/orders", GET "/orders/mine"

FORMS
- POST "/wizards/:form/steps/:step/validate" - Validate a form step

CONTACT
- POST "/contact"`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

func GetHealth(ctx *gin.Context) {
	sqlDB, err := db(ctx).DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Request.Context())
	}
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
