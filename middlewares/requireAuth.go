package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Kariqs/agromarket-api/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const (
	ContextUser    = "user"
	ContextUserID  = "user_id"
	ContextIsAdmin = "is_admin"
)

// ParseToken validates an HS256 token and returns its claims.
func ParseToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// AdminCheck reports whether the profile behind userID holds admin access
// right now. It returns gorm.ErrRecordNotFound for deleted profiles.
type AdminCheck func(ctx context.Context, userID string) (bool, error)

// ProfileAdminCheck reads admin access from the profiles table, so grants
// and revocations apply to tokens that are already issued.
func ProfileAdminCheck(db *gorm.DB) AdminCheck {
	return func(ctx context.Context, userID string) (bool, error) {
		var profile models.Profile
		err := db.WithContext(ctx).
			Select("id", "is_admin", "role", "user_type").
			Where("id = ?", userID).
			First(&profile).Error
		if err != nil {
			return false, err
		}
		return profile.HasAdminAccess(), nil
	}
}

func claimsAdmin(claims jwt.MapClaims) bool {
	if role, _ := claims["role"].(string); role == "admin" {
		return true
	}
	isAdmin, _ := claims["is_admin"].(bool)
	return isAdmin
}

func superAdmin(claims jwt.MapClaims, superAdminEmail string) bool {
	email, _ := claims["email"].(string)
	return superAdminEmail != "" && strings.EqualFold(email, superAdminEmail)
}

// RequireAuth validates the bearer token. With a nil check, admin access
// comes from the token claims alone.
func RequireAuth(secret, superAdminEmail string, check AdminCheck) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token required"})
			return
		}

		claims, err := ParseToken(tokenString, secret)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		isAdmin := claimsAdmin(claims)
		if check != nil {
			isAdmin, err = check(ctx.Request.Context(), userID)
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Account no longer exists"})
				return
			case err != nil:
				_ = ctx.Error(err)
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Unable to verify account"})
				return
			}
		}

		ctx.Set(ContextUser, claims)
		ctx.Set(ContextUserID, userID)
		ctx.Set(ContextIsAdmin, isAdmin || superAdmin(claims, superAdminEmail))
		ctx.Next()
	}
}

func UserID(ctx *gin.Context) string {
	return ctx.GetString(ContextUserID)
}

func IsAdmin(ctx *gin.Context) bool {
	return ctx.GetBool(ContextIsAdmin)
}
