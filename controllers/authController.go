package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Kariqs/agromarket-api/initializers"
	"github.com/Kariqs/agromarket-api/middlewares"
	"github.com/Kariqs/agromarket-api/models"
	"github.com/Kariqs/agromarket-api/services"
	"github.com/Kariqs/agromarket-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	msgInvalidInput          = "invalid input"
	msgUserAlreadyExists     = "user already exists"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "invalid email or password"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgUserCreated           = "Account created successfully."
	msgUserNotFound          = "profile not found"
)

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(profile models.Profile) (string, error) {
	ttl := deps.Config.JWT.TTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  profile.ID,
		"email":    profile.Email,
		"role":     profile.Role,
		"is_admin": profile.HasAdminAccess(),
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(ttl).Unix(),
	})
	return token.SignedString([]byte(deps.Config.JWT.Secret))
}

func findProfileByEmail(ctx *gin.Context, email string) (models.Profile, error) {
	var profile models.Profile
	result := db(ctx).Where("email = ?", email).First(&profile)
	return profile, result.Error
}

func sendWelcomeEmail(ctx *gin.Context, profile models.Profile) {
	emailData := utils.EmailData{
		Name:    profile.FullName,
		Message: "Your account is ready. List your produce, equipment and land, or browse what other farmers are offering.",
		LinkURL: deps.Config.Mail.FrontendURL + "/dashboard",
	}
	if err := deps.Mailer.Send(ctx.Request.Context(), profile.Email, "Welcome to AgroMarket", services.TemplateWelcome, emailData); err != nil {
		initializers.Logger.Warn("welcome email not sent", zap.String("email", profile.Email), zap.Error(err))
	}
}

func Signup(ctx *gin.Context) {
	var signUpData models.SignupData
	if err := ctx.ShouldBindJSON(&signUpData); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}
	email := strings.ToLower(strings.TrimSpace(signUpData.Email))

	_, err := findProfileByEmail(ctx, email)
	if err == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		initializers.Logger.Error("database error during profile check", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	hashedPassword, err := hashPassword(signUpData.Password)
	if err != nil {
		initializers.Logger.Error("password hashing error", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	userType := signUpData.UserType
	if userType == "" {
		userType = models.UserTypeFarmer
	}
	profile := models.Profile{
		Email:        email,
		PasswordHash: hashedPassword,
		FullName:     signUpData.FullName,
		UserType:     userType,
		Role:         models.RoleUser,
		Phone:        signUpData.Phone,
		Location:     signUpData.Location,
	}
	if result := db(ctx).Create(&profile); result.Error != nil {
		initializers.Logger.Error("profile creation error", zap.Error(result.Error))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendWelcomeEmail(ctx, profile)

	tokenString, err := generateJWT(profile)
	if err != nil {
		initializers.Logger.Error("jwt generation error", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": msgUserCreated,
		"token":   tokenString,
		"profile": profile,
	})
}

func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	profile, err := findProfileByEmail(ctx, strings.ToLower(strings.TrimSpace(loginData.Email)))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	// Profiles created by the admin toggle have no password until one is set.
	if profile.PasswordHash == "" || comparePasswords(profile.PasswordHash, loginData.Password) != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	tokenString, err := generateJWT(profile)
	if err != nil {
		initializers.Logger.Error("jwt generation error", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString, "profile": profile})
}

func GetMe(ctx *gin.Context) {
	var profile models.Profile
	if err := db(ctx).Where("id = ?", middlewares.UserID(ctx)).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch profile", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"profile": profile})
}

func UpdateMe(ctx *gin.Context) {
	var update models.ProfileUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	updates := map[string]any{}
	if update.FullName != nil {
		updates["full_name"] = *update.FullName
	}
	if update.Phone != nil {
		updates["phone"] = *update.Phone
	}
	if update.Location != nil {
		updates["location"] = *update.Location
	}
	if update.UserType != nil {
		updates["user_type"] = *update.UserType
	}
	if len(updates) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Nothing to update")
		return
	}

	var profile models.Profile
	if err := db(ctx).Where("id = ?", middlewares.UserID(ctx)).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch profile", err)
		return
	}
	// Admins keep their user_type; privileges change only through the admin toggle.
	if profile.UserType == models.UserTypeAdmin {
		delete(updates, "user_type")
	}
	if len(updates) == 0 {
		sendJSONResponse(ctx, http.StatusOK, gin.H{"profile": profile})
		return
	}

	if err := db(ctx).Model(&profile).Updates(updates).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to update profile", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"profile": profile})
}
