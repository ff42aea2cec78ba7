package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"itsupport/internal/app/config"
	"itsupport/internal/app/ds"
	"itsupport/internal/app/dto"
	"itsupport/internal/app/middleware"
	"itsupport/internal/app/redis"
	"itsupport/internal/app/repository"
	"itsupport/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	Repository  *repository.Repository
	RedisClient *redis.Client
	Config      *config.Config
}

func NewAuthHandler(r *repository.Repository, redisClient *redis.Client, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Repository:  r,
		RedisClient: redisClient,
		Config:      cfg,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func userRole(u *ds.User) role.Role {
	if u.IsAdmin {
		return role.Admin
	}
	return role.Client
}

func (h *AuthHandler) issueToken(u *ds.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(h.Config.JWT.SigningMethod, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(h.Config.JWT.ExpiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    "itsupport",
		},
		UserID: u.ID,
		Role:   userRole(u),
	})
	return token.SignedString([]byte(h.Config.JWT.Secret))
}

// RegisterUser creates an account and signs the caller in.
// @Summary Inscription
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Données d'inscription"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) RegisterUser(ctx *gin.Context) {
	var request dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	exists, _ := h.Repository.UserExistsByEmail(request.Email)
	if exists {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("un compte existe déjà avec cet email"))
		return
	}

	hashedPassword, err := hashPassword(request.Password)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	// Self-registration never grants the admin flag; admins are seeded.
	user, err := h.Repository.CreateUser(request.Email, hashedPassword, request.FullName, false)
	if err != nil {
		logrus.Error("Error creating user: ", err)
		h.errorHandler(ctx, http.StatusInternalServerError, errors.New("erreur lors de l'inscription"))
		return
	}

	accessToken, err := h.issueToken(user)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"user": dto.UserResponse{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			IsAdmin:  user.IsAdmin,
		},
		"token":      accessToken,
		"token_type": "Bearer",
		"expires_in": int(h.Config.JWT.ExpiresIn.Seconds()),
	})
}

// LoginUser authenticates by email and password, returning a bearer token.
// @Summary Connexion
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Identifiants"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) LoginUser(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	user, err := h.Repository.GetUserByEmail(request.Email)
	if err != nil || checkPassword(request.Password, user.Password) != nil {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("email ou mot de passe incorrect"))
		return
	}

	accessToken, err := h.issueToken(user)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user": dto.UserResponse{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			IsAdmin:  user.IsAdmin,
		},
		"token":      accessToken,
		"token_type": "Bearer",
		"expires_in": int(h.Config.JWT.ExpiresIn.Seconds()),
	})
}

// LogoutUser blacklists the presented token for its remaining lifetime.
// @Summary Déconnexion
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) LogoutUser(ctx *gin.Context) {
	tokenString := ctx.GetHeader("Authorization")
	if tokenString == "" {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("authorization header missing"))
		return
	}

	if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
		tokenString = tokenString[7:]
	}

	token, err := jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.Config.JWT.Secret), nil
	})
	if err != nil {
		h.errorHandler(ctx, http.StatusUnauthorized, err)
		return
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("invalid token claims"))
		return
	}

	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl > 0 {
		if err := h.RedisClient.WriteJWTToBlacklist(context.Background(), tokenString, ttl); err != nil {
			h.errorHandler(ctx, http.StatusInternalServerError, err)
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "déconnexion réussie",
	})
}

// GetProfile returns the authenticated user.
func (h *AuthHandler) GetProfile(ctx *gin.Context) {
	identity, err := middleware.IdentityFromContext(ctx)
	if err != nil {
		h.errorHandler(ctx, http.StatusUnauthorized, err)
		return
	}

	user, err := h.Repository.GetUserByID(identity.UserID)
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, errors.New("utilisateur introuvable"))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user": dto.UserResponse{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			IsAdmin:  user.IsAdmin,
		},
	})
}

// UpdateProfile changes the full name and/or password.
func (h *AuthHandler) UpdateProfile(ctx *gin.Context) {
	identity, err := middleware.IdentityFromContext(ctx)
	if err != nil {
		h.errorHandler(ctx, http.StatusUnauthorized, err)
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	var fullName, password *string
	if req.FullName != "" {
		fullName = &req.FullName
	}
	if req.Password != "" {
		hashed, err := hashPassword(req.Password)
		if err != nil {
			h.errorHandler(ctx, http.StatusInternalServerError, err)
			return
		}
		password = &hashed
	}

	if err := h.Repository.UpdateUser(identity.UserID, fullName, password); err != nil {
		logrus.Error("Error updating user: ", err)
		h.errorHandler(ctx, http.StatusInternalServerError, errors.New("erreur lors de la mise à jour du profil"))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "profil mis à jour",
	})
}

func (h *AuthHandler) errorHandler(ctx *gin.Context, errorStatusCode int, err error) {
	logrus.Error(err.Error())
	ctx.JSON(errorStatusCode, gin.H{
		"status":      "error",
		"description": err.Error(),
	})
}
