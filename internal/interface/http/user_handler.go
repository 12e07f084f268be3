package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-movie-catalog/internal/application"
	"github.com/oksasatya/go-movie-catalog/internal/interface/middleware"
	"github.com/oksasatya/go-movie-catalog/pkg/response"
)

type UserHandler struct {
	Auth   *application.AuthService
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(auth *application.AuthService, users *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Auth: auth, Users: users, Logger: logger}
}

// Field order decides which message wins when several fields fail.
type createUserRequest struct {
	Email           string `json:"email" binding:"required,email" msg:"Invalid email address"`
	Password        string `json:"password" binding:"required,pwd" msg:"Password must be between 6 and 30 characters"`
	Username        string `json:"username" binding:"required,uname" msg:"Username must be between 3 and 30 characters"`
	ConfirmPassword string `json:"confirm_password" binding:"required" msg:"Confirm password is required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email" msg:"Invalid email address"`
	Password string `json:"password" binding:"required,pwd" msg:"Password must be between 6 and 30 characters"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" msg_required:"Email is empty!!" msg_email:"Invalid email!!"`
}

type resetPasswordRequest struct {
	ResetPasswordLink string `json:"resetPasswordLink" binding:"required" msg:"Invalid reset password link"`
	NewPassword       string `json:"newPassword" binding:"required,pwd" msg:"Password must be between 6 and 30 characters"`
}

// CreateUser POST /api/user/createUser
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, &req)
		return
	}
	u, err := h.Auth.Register(c.Request.Context(), application.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "User created successfully", nil)
}

// Login POST /api/user/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, &req)
		return
	}
	token, exp, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token}, "login successful", gin.H{"expires_at": exp})
}

// ForgotPassword PUT /api/user/forgot-password
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, &req)
		return
	}
	if err := h.Auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "email has been sent to "+req.Email, nil)
}

// ResetPassword PUT /api/user/password/reset
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, &req)
		return
	}
	if err := h.Auth.ResetPassword(c.Request.Context(), req.ResetPasswordLink, req.NewPassword); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "You have successfully Reset the password !", nil)
}

// AddFavorite POST /api/user/favorites/:movieId
func (h *UserHandler) AddFavorite(c *gin.Context) {
	if err := h.Users.AddFavorite(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("movieId")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Movie added to favorites", nil)
}

// RemoveFavorite DELETE /api/user/favorites/:movieId
func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	if err := h.Users.RemoveFavorite(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("movieId")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Movie removed from favorites", nil)
}

// Favorites GET /api/user/favorites
func (h *UserHandler) Favorites(c *gin.Context) {
	movies, err := h.Users.ListFavorites(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, movies, "favorites", nil)
}

// Me GET /api/user/me
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.Users.Me(c.Request.Context(), c.GetString(middleware.CtxUserEmail))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}
