package controllers

import (
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type registerReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
}

// POST /auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := ac.Auth.Register(req.Email, req.Password, req.FullName)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Created(c, gin.H{"id": user.ID, "email": user.Email})
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := ac.Auth.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

// GET /auth/activate?token=...
func (ac *AuthController) Activate(c *gin.Context) {
	if err := ac.Auth.Activate(c.Query("token")); err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"activated": true})
}

// GET /auth/me
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.Auth.Profile(utils.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, user)
}

type updateMeReq struct {
	FullName string `json:"fullName" binding:"required"`
}

// PATCH /auth/me
func (ac *AuthController) UpdateMe(c *gin.Context) {
	var req updateMeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := ac.Auth.UpdateProfile(utils.CurrentUserID(c), req.FullName)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, user)
}
