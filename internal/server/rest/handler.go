package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
)

type handler struct {
	accounts AccountService
	logger   logging.Logger
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Token string `json:"token"`
}

type loginResponse struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
	User      models.PublicAccount `json:"user"`
}

type verifyResponse struct {
	Valid bool   `json:"valid"`
	User  string `json:"user,omitempty"`
	Error string `json:"error,omitempty"`
	Class string `json:"class,omitempty"`
}

// bind decodes a JSON body; malformed bodies are validation errors.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithError(c, fmt.Errorf("%w: malformed request body", common.ErrorValidation))
		return false
	}
	return true
}

func (h *handler) register(c *gin.Context) {
	var req registerRequest
	if !bind(c, &req) {
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), services.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.Name,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("Account '%s' registered successfully.", account.Email)})
}

func (h *handler) login(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.accounts.Login(c.Request.Context(), services.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: res.Token.Value, ExpiresAt: res.Token.ExpiresAt, User: res.Account})
}

func (h *handler) verify(c *gin.Context) {
	var req verifyRequest
	if !bind(c, &req) {
		return
	}

	subject, err := h.accounts.Verify(c.Request.Context(), req.Token)
	if err != nil {
		class := common.ClassOf(err)
		c.Set(classKey, class)
		c.JSON(StatusForClass(class), verifyResponse{Valid: false, Error: err.Error(), Class: class})
		return
	}

	c.JSON(http.StatusOK, verifyResponse{Valid: true, User: subject})
}

func (h *handler) me(c *gin.Context) {
	account, err := h.accounts.Me(c.Request.Context(), c.GetString(tokenKey))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": account})
}
