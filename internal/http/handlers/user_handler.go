package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the JSON payload for creating an account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=150" example:"alice"`
	Password string `json:"password" binding:"required,max=128" example:"s3cret-pass"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       int64  `json:"id" example:"1"`
	Username string `json:"username" example:"alice"`
}

// LoginRequest is the JSON payload for obtaining a token.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// TokenResponse carries the API token used in the Authorization header.
type TokenResponse struct {
	Token string `json:"token" example:"9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b"`
}

// Register godoc
// @ID          registerUser
// @Summary     Register a user
// @Description Creates an account. Usernames are trimmed and must be unique.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.RegisterRequest  true  "Credentials"
// @Success     201   {object}  handlers.UserResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409   {object}  handlers.ErrorResponse  "Username taken"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /user/ [post]
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, bindingMessage(err))
		return
	}
	u, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, UserResponse{ID: u.ID, Username: u.Username})
}

// Login godoc
// @ID          loginUser
// @Summary     Obtain an API token
// @Description Returns the user's token, minting one on first login. Send it as `Authorization: Token <token>`.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.LoginRequest  true  "Credentials"
// @Success     200   {object}  handlers.TokenResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Bad credentials"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /user/login/ [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, bindingMessage(err))
		return
	}
	token, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, TokenResponse{Token: token})
}
