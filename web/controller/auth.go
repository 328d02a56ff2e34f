package controller

import (
	"net/http"

	"bibliophile/logger"
	"bibliophile/web/service"
	"bibliophile/web/session"

	"github.com/gin-gonic/gin"
)

// RegisterForm represents the registration request structure.
type RegisterForm struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginForm represents the login request structure.
type LoginForm struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthController handles registration, login, logout and profile routes.
type AuthController struct {
	BaseController

	userService service.UserService
}

func NewAuthController(g *gin.RouterGroup) *AuthController {
	a := &AuthController{}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.POST("/register", a.register)
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
	g.GET("/me", a.me)
	g.GET("/users/:username", a.getUser)
}

// register creates the account and logs the new user in right away.
func (a *AuthController) register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	existing, err := a.userService.FindByUsername(form.Username)
	if err != nil {
		jsonServiceError(c, "Failed to register", err)
		return
	}
	if existing != nil {
		jsonMsg(c, http.StatusConflict, "Username already exists")
		return
	}

	user, err := a.userService.CreateUser(form.Email, form.Username, form.Password)
	if err != nil {
		jsonServiceError(c, "Failed to register", err)
		return
	}

	if err := session.SetLoginUser(c, user.Id); err != nil {
		logger.Warning("unable to save session:", err)
	}
	logger.Infof("%s registered, IP: %s", user.Username, getRemoteIp(c))
	jsonMsg(c, http.StatusCreated, "Registered")
}

// login verifies credentials. Unknown username and wrong password yield the
// same generic 401 so usernames cannot be enumerated.
func (a *AuthController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user := a.userService.CheckUser(form.Username, form.Password)
	if user == nil {
		logger.Warningf("failed login for %q, IP: %s", form.Username, getRemoteIp(c))
		jsonMsg(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := session.SetLoginUser(c, user.Id); err != nil {
		logger.Warning("unable to save session:", err)
		jsonMsg(c, http.StatusInternalServerError, "Failed to log in")
		return
	}
	logger.Infof("%s logged in successfully, IP: %s", user.Username, getRemoteIp(c))
	jsonMsg(c, http.StatusOK, "Logged in")
}

// logout expires the cookie. There is no server-side revocation; a copied
// cookie stays valid until its natural expiry.
func (a *AuthController) logout(c *gin.Context) {
	if userId, ok := session.GetLoginUser(c); ok {
		logger.Infof("user %d logged out", userId)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	jsonMsg(c, http.StatusOK, "Logged out")
}

// me returns the full profile of the session user, with empty collections
// rather than 404 for a user who has no content yet.
func (a *AuthController) me(c *gin.Context) {
	userId, ok := session.GetLoginUser(c)
	if !ok {
		jsonMsg(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	profile, err := a.userService.GetUserProfile(userId)
	if err != nil {
		jsonServiceError(c, "Failed to retrieve profile", err)
		return
	}
	if profile == nil {
		jsonMsg(c, http.StatusNotFound, "Profile not found")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// getUser is a public existence probe by username.
func (a *AuthController) getUser(c *gin.Context) {
	username := c.Param("username")
	user, err := a.userService.FindByUsername(username)
	if err != nil {
		jsonServiceError(c, "Failed to retrieve user", err)
		return
	}
	if user == nil {
		jsonMsg(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}
