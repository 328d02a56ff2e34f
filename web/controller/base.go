// Package controller provides the HTTP route handlers of the bibliophile
// API. Handlers parse input, call exactly one service operation and map its
// outcome to a status code and a JSON body.
package controller

import (
	"net/http"

	"bibliophile/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the authentication gate shared by all controllers.
type BaseController struct{}

// checkLogin is a middleware that rejects requests without a valid session.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		jsonMsg(c, http.StatusUnauthorized, "Not authenticated")
		c.Abort()
	} else {
		c.Next()
	}
}
