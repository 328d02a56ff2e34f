// Package session stores the authenticated user id in the signed cookie
// session. The session is stateless: nothing is tracked server side, so a
// copied cookie stays valid until its natural expiry even after logout.
package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const loginUserKey = "LOGIN_USER"

func SetLoginUser(c *gin.Context, userId int) error {
	s := sessions.Default(c)
	s.Set(loginUserKey, userId)
	return s.Save()
}

// GetLoginUser returns the session's user id, or false when the request
// carries no valid session. A token without a bound user id is treated the
// same as an absent one.
func GetLoginUser(c *gin.Context) (int, bool) {
	s := sessions.Default(c)
	if obj := s.Get(loginUserKey); obj != nil {
		if userId, ok := obj.(int); ok {
			return userId, true
		}
	}
	return 0, false
}

func IsLogin(c *gin.Context) bool {
	_, ok := GetLoginUser(c)
	return ok
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
