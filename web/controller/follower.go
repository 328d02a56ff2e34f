package controller

import (
	"net/http"
	"strconv"

	"bibliophile/web/service"
	"bibliophile/web/session"

	"github.com/gin-gonic/gin"
)

// FollowForm represents the follow/unfollow request structure.
type FollowForm struct {
	FolloweeId int `json:"followeeId" binding:"required"`
}

type FollowerController struct {
	BaseController

	followerService service.FollowerService
	userService     service.UserService
}

func NewFollowerController(g *gin.RouterGroup) *FollowerController {
	a := &FollowerController{}
	a.initRouter(g)
	return a
}

func (a *FollowerController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/followers")

	g.GET("", a.allFollows)
	g.GET("/check", a.checkFollowing)
	g.GET("/:identifier/following", a.following)
	g.GET("/:identifier/followers", a.followers)
	g.POST("", a.checkLogin, a.addFollow)
	g.DELETE("", a.checkLogin, a.deleteFollow)
}

func (a *FollowerController) allFollows(c *gin.Context) {
	follows, err := a.followerService.AllFollows()
	if err != nil {
		jsonServiceError(c, "Failed to retrieve follows", err)
		return
	}
	c.JSON(http.StatusOK, follows)
}

// resolveIdentifier maps the path identifier (id or username) to a user id,
// answering 404 itself when no user matches.
func (a *FollowerController) resolveIdentifier(c *gin.Context) (int, bool) {
	userId, err := a.userService.ResolveUserID(c.Param("identifier"))
	if err != nil {
		jsonServiceError(c, "Error resolving user", err)
		return 0, false
	}
	if userId == 0 {
		jsonMsg(c, http.StatusNotFound, "User not found")
		return 0, false
	}
	return userId, true
}

func (a *FollowerController) following(c *gin.Context) {
	userId, ok := a.resolveIdentifier(c)
	if !ok {
		return
	}
	follows, err := a.followerService.FollowingOf(userId)
	if err != nil {
		jsonServiceError(c, "Error retrieving following users", err)
		return
	}
	c.JSON(http.StatusOK, follows)
}

func (a *FollowerController) followers(c *gin.Context) {
	userId, ok := a.resolveIdentifier(c)
	if !ok {
		return
	}
	follows, err := a.followerService.FollowersOf(userId)
	if err != nil {
		jsonServiceError(c, "Error retrieving followers of user", err)
		return
	}
	c.JSON(http.StatusOK, follows)
}

func (a *FollowerController) checkFollowing(c *gin.Context) {
	followerId, err1 := strconv.Atoi(c.Query("followerId"))
	followeeId, err2 := strconv.Atoi(c.Query("followeeId"))
	if err1 != nil || err2 != nil {
		jsonMsg(c, http.StatusBadRequest, "Both user IDs are required")
		return
	}

	isFollowing, err := a.followerService.IsFollowing(followerId, followeeId)
	if err != nil {
		jsonServiceError(c, "Error checking follow status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isFollowing": isFollowing})
}

// addFollow pre-checks for a duplicate to return a friendly conflict; the
// unique pair index still backs the check under concurrent requests.
func (a *FollowerController) addFollow(c *gin.Context) {
	var form FollowForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	userId, _ := session.GetLoginUser(c)

	if userId == form.FolloweeId {
		jsonMsg(c, http.StatusBadRequest, "User cannot follow themselves")
		return
	}

	isFollowing, err := a.followerService.IsFollowing(userId, form.FolloweeId)
	if err != nil {
		jsonServiceError(c, "Failed to create follow", err)
		return
	}
	if isFollowing {
		jsonMsg(c, http.StatusConflict, "User is already following this person")
		return
	}

	if err := a.followerService.AddFollow(userId, form.FolloweeId); err != nil {
		jsonServiceError(c, "Failed to create follow", err)
		return
	}
	jsonMsg(c, http.StatusCreated, "Follow created successfully")
}

func (a *FollowerController) deleteFollow(c *gin.Context) {
	var form FollowForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	userId, _ := session.GetLoginUser(c)

	deleted, err := a.followerService.DeleteFollow(userId, form.FolloweeId)
	if err != nil {
		jsonServiceError(c, "Failed to delete follow", err)
		return
	}
	if !deleted {
		jsonMsg(c, http.StatusNotFound, "Follow not found")
		return
	}
	jsonMsg(c, http.StatusOK, "Follow deleted successfully")
}
