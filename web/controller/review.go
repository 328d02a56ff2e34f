package controller

import (
	"fmt"
	"net/http"
	"strings"

	"bibliophile/database/model"
	"bibliophile/web/service"
	"bibliophile/web/session"

	"github.com/gin-gonic/gin"
)

// ReviewForm represents the review create/update request structure. Rate has
// no binding tag on purpose: 0 is a valid rate and must survive binding.
type ReviewForm struct {
	BookId     string     `json:"bookId"`
	Content    *string    `json:"content"`
	Rate       int        `json:"rate"`
	Favorite   bool       `json:"favorite"`
	ReviewedAt model.Date `json:"reviewedAt"`
}

// validate runs the pure input checks that must pass before the service is
// ever touched. Returns an empty string when the form is acceptable.
func (f *ReviewForm) validate() string {
	if f.Rate < 0 || f.Rate > 10 {
		return "Rate must be between 0 and 10"
	}
	if strings.TrimSpace(f.BookId) == "" {
		return "Book ID is required"
	}
	return ""
}

type ReviewController struct {
	BaseController

	reviewService service.ReviewService
	userService   service.UserService
}

func NewReviewController(g *gin.RouterGroup) *ReviewController {
	a := &ReviewController{}
	a.initRouter(g)
	return a
}

func (a *ReviewController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/reviews")

	g.GET("", a.allReviews)
	g.GET("/:id", a.getReview)
	g.GET("/user/:identifier", a.reviewsByUser)
	g.GET("/book/:bookId", a.reviewsByBook)
	g.POST("", a.checkLogin, a.addReview)
	g.PUT("/:id", a.checkLogin, a.updateReview)
	g.DELETE("/:id", a.checkLogin, a.deleteReview)
}

func (a *ReviewController) allReviews(c *gin.Context) {
	reviews, err := a.reviewService.AllReviews()
	if err != nil {
		jsonServiceError(c, "Failed to retrieve reviews", err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (a *ReviewController) getReview(c *gin.Context) {
	id, ok := getIntParam(c, "id")
	if !ok {
		return
	}

	review, err := a.reviewService.GetReview(id)
	if err != nil {
		jsonServiceError(c, "Error retrieving review", err)
		return
	}
	if review == nil {
		jsonMsg(c, http.StatusNotFound, "Review not found")
		return
	}
	c.JSON(http.StatusOK, review)
}

// reviewsByUser accepts either a numeric user id or a username.
func (a *ReviewController) reviewsByUser(c *gin.Context) {
	userId, err := a.userService.ResolveUserID(c.Param("identifier"))
	if err != nil {
		jsonServiceError(c, "Error retrieving reviews", err)
		return
	}
	if userId == 0 {
		jsonMsg(c, http.StatusNotFound, "User not found")
		return
	}

	reviews, err := a.reviewService.ReviewsByUser(userId)
	if err != nil {
		jsonServiceError(c, "Error retrieving reviews", err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (a *ReviewController) reviewsByBook(c *gin.Context) {
	reviews, err := a.reviewService.ReviewsByBook(c.Param("bookId"))
	if err != nil {
		jsonServiceError(c, "Error retrieving reviews", err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (a *ReviewController) addReview(c *gin.Context) {
	var form ReviewForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := form.validate(); msg != "" {
		jsonMsg(c, http.StatusBadRequest, msg)
		return
	}
	userId, _ := session.GetLoginUser(c)

	created, err := a.reviewService.AddReview(&model.Review{
		UserId:     userId,
		BookId:     form.BookId,
		Content:    form.Content,
		Rate:       form.Rate,
		Favorite:   form.Favorite,
		ReviewedAt: form.ReviewedAt,
	})
	if err != nil {
		jsonServiceError(c, "Failed to create review", err)
		return
	}
	jsonMsg(c, http.StatusCreated, fmt.Sprintf("Review created successfully - Review ID: %d", created.Id))
}

func (a *ReviewController) updateReview(c *gin.Context) {
	id, ok := getIntParam(c, "id")
	if !ok {
		return
	}
	var form ReviewForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := form.validate(); msg != "" {
		jsonMsg(c, http.StatusBadRequest, msg)
		return
	}
	userId, _ := session.GetLoginUser(c)

	outcome, err := a.reviewService.UpdateReview(id, userId, &model.Review{
		BookId:     form.BookId,
		Content:    form.Content,
		Rate:       form.Rate,
		Favorite:   form.Favorite,
		ReviewedAt: form.ReviewedAt,
	})
	if err != nil {
		jsonServiceError(c, "Failed to update review", err)
		return
	}
	jsonOutcome(c, outcome, "Review updated successfully", "You don't own this review")
}

func (a *ReviewController) deleteReview(c *gin.Context) {
	id, ok := getIntParam(c, "id")
	if !ok {
		return
	}
	userId, _ := session.GetLoginUser(c)

	outcome, err := a.reviewService.DeleteReview(id, userId)
	if err != nil {
		jsonServiceError(c, "Failed to delete review", err)
		return
	}
	jsonOutcome(c, outcome, "Review deleted successfully", "You don't own this review")
}
