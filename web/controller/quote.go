package controller

import (
	"net/http"

	"bibliophile/web/service"
	"bibliophile/web/session"

	"github.com/gin-gonic/gin"
)

// QuoteForm represents the quote create/update request structure.
type QuoteForm struct {
	Content string `json:"content" binding:"required,max=255"`
}

type QuoteController struct {
	BaseController

	quoteService service.QuoteService
}

func NewQuoteController(g *gin.RouterGroup) *QuoteController {
	a := &QuoteController{}
	a.initRouter(g)
	return a
}

func (a *QuoteController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/quotes")

	g.GET("", a.allQuotes)
	g.GET("/:id", a.getQuote)
	g.POST("", a.checkLogin, a.addQuote)
	g.PUT("/:id", a.checkLogin, a.updateQuote)
	g.DELETE("/:id", a.checkLogin, a.deleteQuote)
}

func (a *QuoteController) allQuotes(c *gin.Context) {
	quotes, err := a.quoteService.AllQuotes()
	if err != nil {
		jsonServiceError(c, "Failed to retrieve quotes", err)
		return
	}
	c.JSON(http.StatusOK, quotes)
}

func (a *QuoteController) getQuote(c *gin.Context) {
	id, ok := getIntParam(c, "id")
	if !ok {
		return
	}

	quote, err := a.quoteService.GetQuote(id)
	if err != nil {
		jsonServiceError(c, "Error retrieving quote", err)
		return
	}
	if quote == nil {
		jsonMsg(c, http.StatusNotFound, "Quote not found")
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (a *QuoteController) addQuote(c *gin.Context) {
	var form QuoteForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	userId, _ := session.GetLoginUser(c)

	if _, err := a.quoteService.AddQuote(userId, form.Content); err != nil {
		jsonServiceError(c, "Failed to create quote", err)
		return
	}
	jsonMsg(c, http.StatusCreated, "Quote created successfully")
}

func (a *QuoteController) updateQuote(c *gin.Context) {
	id, ok := getIntParam(c, "id")
	if !ok {
		return
	}
	var form QuoteForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	userId, _ := session.GetLoginUser(c)

	outcome, err := a.quoteService.UpdateQuote(id, userId, form.Content)
	if err != nil {
		jsonServiceError(c, "Failed to update quote", err)
		return
	}
	jsonOutcome(c, outcome, "Quote updated successfully", "You don't own this quote")
}

func (a *QuoteController) deleteQuote(c *gin.Context) {
	id, ok := getIntParam(c, "id")
	if !ok {
		return
	}
	userId, _ := session.GetLoginUser(c)

	outcome, err := a.quoteService.DeleteQuote(id, userId)
	if err != nil {
		jsonServiceError(c, "Failed to delete quote", err)
		return
	}
	jsonOutcome(c, outcome, "Quote deleted successfully", "You don't own this quote")
}
