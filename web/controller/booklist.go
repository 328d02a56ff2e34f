package controller

import (
	"fmt"
	"net/http"

	"bibliophile/web/service"
	"bibliophile/web/session"

	"github.com/gin-gonic/gin"
)

// BooklistForm represents the booklist create/update request structure.
type BooklistForm struct {
	ListName        string  `json:"listName" binding:"required,max=50"`
	ListDescription *string `json:"listDescription" binding:"omitempty,max=255"`
}

// BookForm carries the external catalog id of a book to add to a list.
type BookForm struct {
	BookId string `json:"bookId" binding:"required,max=32"`
}

type BooklistController struct {
	BaseController

	booklistService service.BooklistService
}

func NewBooklistController(g *gin.RouterGroup) *BooklistController {
	a := &BooklistController{}
	a.initRouter(g)
	return a
}

func (a *BooklistController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/booklists")

	g.GET("", a.allBooklists)
	g.GET("/:id", a.getBooklist)
	g.GET("/:id/books", a.getBooklistBooks)
	g.POST("", a.checkLogin, a.addBooklist)
	g.PUT("/:id", a.checkLogin, a.updateBooklist)
	g.DELETE("/:id", a.checkLogin, a.deleteBooklist)
	g.POST("/:id/books", a.checkLogin, a.addBook)
	g.DELETE("/:id/books/:bookId", a.checkLogin, a.removeBook)
}

func (a *BooklistController) allBooklists(c *gin.Context) {
	booklists, err := a.booklistService.AllBooklists()
	if err != nil {
		jsonServiceError(c, "Failed to retrieve booklists", err)
		return
	}
	c.JSON(http.StatusOK, booklists)
}

func (a *BooklistController) getBooklist(c *gin.Context) {
	id, ok := getIntParam(c, "id")
	if !ok {
		return
	}

	booklist, err := a.booklistService.GetBooklist(id)
	if err != nil {
		jsonServiceError(c, "Error retrieving booklist", err)
		return
	}
	if booklist == nil {
		jsonMsg(c, http.StatusNotFound, "Booklist not found")
		return
	}
	c.JSON(http.StatusOK, booklist)
}

func (a *BooklistController) getBooklistBooks(c *gin.Context) {
	id, ok := getIntParam(c, "id")
	if !ok {
		return
	}

	booklist, err := a.booklistService.BooklistWithBooks(id)
	if err != nil {
		jsonServiceError(c, "Error retrieving booklist", err)
		return
	}
	if booklist == nil {
		jsonMsg(c, http.StatusNotFound, "Booklist not found")
		return
	}
	c.JSON(http.StatusOK, booklist)
}

func (a *BooklistController) addBooklist(c *gin.Context) {
	var form BooklistForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	userId, _ := session.GetLoginUser(c)

	booklist, err := a.booklistService.AddBooklist(userId, form.ListName, form.ListDescription)
	if err != nil {
		jsonServiceError(c, "Failed to create booklist", err)
		return
	}
	jsonMsg(c, http.StatusCreated, fmt.Sprintf("Booklist created successfully - Booklist ID: %d", booklist.Id))
}

func (a *BooklistController) updateBooklist(c *gin.Context) {
	id, ok := getIntParam(c, "id")
	if !ok {
		return
	}
	var form BooklistForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	userId, _ := session.GetLoginUser(c)

	outcome, err := a.booklistService.UpdateBooklist(id, userId, form.ListName, form.ListDescription)
	if err != nil {
		jsonServiceError(c, "Failed to update booklist", err)
		return
	}
	jsonOutcome(c, outcome, "Booklist updated successfully", "You don't own this booklist")
}

func (a *BooklistController) deleteBooklist(c *gin.Context) {
	id, ok := getIntParam(c, "id")
	if !ok {
		return
	}
	userId, _ := session.GetLoginUser(c)

	outcome, err := a.booklistService.DeleteBooklist(id, userId)
	if err != nil {
		jsonServiceError(c, "Failed to delete booklist", err)
		return
	}
	jsonOutcome(c, outcome, "Booklist deleted successfully", "You don't own this booklist")
}

func (a *BooklistController) addBook(c *gin.Context) {
	id, ok := getIntParam(c, "id")
	if !ok {
		return
	}
	var form BookForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	userId, _ := session.GetLoginUser(c)

	outcome, err := a.booklistService.AddBook(id, userId, form.BookId)
	if err != nil {
		jsonServiceError(c, "Failed to add book to booklist", err)
		return
	}
	switch outcome {
	case service.OutcomeOK:
		jsonMsg(c, http.StatusCreated, "Book added to booklist successfully")
	default:
		jsonMsg(c, http.StatusForbidden, "You don't own this booklist")
	}
}

func (a *BooklistController) removeBook(c *gin.Context) {
	id, ok := getIntParam(c, "id")
	if !ok {
		return
	}
	userId, _ := session.GetLoginUser(c)

	outcome, err := a.booklistService.RemoveBook(id, userId, c.Param("bookId"))
	if err != nil {
		jsonServiceError(c, "Failed to remove book from booklist", err)
		return
	}
	jsonOutcome(c, outcome, "Book deleted from booklist successfully", "You don't own this booklist")
}
