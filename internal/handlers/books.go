package handlers

import (
	"net/http"

	"booktracker/internal/service"

	"github.com/gin-gonic/gin"
)

type createBookRequest struct {
	Title  string   `json:"title"`
	Author string   `json:"author"`
	Tags   []string `json:"tags"`
	Status string   `json:"status" binding:"omitempty,bookstatus"`
}

type updateBookRequest struct {
	Title  *string   `json:"title"`
	Author *string   `json:"author"`
	Tags   *[]string `json:"tags"`
	Status *string   `json:"status" binding:"omitempty,bookstatus"`
}

// @Summary      List books
// @Description  Returns the caller's books, newest-created first.
// @Tags         books
// @Produce      json
// @Success      200  {array}   models.Book
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/books [get]
// @Security     BearerAuth
func (h *Handler) listBooks(c *gin.Context) {
	userID := c.GetString(userIDKey)

	books, err := h.services.Books.List(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, "books_list_failed", err, "userId", userID)
		return
	}
	c.JSON(http.StatusOK, books)
}

// @Summary      Add book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        body  body      createBookRequest  true  "Book payload"
// @Success      201   {object}  models.Book
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/books [post]
// @Security     BearerAuth
func (h *Handler) createBook(c *gin.Context) {
	var req createBookRequest
	if ok := h.bindJSON(c, &req); !ok {
		return
	}
	userID := c.GetString(userIDKey)

	book, err := h.services.Books.Create(c.Request.Context(), userID, service.CreateBookParams{
		Title:  req.Title,
		Author: req.Author,
		Tags:   req.Tags,
		Status: req.Status,
	})
	if err != nil {
		h.respondError(c, "book_create_failed", err, "userId", userID)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// @Summary      Update book
// @Description  Accepts any subset of title, author, tags, status.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Book id"
// @Param        body  body      updateBookRequest  true  "Fields to update"
// @Success      200   {object}  models.Book
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/books/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateBook(c *gin.Context) {
	var req updateBookRequest
	if ok := h.bindJSON(c, &req); !ok {
		return
	}
	userID := c.GetString(userIDKey)
	bookID := c.Param("id")

	book, err := h.services.Books.Update(c.Request.Context(), userID, bookID, service.UpdateBookParams{
		Title:  req.Title,
		Author: req.Author,
		Tags:   req.Tags,
		Status: req.Status,
	})
	if err != nil {
		h.respondError(c, "book_update_failed", err, "userId", userID, "bookId", bookID)
		return
	}
	c.JSON(http.StatusOK, book)
}

// @Summary      Delete book
// @Tags         books
// @Produce      json
// @Param        id  path  string  true  "Book id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/books/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteBook(c *gin.Context) {
	userID := c.GetString(userIDKey)
	bookID := c.Param("id")

	if err := h.services.Books.Delete(c.Request.Context(), userID, bookID); err != nil {
		h.respondError(c, "book_delete_failed", err, "userId", userID, "bookId", bookID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgBookDeleted})
}
