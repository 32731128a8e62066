package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/userbook/userbook/internal/users"
)

//go:embed templates/*
var templateFiles embed.FS

// Handler serves the user pages
type Handler struct {
	UserService users.UserService
	Logger      *zap.Logger
}

// NewHandler creates a new user page handler
func NewHandler(userService users.UserService, logger *zap.Logger) *Handler {
	return &Handler{
		UserService: userService,
		Logger:      logger,
	}
}

// Templates parses the embedded page templates
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFiles, "templates/*.html")
}

// SetupRoutes installs the page templates, the error page and the user routes
func (h *Handler) SetupRoutes(router *gin.Engine) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	router.SetHTMLTemplate(tmpl)

	router.Use(ErrorPageMiddleware(h.Logger))

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/users")
	})
	router.GET("/users", h.findAll)
	router.GET("/user-create", h.createUserForm)
	router.POST("/user-create", h.createUser)
	router.GET("/user-delete/:id", h.deleteUser)
	router.GET("/user-update/:id", h.getOne)
	router.POST("/user-update", h.updateUser)

	return nil
}

// findAll renders the list of all users
func (h *Handler) findAll(c *gin.Context) {
	all, err := h.UserService.FindAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	h.Logger.Info("Showing user list", zap.Int("count", len(all)))
	c.HTML(http.StatusOK, "user-list.html", gin.H{
		"Title": "Users",
		"Users": all,
	})
}

// createUserForm renders an empty creation form
func (h *Handler) createUserForm(c *gin.Context) {
	h.Logger.Info("Showing user creation form")
	c.HTML(http.StatusOK, "user-create.html", gin.H{
		"Title": "Create user",
		"User":  users.User{},
	})
}

// createUser saves the submitted user and goes back to the list
func (h *Handler) createUser(c *gin.Context) {
	var user users.User
	if err := c.ShouldBind(&user); err != nil {
		c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	// ids are assigned by the database
	user.ID = 0

	saved, err := h.UserService.Save(c.Request.Context(), &user)
	if err != nil {
		c.Error(err)
		return
	}

	h.Logger.Info("User saved", zap.Int64("user_id", saved.ID))
	c.Redirect(http.StatusSeeOther, "/users")
}

// deleteUser deletes the user named in the path and goes back to the list
func (h *Handler) deleteUser(c *gin.Context) {
	var uri users.UserURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	if err := h.UserService.DeleteByID(c.Request.Context(), uri.ID); err != nil {
		c.Error(err)
		return
	}

	h.Logger.Info("User deleted", zap.Int64("user_id", uri.ID))
	c.Redirect(http.StatusFound, "/users")
}

// getOne renders the update form pre-filled with the stored user
func (h *Handler) getOne(c *gin.Context) {
	var uri users.UserURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	user, err := h.UserService.GetOne(c.Request.Context(), uri.ID)
	if err != nil {
		c.Error(err)
		return
	}

	h.Logger.Info("User fetched for update", zap.Int64("user_id", user.ID))
	c.HTML(http.StatusOK, "user-update.html", gin.H{
		"Title": "Update user",
		"User":  user,
	})
}

// updateUser overwrites the submitted user and goes back to the list
func (h *Handler) updateUser(c *gin.Context) {
	var user users.User
	if err := c.ShouldBind(&user); err != nil {
		c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	if _, err := h.UserService.Update(c.Request.Context(), &user); err != nil {
		c.Error(err)
		return
	}

	h.Logger.Info("User updated", zap.Int64("user_id", user.ID))
	c.Redirect(http.StatusSeeOther, "/users")
}
