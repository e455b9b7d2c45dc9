package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"videogames-be/internal/entities"
	"videogames-be/internal/models"
	"videogames-be/internal/projection"
	"videogames-be/internal/service"
)

// ResourceService is the CRUD surface shared by every kind.
type ResourceService[T projection.Record] interface {
	List(ctx context.Context, page models.Page) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, in projection.Input) (T, error)
	Update(ctx context.Context, id int64, in projection.Input) (T, error)
	Delete(ctx context.Context, id int64) error
}

// ResourceController serves the five CRUD routes of one kind. Request bodies
// are restricted to the write group and responses projected through the read
// group.
type ResourceController[T projection.Record] struct {
	service  ResourceService[T]
	read     projection.Group
	write    projection.Group
	maxLimit int
}

func NewResourceController[T projection.Record](svc ResourceService[T], read, write projection.Group, maxLimit int) *ResourceController[T] {
	return &ResourceController[T]{
		service:  svc,
		read:     read,
		write:    write,
		maxLimit: maxLimit,
	}
}

func NewCategoryController(svc service.CategoryService, maxLimit int) *ResourceController[*entities.Category] {
	return NewResourceController[*entities.Category](svc, projection.CategoryRead, projection.CategoryWrite, maxLimit)
}

func NewEditorController(svc service.EditorService, maxLimit int) *ResourceController[*entities.Editor] {
	return NewResourceController[*entities.Editor](svc, projection.EditorRead, projection.EditorWrite, maxLimit)
}

func NewVideoGameController(svc service.VideoGameService, maxLimit int) *ResourceController[*entities.VideoGame] {
	return NewResourceController[*entities.VideoGame](svc, projection.GameRead, projection.GameWrite, maxLimit)
}

func NewUserController(svc service.UserService, maxLimit int) *ResourceController[*entities.User] {
	return NewResourceController[*entities.User](svc, projection.UserRead, projection.UserWrite, maxLimit)
}

// List handles GET /api/<kind>?page=&limit=
func (rc *ResourceController[T]) List(c *gin.Context) {
	page := models.NewPage(c.Query("page"), c.Query("limit"), rc.maxLimit)

	records, err := rc.service.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projection.ProjectAll(rc.read, records))
}

// Get handles GET /api/<kind>/:id
func (rc *ResourceController[T]) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	record, err := rc.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projection.Project(rc.read, record))
}

// Create handles POST /api/<kind>
func (rc *ResourceController[T]) Create(c *gin.Context) {
	in, ok := rc.bindInput(c)
	if !ok {
		return
	}

	record, err := rc.service.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, projection.Project(rc.read, record))
}

// Update handles PUT /api/<kind>/:id. Fields absent from the body keep their
// stored value.
func (rc *ResourceController[T]) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	in, ok := rc.bindInput(c)
	if !ok {
		return
	}

	record, err := rc.service.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projection.Project(rc.read, record))
}

// Delete handles DELETE /api/<kind>/:id
func (rc *ResourceController[T]) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := rc.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (rc *ResourceController[T]) bindInput(c *gin.Context) (projection.Input, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return nil, false
	}
	in, err := projection.Restrict(rc.write, body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return nil, false
	}
	return in, true
}

// pathID parses the :id parameter. An id that cannot name a record is
// answered with 404, as no record could match it.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		respondError(c, service.ErrNotFound)
		return 0, false
	}
	return id, true
}
