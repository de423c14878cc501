package projects

import (
	"errors"
	"fmt"

	"github.com/autocrea/autocrea/internal/auth"
	"github.com/autocrea/autocrea/internal/projects"
	"github.com/autocrea/autocrea/internal/server/validation"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	projectsSvc *projects.Service

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(projectsSvc *projects.Service, validator *validator.Validate, logger *zap.Logger) handler.Handler {
	return &Handler{
		projectsSvc: projectsSvc,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/projects")

	r.Use(h.errorsHandler)
	r.Post("/", validation.DecorateWithBodyEx(h.validator, h.post))
	r.Get("/", h.list)
	r.Get("/:id", h.get)
	r.Delete("/:id", h.delete)
}

//	@Summary		Create a new project
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			project	body		CreateRequest	true	"Project creation request"
//	@Success		201		{object}	ProjectResponse
//	@Failure		400		{object}	fiberfx.ErrorResponse
//	@Router			/projects [post]
//
// Create a new project.
func (h *Handler) post(c *fiber.Ctx, req *CreateRequest) error {
	draft := &projects.ProjectDraft{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     auth.UserID(c),
		Template:    req.Template,
	}

	project, err := h.projectsSvc.Create(c.Context(), draft)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	response := newProjectResponse(project)
	return c.Status(fiber.StatusCreated).JSON(response)
}

//	@Summary		List projects
//	@Description	List projects owned by the calling user
//	@Tags			projects
//	@Produce		json
//	@Success		200	{array}		ProjectResponse
//	@Failure		401	{object}	fiberfx.ErrorResponse
//	@Router			/projects [get]
//
// List the caller's projects.
func (h *Handler) list(c *fiber.Ctx) error {
	result, err := h.projectsSvc.ListByOwner(c.Context(), auth.UserID(c))
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	responses := make([]ProjectResponse, len(result))
	for i, project := range result {
		responses[i] = newProjectResponse(&project)
	}

	return c.JSON(responses)
}

//	@Summary		Get a project
//	@Tags			projects
//	@Produce		json
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	ProjectResponse
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/projects/{id} [get]
//
// Get a project by ID.
func (h *Handler) get(c *fiber.Ctx) error {
	id, err := getProjectID(c)
	if err != nil {
		return err
	}

	project, err := h.projectsSvc.Get(c.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}

	response := newProjectResponse(project)
	return c.JSON(response)
}

//	@Summary		Delete a project
//	@Tags			projects
//	@Param			id	path	string	true	"Project ID"
//	@Success		204
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/projects/{id} [delete]
//
// Delete a project.
func (h *Handler) delete(c *fiber.Ctx) error {
	id, err := getProjectID(c)
	if err != nil {
		return err
	}

	if err := h.projectsSvc.Delete(c.Context(), id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, projects.ErrNotFound), errors.Is(err, projects.ErrNotAllowed):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}

func getProjectID(c *fiber.Ctx) (uuid.UUID, error) {
	idParam := c.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return uuid.UUID{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return id, nil
}
