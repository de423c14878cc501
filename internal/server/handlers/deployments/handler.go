package deployments

import (
	"errors"
	"fmt"
	"time"

	"github.com/autocrea/autocrea/internal/auth"
	"github.com/autocrea/autocrea/internal/deployments"
	"github.com/autocrea/autocrea/internal/projects"
	"github.com/autocrea/autocrea/internal/server/validation"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	deploymentsSvc *deployments.Service

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(
	deploymentsSvc *deployments.Service,
	validator *validator.Validate,
	logger *zap.Logger,
) handler.Handler {
	return &Handler{
		deploymentsSvc: deploymentsSvc,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/deployments")

	r.Use(h.errorsHandler)
	r.Post("/", validation.DecorateWithBodyEx(h.validator, h.post))
	r.Get("/", h.list)
	r.Get("/stats", h.stats)
	r.Post("/cleanup", validation.DecorateWithBodyEx(h.validator, h.cleanup))
	r.Get("/:id", h.get)
	r.Delete("/:id", h.cancel)
	r.Post("/:id/rollback", h.rollback)
	r.Post("/:id/refresh", h.refresh)
	r.Get("/:id/logs", h.logs)
	r.Patch("/:id/logs", validation.DecorateWithBodyEx(h.validator, h.appendLogs))
}

//	@Summary		Create a new deployment
//	@Description	Deploy a project to a hosting provider. The deployment record is created even when the provider rejects the request, so the response status is either building or failed.
//	@Tags			deployments
//	@Accept			json
//	@Produce		json
//	@Param			deployment	body		CreateRequest	true	"Deployment creation request"
//	@Success		201			{object}	DeploymentResponse
//	@Failure		400			{object}	fiberfx.ErrorResponse
//	@Failure		404			{object}	fiberfx.ErrorResponse
//	@Router			/deployments [post]
//
// Create a new deployment.
func (h *Handler) post(c *fiber.Ctx, req *CreateRequest) error {
	deployment, err := h.deploymentsSvc.Create(c.Context(), newDeploymentRequest(req, auth.UserID(c)))
	if err != nil {
		return fmt.Errorf("failed to create deployment: %w", err)
	}

	response := newDeploymentResponse(deployment)
	return c.Status(fiber.StatusCreated).JSON(response)
}

//	@Summary		List deployments
//	@Description	List deployments for a project or a user, newest first, optionally filtered by status
//	@Tags			deployments
//	@Produce		json
//	@Param			project_id	query		string	false	"Project ID"
//	@Param			user_id		query		string	false	"User ID"
//	@Param			status		query		string	false	"Status filter"	Enums(pending, building, success, failed, cancelled)
//	@Success		200			{array}		DeploymentResponse
//	@Failure		400			{object}	fiberfx.ErrorResponse
//	@Router			/deployments [get]
//
// List deployments.
func (h *Handler) list(c *fiber.Ctx) error {
	var (
		result []deployments.Deployment
		err    error
	)

	switch {
	case c.Query("project_id") != "":
		projectID, parseErr := uuid.Parse(c.Query("project_id"))
		if parseErr != nil {
			return fiber.NewError(fiber.StatusBadRequest, parseErr.Error())
		}

		if status := c.Query("status"); status != "" {
			result, err = h.deploymentsSvc.ListByStatus(c.Context(), projectID, deployments.Status(status))
		} else {
			result, err = h.deploymentsSvc.ListByProject(c.Context(), projectID)
		}
	case c.Query("user_id") != "":
		result, err = h.deploymentsSvc.ListByUser(c.Context(), c.Query("user_id"))
	default:
		return fiber.NewError(fiber.StatusBadRequest, "project_id or user_id query parameter is required")
	}

	if err != nil {
		return fmt.Errorf("failed to list deployments: %w", err)
	}

	responses := make([]DeploymentResponse, len(result))
	for i, deployment := range result {
		responses[i] = newDeploymentResponse(&deployment)
	}

	return c.JSON(responses)
}

//	@Summary		Get a deployment
//	@Tags			deployments
//	@Produce		json
//	@Param			id	path		string	true	"Deployment ID"
//	@Success		200	{object}	DeploymentResponse
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/deployments/{id} [get]
//
// Get a deployment by ID.
func (h *Handler) get(c *fiber.Ctx) error {
	id, err := getDeploymentID(c)
	if err != nil {
		return err
	}

	deployment, err := h.deploymentsSvc.Get(c.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get deployment: %w", err)
	}

	response := newDeploymentResponse(deployment)
	return c.JSON(response)
}

//	@Summary		Cancel a deployment
//	@Description	Cancel an in-flight deployment. Terminal deployments cannot be cancelled; providers without a cancellation endpoint return 422 and the deployment keeps running.
//	@Tags			deployments
//	@Produce		json
//	@Param			id	path		string	true	"Deployment ID"
//	@Success		200	{object}	DeploymentResponse
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Failure		409	{object}	fiberfx.ErrorResponse
//	@Failure		422	{object}	fiberfx.ErrorResponse
//	@Router			/deployments/{id} [delete]
//
// Cancel a deployment.
func (h *Handler) cancel(c *fiber.Ctx) error {
	id, err := getDeploymentID(c)
	if err != nil {
		return err
	}

	deployment, err := h.deploymentsSvc.Cancel(c.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to cancel deployment: %w", err)
	}

	response := newDeploymentResponse(deployment)
	return c.JSON(response)
}

//	@Summary		Roll back to a deployment
//	@Description	Reproduce a previously successful deployment's configuration as a brand-new deployment. The original record is not modified.
//	@Tags			deployments
//	@Produce		json
//	@Param			id	path		string	true	"Deployment ID"
//	@Success		201	{object}	DeploymentResponse
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Failure		409	{object}	fiberfx.ErrorResponse
//	@Router			/deployments/{id}/rollback [post]
//
// Roll back to a successful deployment.
func (h *Handler) rollback(c *fiber.Ctx) error {
	id, err := getDeploymentID(c)
	if err != nil {
		return err
	}

	deployment, err := h.deploymentsSvc.Rollback(c.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to roll back deployment: %w", err)
	}

	response := newDeploymentResponse(deployment)
	return c.Status(fiber.StatusCreated).JSON(response)
}

//	@Summary		Refresh a deployment's status
//	@Description	Ask the provider for the deployment's current status immediately instead of waiting for the next polling cycle
//	@Tags			deployments
//	@Produce		json
//	@Param			id	path		string	true	"Deployment ID"
//	@Success		200	{object}	DeploymentResponse
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/deployments/{id}/refresh [post]
//
// Refresh a deployment's status on demand.
func (h *Handler) refresh(c *fiber.Ctx) error {
	id, err := getDeploymentID(c)
	if err != nil {
		return err
	}

	deployment, err := h.deploymentsSvc.Refresh(c.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to refresh deployment: %w", err)
	}

	response := newDeploymentResponse(deployment)
	return c.JSON(response)
}

//	@Summary		Get build logs
//	@Tags			deployments
//	@Produce		json
//	@Param			id	path		string	true	"Deployment ID"
//	@Success		200	{object}	LogsResponse
//	@Failure		404	{object}	fiberfx.ErrorResponse
//	@Router			/deployments/{id}/logs [get]
//
// Get a deployment's build logs.
func (h *Handler) logs(c *fiber.Ctx) error {
	id, err := getDeploymentID(c)
	if err != nil {
		return err
	}

	deployment, err := h.deploymentsSvc.Get(c.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get deployment: %w", err)
	}

	return c.JSON(LogsResponse{ID: deployment.ID, Logs: deployment.BuildLogs})
}

//	@Summary		Append build logs
//	@Tags			deployments
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Deployment ID"
//	@Param			logs	body		AppendLogsRequest	true	"Log text to append"
//	@Success		200		{object}	LogsResponse
//	@Failure		404		{object}	fiberfx.ErrorResponse
//	@Router			/deployments/{id}/logs [patch]
//
// Append to a deployment's build logs.
func (h *Handler) appendLogs(c *fiber.Ctx, req *AppendLogsRequest) error {
	id, err := getDeploymentID(c)
	if err != nil {
		return err
	}

	deployment, err := h.deploymentsSvc.AppendLogs(c.Context(), id, req.Logs)
	if err != nil {
		return fmt.Errorf("failed to append deployment logs: %w", err)
	}

	return c.JSON(LogsResponse{ID: deployment.ID, Logs: deployment.BuildLogs})
}

//	@Summary		Get deployment statistics
//	@Description	Aggregate deployment counts for a project or a user
//	@Tags			deployments
//	@Produce		json
//	@Param			project_id	query		string	false	"Project ID"
//	@Param			user_id		query		string	false	"User ID"
//	@Success		200			{object}	StatsResponse
//	@Failure		400			{object}	fiberfx.ErrorResponse
//	@Router			/deployments/stats [get]
//
// Get deployment statistics.
func (h *Handler) stats(c *fiber.Ctx) error {
	var (
		stats *deployments.Stats
		err   error
	)

	switch {
	case c.Query("project_id") != "":
		projectID, parseErr := uuid.Parse(c.Query("project_id"))
		if parseErr != nil {
			return fiber.NewError(fiber.StatusBadRequest, parseErr.Error())
		}

		stats, err = h.deploymentsSvc.Stats(c.Context(), projectID)
	case c.Query("user_id") != "":
		stats, err = h.deploymentsSvc.StatsByUser(c.Context(), c.Query("user_id"))
	default:
		return fiber.NewError(fiber.StatusBadRequest, "project_id or user_id query parameter is required")
	}

	if err != nil {
		return fmt.Errorf("failed to get deployment stats: %w", err)
	}

	return c.JSON(newStatsResponse(stats))
}

//	@Summary		Clean up old deployments
//	@Description	Delete a project's terminal deployments older than the given duration, keeping the most recent successful ones
//	@Tags			deployments
//	@Accept			json
//	@Produce		json
//	@Param			cleanup	body		CleanupRequest	true	"Cleanup request"
//	@Success		200		{object}	CleanupResponse
//	@Failure		400		{object}	fiberfx.ErrorResponse
//	@Router			/deployments/cleanup [post]
//
// Delete old deployment records.
func (h *Handler) cleanup(c *fiber.Ctx, req *CleanupRequest) error {
	olderThan, err := time.ParseDuration(req.OlderThan)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	deleted, err := h.deploymentsSvc.Cleanup(c.Context(), req.ProjectID, time.Now().Add(-olderThan), req.KeepSuccessful)
	if err != nil {
		return fmt.Errorf("failed to clean up deployments: %w", err)
	}

	return c.JSON(CleanupResponse{Deleted: deleted})
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, deployments.ErrNotFound), errors.Is(err, projects.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, deployments.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, deployments.ErrInvalidState):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, deployments.ErrCancelUnsupported):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
