// controller/workspace_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	sail_errors "github.com/sapictureday/sail/errors"
	"github.com/sapictureday/sail/model"
	"github.com/sapictureday/sail/service"
	"github.com/sapictureday/sail/util"
	helper_util "github.com/sapictureday/sail/util/helper"
)

type WorkspaceController struct {
	workspaceService service.IWorkspaceService
}

func NewWorkspaceController(workspaceService service.IWorkspaceService) *WorkspaceController {
	return &WorkspaceController{
		workspaceService: workspaceService,
	}
}

// RegisterRoutes registers the API routes
func (wc *WorkspaceController) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", wc.CreateWorkspace)
	r.PUT("/:id", wc.UpdateWorkspace)
	r.DELETE("/:id", wc.DeleteWorkspace)
	r.GET("/:id", wc.GetWorkspace)
	r.GET("", wc.ListWorkspaces)
}

// CreateWorkspace endpoint
func (wc *WorkspaceController) CreateWorkspace(c *gin.Context) {
	var workspace model.Workspace
	if err := c.ShouldBindJSON(&workspace); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid workspace data", sail_errors.ErrInvalidWorkspaceData)
		return
	}
	creatorID, ok := util.GetUserIDFromContext(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", sail_errors.ErrUnauthorized)
		return
	}

	created, err := wc.workspaceService.CreateWorkspace(c, workspace, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, sail_errors.ErrWorkspaceConflict):
			util.RespondWithError(c, http.StatusConflict, "Workspace already exists", err)
		case errors.Is(err, sail_errors.ErrDatabaseOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusBadRequest, "Failed to create workspace", err)
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateWorkspace endpoint
func (wc *WorkspaceController) UpdateWorkspace(c *gin.Context) {
	workspaceID := c.Param("id")
	var workspace model.Workspace
	if err := c.ShouldBindJSON(&workspace); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid workspace data", err)
		return
	}
	workspace.ID = workspaceID
	updaterID, ok := util.GetUserIDFromContext(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", sail_errors.ErrUnauthorized)
		return
	}

	updated, err := wc.workspaceService.UpdateWorkspace(c, workspace, updaterID)
	if err != nil {
		if errors.Is(err, sail_errors.ErrWorkspaceNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Workspace not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update workspace", err)
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteWorkspace endpoint
func (wc *WorkspaceController) DeleteWorkspace(c *gin.Context) {
	workspaceID := c.Param("id")
	deleterID, ok := util.GetUserIDFromContext(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", sail_errors.ErrUnauthorized)
		return
	}

	if err := wc.workspaceService.DeleteWorkspace(c, workspaceID, deleterID); err != nil {
		if errors.Is(err, sail_errors.ErrWorkspaceNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Workspace not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete workspace", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetWorkspace endpoint
func (wc *WorkspaceController) GetWorkspace(c *gin.Context) {
	workspaceID := c.Param("id")

	workspace, err := wc.workspaceService.GetWorkspace(c, workspaceID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to get workspace", err)
		return
	}
	if workspace == nil {
		util.RespondWithError(c, http.StatusNotFound, "Workspace not found", sail_errors.ErrWorkspaceNotFound)
		return
	}

	c.JSON(http.StatusOK, workspace)
}

// ListWorkspaces endpoint
func (wc *WorkspaceController) ListWorkspaces(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", sail_errors.ErrInvalidPagination)
		return
	}

	workspaces, err := wc.workspaceService.ListWorkspaces(c, limit, offset)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list workspaces", err)
		return
	}

	c.JSON(http.StatusOK, workspaces)
}
