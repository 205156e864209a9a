package handler

import (
	"net/http"

	"ezakat/internal/middleware"
	"ezakat/internal/service"
	"ezakat/pkg/pagination"
	"ezakat/pkg/response"

	"github.com/gin-gonic/gin"
)

type BranchHandler struct {
	branchService service.BranchService
}

func NewBranchHandler(branchService service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

func (h *BranchHandler) RegisterRoutes(router *gin.RouterGroup) {
	branches := router.Group("/api/branches")
	branches.Use(middleware.RequireRole("admin", "amil", "payer"))
	{
		branches.GET("", h.ListBranches)
		branches.GET("/:id", h.GetBranch)
		branches.POST("", middleware.RequireRole("admin"), h.CreateBranch)
		branches.PUT("/:id", middleware.RequireRole("admin"), h.UpdateBranch)
	}
}

// ListBranches returns collection branches, active ones first
func (h *BranchHandler) ListBranches(c *gin.Context) {
	p := pagination.Parse(c)

	branches, total, err := h.branchService.ListBranches(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope(branches, total, p)))
}

// GetBranch returns a single branch by ID
func (h *BranchHandler) GetBranch(c *gin.Context) {
	branch, err := h.branchService.GetBranch(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, branch))
}

// CreateBranch creates a new collection branch
func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req service.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, branch))
}

// UpdateBranch updates a branch's details or active flag
func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	var req service.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	branch, err := h.branchService.UpdateBranch(c.Request.Context(), c.Param("id"), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, branch))
}
