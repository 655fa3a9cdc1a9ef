package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadstack/qcatalog-backend/internal/model"
	"github.com/acadstack/qcatalog-backend/internal/response"
	"github.com/acadstack/qcatalog-backend/internal/service"
	"github.com/acadstack/qcatalog-backend/internal/validator"
)

type BranchHandler struct {
	catalog *service.CatalogService
}

func NewBranchHandler(catalog *service.CatalogService) *BranchHandler {
	return &BranchHandler{catalog: catalog}
}

func (h *BranchHandler) List(c *gin.Context) {
	branches := h.catalog.ListBranches(c.Request.Context())
	response.Success(c, http.StatusOK, branches)
}

func (h *BranchHandler) Get(c *gin.Context) {
	branch, err := h.catalog.GetBranch(c.Request.Context(), c.Param("branchId"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, branch)
}

func (h *BranchHandler) Create(c *gin.Context) {
	var req model.CreateBranchRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	branch, err := h.catalog.CreateBranch(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, branch)
}

func (h *BranchHandler) Delete(c *gin.Context) {
	if err := h.catalog.DeleteBranch(c.Request.Context(), c.Param("branchId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
