package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadstack/qcatalog-backend/internal/model"
	"github.com/acadstack/qcatalog-backend/internal/response"
	"github.com/acadstack/qcatalog-backend/internal/service"
	"github.com/acadstack/qcatalog-backend/internal/validator"
)

type SemesterHandler struct {
	catalog *service.CatalogService
}

func NewSemesterHandler(catalog *service.CatalogService) *SemesterHandler {
	return &SemesterHandler{catalog: catalog}
}

func (h *SemesterHandler) List(c *gin.Context) {
	semesters, err := h.catalog.ListSemesters(c.Request.Context(), c.Param("branchId"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, semesters)
}

func (h *SemesterHandler) Get(c *gin.Context) {
	semester, err := h.catalog.GetSemester(c.Request.Context(), c.Param("branchId"), c.Param("semesterId"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, semester)
}

func (h *SemesterHandler) Create(c *gin.Context) {
	var req model.CreateSemesterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	semester, err := h.catalog.CreateSemester(c.Request.Context(), c.Param("branchId"), req.Number)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, semester)
}

func (h *SemesterHandler) Delete(c *gin.Context) {
	err := h.catalog.DeleteSemester(c.Request.Context(), c.Param("branchId"), c.Param("semesterId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
