package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadstack/qcatalog-backend/internal/model"
	"github.com/acadstack/qcatalog-backend/internal/response"
	"github.com/acadstack/qcatalog-backend/internal/service"
	"github.com/acadstack/qcatalog-backend/internal/validator"
)

type SubjectHandler struct {
	catalog *service.CatalogService
}

func NewSubjectHandler(catalog *service.CatalogService) *SubjectHandler {
	return &SubjectHandler{catalog: catalog}
}

func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.catalog.ListSubjects(c.Request.Context(), c.Param("branchId"), c.Param("semesterId"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, subjects)
}

func (h *SubjectHandler) Get(c *gin.Context) {
	subject, err := h.catalog.GetSubject(
		c.Request.Context(),
		c.Param("branchId"), c.Param("semesterId"), c.Param("subjectId"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, subject)
}

func (h *SubjectHandler) Create(c *gin.Context) {
	var req model.CreateSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subject, err := h.catalog.CreateSubject(
		c.Request.Context(),
		c.Param("branchId"), c.Param("semesterId"),
		req.Name, req.Code,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, subject)
}

func (h *SubjectHandler) Delete(c *gin.Context) {
	err := h.catalog.DeleteSubject(
		c.Request.Context(),
		c.Param("branchId"), c.Param("semesterId"), c.Param("subjectId"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
