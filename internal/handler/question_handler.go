package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadstack/qcatalog-backend/internal/model"
	"github.com/acadstack/qcatalog-backend/internal/response"
	"github.com/acadstack/qcatalog-backend/internal/service"
	"github.com/acadstack/qcatalog-backend/internal/store"
	"github.com/acadstack/qcatalog-backend/internal/validator"
)

type QuestionHandler struct {
	catalog *service.CatalogService
}

func NewQuestionHandler(catalog *service.CatalogService) *QuestionHandler {
	return &QuestionHandler{catalog: catalog}
}

func (h *QuestionHandler) List(c *gin.Context) {
	questions, err := h.catalog.ListQuestions(
		c.Request.Context(),
		c.Param("branchId"), c.Param("semesterId"), c.Param("subjectId"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, questions)
}

func (h *QuestionHandler) Get(c *gin.Context) {
	question, err := h.catalog.GetQuestion(
		c.Request.Context(),
		c.Param("branchId"), c.Param("semesterId"), c.Param("subjectId"), c.Param("questionId"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, question)
}

func (h *QuestionHandler) Create(c *gin.Context) {
	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.catalog.CreateQuestion(
		c.Request.Context(),
		c.Param("branchId"), c.Param("semesterId"), c.Param("subjectId"),
		store.QuestionInput{
			Text:    req.Text,
			Type:    req.Type,
			Year:    req.Year,
			QNumber: req.QNumber,
			Chapter: req.Chapter,
			Marks:   req.Marks,
			Options: req.Options,
		},
	)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, question)
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	err := h.catalog.DeleteQuestion(
		c.Request.Context(),
		c.Param("branchId"), c.Param("semesterId"), c.Param("subjectId"), c.Param("questionId"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
