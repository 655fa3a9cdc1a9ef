package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadstack/qcatalog-backend/internal/response"
	"github.com/acadstack/qcatalog-backend/internal/store"
)

// respondError maps store and storage errors to the API error taxonomy:
// missing path segment → 404, invalid field → 400, anything else is a
// persistence failure → 500.
func respondError(c *gin.Context, err error) {
	var nf *store.NotFoundError
	if errors.As(err, &nf) {
		response.FailMessage(c, http.StatusNotFound, response.ErrNotFound, nf.Error())
		return
	}

	var ve *store.ValidationError
	if errors.As(err, &ve) {
		response.FailMessage(c, http.StatusBadRequest, response.ErrValidation, ve.Error())
		return
	}

	response.Fail(c, http.StatusInternalServerError, response.ErrStorage)
}
