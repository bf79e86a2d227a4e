package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storecore/commerce/internal/domain/errs"
	"github.com/storecore/commerce/pkg/response"
)

// statusOf maps a domain error kind to the HTTP status the API
// contract promises. Anything without a kind is a server fault.
func statusOf(err error) int {
	switch errs.KindOf(err) {
	case errs.Validation:
		return http.StatusBadRequest
	case errs.NotFound:
		return http.StatusNotFound
	case errs.Conflict:
		return http.StatusConflict
	case errs.Authentication:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	response.Error[any](c, status, msg, nil)
}
