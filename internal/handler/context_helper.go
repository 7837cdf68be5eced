package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appErrors "github.com/campusworks/student-records-api/pkg/errors"
	"github.com/campusworks/student-records-api/pkg/response"
)

// pathID parses a UUID path parameter, writing a validation error on failure.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid identifier"))
		return uuid.Nil, false
	}
	return id, true
}

// optionalQuery returns a pointer to the query value when present.
func optionalQuery(c *gin.Context, name string) *string {
	if value, ok := c.GetQuery(name); ok {
		return &value
	}
	return nil
}
