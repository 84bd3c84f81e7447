package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-commerce-api/internal/application"
	"github.com/oksasatya/go-commerce-api/pkg/response"
)

// respondErr maps a service error onto the response envelope. Domain faults
// keep their message and the given status; everything else is an
// infrastructure failure: full detail goes to the log, a generic message to
// the client.
func respondErr(c *gin.Context, logger *logrus.Logger, err error, faultStatus int) {
	if f, ok := application.AsFault(err); ok {
		response.Fail(c, faultStatus, f.Error(), nil)
		return
	}
	if logger != nil {
		logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	response.Fail(c, http.StatusInternalServerError, "something went wrong, please try again later", nil)
}
