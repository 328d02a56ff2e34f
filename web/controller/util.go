package controller

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"bibliophile/database"
	"bibliophile/logger"
	"bibliophile/web/entity"
	"bibliophile/web/service"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// jsonMsg sends a {"message": ...} body with the given status code.
func jsonMsg(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, entity.Msg{Message: msg})
}

// getIntParam parses a numeric path parameter, answering 400 itself when the
// value does not parse. The bool reports whether the caller may proceed.
func getIntParam(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		jsonMsg(c, http.StatusBadRequest, "Invalid or missing '"+name+"' parameter")
		return 0, false
	}
	return value, true
}

// jsonServiceError maps a service-layer error: storage constraint violations
// become 409, anything else a generic 500. Internals never leak to clients.
func jsonServiceError(c *gin.Context, msg string, err error) {
	if database.IsConstraintViolation(err) {
		jsonMsg(c, http.StatusConflict, "Database constraint violation")
		return
	}
	logger.Warningf("%s: %v", msg, err)
	jsonMsg(c, http.StatusInternalServerError, msg)
}

// jsonOutcome maps an ownership-gated mutation outcome. Absent rows and rows
// owned by someone else get the same 403: mutation routes do not reveal
// whether the target exists.
func jsonOutcome(c *gin.Context, outcome service.MutationOutcome, okMsg string, denyMsg string) {
	switch outcome {
	case service.OutcomeOK:
		jsonMsg(c, http.StatusOK, okMsg)
	default:
		jsonMsg(c, http.StatusForbidden, denyMsg)
	}
}
