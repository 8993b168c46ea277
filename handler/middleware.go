package handler

import (
	U "chartable/util"

	"github.com/gin-gonic/gin"
)

const ScopeReqID = "reqId"

// RequestIDGenerator tags every request with a uuid for log correlation.
func RequestIDGenerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ScopeReqID, U.GetUUID())
		c.Next()
	}
}

func getReqID(c *gin.Context) string {
	value, exists := c.Get(ScopeReqID)
	if !exists {
		return ""
	}
	reqID, _ := value.(string)
	return reqID
}
