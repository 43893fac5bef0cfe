package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Unauthorized sends 401 response.
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Resp{
		ErrorCode: 401,
		Message:   "Unauthorized",
	})
}

// Result sends a successful mini app reply.
func Result(c *gin.Context, result any) {
	c.JSON(http.StatusOK, APIResp{OK: true, Result: result})
}

// Fail aborts with a failed mini app reply.
func Fail(c *gin.Context, status int, description string) {
	c.AbortWithStatusJSON(status, APIResp{OK: false, Description: description})
}
