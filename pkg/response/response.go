package response

import "github.com/gin-gonic/gin"

// The API speaks flat JSON bodies: plain objects on success and
// {"error": message} on failure. Helpers here keep handlers to one line
// per outcome.

func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Message writes {"message": message}.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// Error writes {"error": message}.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// AbortError is Error for middleware; it stops the handler chain.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
