package utils

import "github.com/gin-gonic/gin"

// RespondWithError sends a JSON error body and stops the handler chain
func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}
