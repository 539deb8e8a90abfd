package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the generic error payload returned by all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// GetHome godoc
// @Summary Service banner
// @Description Returns a short identification string for the service.
// @Tags home
// @Produce plain
// @Success 200 {string} string "clinic-ledger-app"
// @Router /example/helloworld [get]
func GetHome(c *gin.Context) {
	c.String(http.StatusOK, "clinic-ledger-app")
}
