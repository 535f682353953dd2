package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mech-ai/internal/httperr"
	ucsr "github.com/BruksfildServices01/mech-ai/internal/usecase/servicerecord"
)

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

// respond maps not-found business errors to 404 and everything else by kind.
func respond(c *gin.Context, err error) {
	if ucsr.IsNotFound(err) {
		be, _ := httperr.AsBusiness(err)
		httperr.NotFound(c, be.Code, be.Message)
		return
	}
	httperr.Respond(c, err)
}
