package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HarshwardhanZalte/AIDRA/pipeline"
	"github.com/HarshwardhanZalte/AIDRA/sessions"
)

// GetSession handles GET /api/aidra/session/:id.
func GetSession(c *gin.Context, store sessions.Store) {
	record, err := store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"kind": pipeline.KindNotFound, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, record)
}
