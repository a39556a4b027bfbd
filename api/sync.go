package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Muhammad-Raisul-Maharub/maasathi-health/syncer"
)

// triggerSync runs one sync pass. The engine serializes runs itself, so a
// double tap on the sync button surfaces as 409 rather than a duplicate
// submission race.
func (s *Server) triggerSync(c *gin.Context) {
	count, err := s.syncEngine.SyncData(c.Request.Context())
	if err != nil {
		switch err {
		case syncer.ErrNoConnection:
			abortWithEncoding(c, http.StatusServiceUnavailable, errorNoConnection)
		case syncer.ErrNotAuthenticated:
			abortWithEncoding(c, http.StatusUnauthorized, errorNotAuthenticated)
		case syncer.ErrSyncInProgress:
			abortWithEncoding(c, http.StatusConflict, errorSyncInProgress)
		default:
			abortWithEncoding(c, http.StatusBadGateway, errorSyncFailed, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"synced": count})
}
