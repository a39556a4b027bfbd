package api

import (
	"io"

	"github.com/gin-gonic/gin"
)

// events streams store changes over SSE so the shell refreshes its lists and
// counters without polling. Each event only says what changed; the client
// re-queries through the list endpoints.
func (s *Server) events(c *gin.Context) {
	sub := s.store.Subscribe(16)
	defer s.store.Unsubscribe(sub)

	network := s.network.Subscribe()
	defer s.network.Unsubscribe(network)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")

	c.Stream(func(w io.Writer) bool {
		select {
		case change, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent("change", change)
			return true
		case online, ok := <-network.C:
			if !ok {
				return false
			}
			c.SSEvent("connectivity", gin.H{"online": online})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
