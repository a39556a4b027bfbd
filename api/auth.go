package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// login exchanges credentials at the auth service. Capturing assessments
// never requires a session; only syncing does.
func (s *Server) login(c *gin.Context) {
	var params struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	sess, err := s.sessions.Login(c.Request.Context(), params.Email, params.Password)
	if err != nil {
		abortWithEncoding(c, http.StatusUnauthorized, errorInvalidCredentials, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": sess.UserID,
		"role":    sess.Role,
	})
}

// restoreSession installs a token the shell persisted across restarts.
func (s *Server) restoreSession(c *gin.Context) {
	var params struct {
		AccessToken string `json:"access_token"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	s.sessions.Restore(params.AccessToken)

	sess, err := s.sessions.CurrentSession()
	if err != nil || sess == nil {
		s.sessions.Logout()
		abortWithEncoding(c, http.StatusUnauthorized, errorNotAuthenticated)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": sess.UserID,
		"role":    sess.Role,
	})
}

func (s *Server) logout(c *gin.Context) {
	s.sessions.Logout()
	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}

func (s *Server) me(c *gin.Context) {
	sess, err := s.sessions.CurrentSession()
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	if sess == nil {
		abortWithEncoding(c, http.StatusUnauthorized, errorNotAuthenticated)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": sess.UserID,
		"role":    sess.Role,
	})
}
