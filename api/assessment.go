package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"

	"github.com/Muhammad-Raisul-Maharub/maasathi-health/schema"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/score"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/store"
)

// createAssessment scores the reported symptoms and persists the result as a
// new unsynced row. Works fully offline; the id is generated here so a later
// sync retry cannot duplicate the record remotely.
func (s *Server) createAssessment(c *gin.Context) {
	var params struct {
		Symptoms []schema.SymptomType `json:"symptoms"`
		Notes    string               `json:"notes"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	result := score.CalculateRisk(schema.DefaultRuleSet, params.Symptoms)

	a := schema.Assessment{
		ID:          uuid.New().String(),
		Timestamp:   time.Now().UnixMilli(),
		Symptoms:    schema.SymptomIDs(result.SelectedSymptoms),
		Notes:       params.Notes,
		RiskScore:   result.Score,
		RiskLevel:   result.Level,
		RuleVersion: result.RuleVersion,
		IsSynced:    false,
	}

	if err := s.store.CreateAssessment(&a); err != nil {
		if err == store.ErrDuplicateAssessment {
			abortWithEncoding(c, http.StatusConflict, errorDuplicateAssessment)
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assessment":  a,
		"explanation": result.Explanation,
	})
}

func (s *Server) listAssessments(c *gin.Context) {
	assessments, err := s.store.ListAssessments()
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessments": assessments})
}

func (s *Server) getAssessment(c *gin.Context) {
	a, err := s.store.GetAssessment(c.Param("assessmentID"))
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			abortWithEncoding(c, http.StatusNotFound, errorAssessmentNotFound)
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessment": a})
}

// assessmentStats backs the dashboard counters.
func (s *Server) assessmentStats(c *gin.Context) {
	assessments, err := s.store.ListAssessments()
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	unsynced, err := s.store.CountUnsynced()
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":    len(assessments),
		"unsynced": unsynced,
	})
}
