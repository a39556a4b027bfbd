package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/Muhammad-Raisul-Maharub/maasathi-health/schema"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/utils"
)

// getSymptoms returns the fixed screening questionnaire, with question text
// localized for the requested language. Weights stay server-side data; the
// shell never scores.
func (s *Server) getSymptoms(c *gin.Context) {
	lang := c.Query("lang")
	loc := utils.NewLocalizer(lang)

	symptoms := make([]schema.Symptom, 0, len(schema.Symptoms))
	for _, sy := range schema.Symptoms {
		if question, err := loc.Localize(&i18n.LocalizeConfig{
			MessageID: fmt.Sprintf("symptoms.%s.question", sy.ID),
		}); err == nil {
			sy.Question = question
		}
		symptoms = append(symptoms, sy)
	}

	c.JSON(http.StatusOK, gin.H{"symptoms": symptoms})
}
