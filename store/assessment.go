package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/Muhammad-Raisul-Maharub/maasathi-health/schema"
)

var ErrDuplicateAssessment = errors.New("an assessment with this id already exists")

// CreateAssessment persists a freshly scored assessment. The caller generates
// a new uuid per assessment; reusing an id is rejected, never overwritten.
func (s *MaaSathiStore) CreateAssessment(a *schema.Assessment) error {
	if err := s.ormDB.Create(a).Error; err != nil {
		if sqliteErr, ok := err.(sqlite3.Error); ok && sqliteErr.Code == sqlite3.ErrConstraint {
			return ErrDuplicateAssessment
		}
		return err
	}

	s.notify(Change{Type: ChangeCreated, IDs: []string{a.ID}})
	return nil
}

// GetAssessment returns the assessment of a given id
func (s *MaaSathiStore) GetAssessment(id string) (*schema.Assessment, error) {
	var a schema.Assessment
	if err := s.ormDB.Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAssessments returns all assessments ordered by completion time.
func (s *MaaSathiStore) ListAssessments() ([]schema.Assessment, error) {
	assessments := []schema.Assessment{}
	if err := s.ormDB.Order("timestamp asc").Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

// ListUnsynced returns the assessments not yet confirmed by the remote store,
// ordered by completion time.
func (s *MaaSathiStore) ListUnsynced() ([]schema.Assessment, error) {
	assessments := []schema.Assessment{}
	if err := s.ormDB.Where("is_synced = ?", false).Order("timestamp asc").Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

// CountUnsynced counts assessments still waiting for remote confirmation.
func (s *MaaSathiStore) CountUnsynced() (int, error) {
	var count int
	if err := s.ormDB.Model(&schema.Assessment{}).Where("is_synced = ?", false).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MarkSynced flips is_synced for every given id inside one transaction, so a
// remotely confirmed batch is never left half-marked. The flag is monotonic:
// nothing in the store ever sets it back to false.
func (s *MaaSathiStore) MarkSynced(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx := s.ormDB.Begin()
	if err := tx.Error; err != nil {
		return err
	}

	if err := tx.Model(&schema.Assessment{}).Where("id IN (?)", ids).Update("is_synced", true).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.notify(Change{Type: ChangeSynced, IDs: ids})
	return nil
}
