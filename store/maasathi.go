package store

import (
	"sync"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"

	"github.com/Muhammad-Raisul-Maharub/maasathi-health/schema"
)

// maasathi main on-device datastore
type MaaSathiCore interface {
	Ping() error
	Migrate() error

	// Assessment
	CreateAssessment(*schema.Assessment) error
	GetAssessment(id string) (*schema.Assessment, error)
	ListAssessments() ([]schema.Assessment, error)
	ListUnsynced() ([]schema.Assessment, error)
	CountUnsynced() (int, error)
	MarkSynced(ids []string) error

	// Reactive queries
	Subscribe(buffer int) *Subscription
	Unsubscribe(*Subscription)
}

// MaaSathiStore is an implementation of MaaSathiCore backed by a sqlite file
// on the device, so records survive restarts and stay readable with no
// network.
type MaaSathiStore struct {
	ormDB *gorm.DB

	mu          sync.Mutex
	subscribers map[*Subscription]struct{}
}

func NewMaaSathiStore(ormDB *gorm.DB) *MaaSathiStore {
	return &MaaSathiStore{
		ormDB:       ormDB,
		subscribers: map[*Subscription]struct{}{},
	}
}

// Ping is to check the storage health status
func (s *MaaSathiStore) Ping() error {
	return s.ormDB.DB().Ping()
}

// Migrate creates or upgrades the assessments table.
func (s *MaaSathiStore) Migrate() error {
	return s.ormDB.AutoMigrate(&schema.Assessment{}).Error
}
