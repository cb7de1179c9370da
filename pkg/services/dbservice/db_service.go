package dbservice

import (
	"gorm.io/gorm"
)

type DatabaseService struct {
	db *gorm.DB
}

func New(db *gorm.DB) *DatabaseService {
	return &DatabaseService{
		db: db,
	}
}

// Transaction runs fn against a transaction-scoped service. Either every
// write inside fn commits or none does; fn returning an error rolls back.
func (s *DatabaseService) Transaction(fn func(tx *DatabaseService) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&DatabaseService{db: tx})
	})
}
