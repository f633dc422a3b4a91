package file

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/studyaid/core/internal/models"
	"gorm.io/gorm"
)

// SQLStore reads file records through GORM (MySQL, PostgreSQL or SQLite).
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// FindByID returns the file with the given id, or (nil, nil) when none exists.
func (s *SQLStore) FindByID(ctx context.Context, id string) (*models.FileModel, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}

	var file models.FileModel
	if err := s.db.WithContext(ctx).First(&file, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find file %q: %w", id, err)
	}
	return &file, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
