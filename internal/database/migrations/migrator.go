package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/vladimiradmaev/health-tracker/internal/logger"
)

// Files holds the SQL migrations shipped with the binary.
//
//go:embed *.sql
var Files embed.FS

// Migration represents a database migration
type Migration struct {
	ID   string
	Up   func(*gorm.DB) error
	Down func(*gorm.DB) error
}

var (
	mu         sync.Mutex
	migrations = make(map[string]Migration)
)

// Register adds a new migration to the registry. Registering an id twice
// replaces the earlier migration.
func Register(id string, up, down func(*gorm.DB) error) {
	mu.Lock()
	defer mu.Unlock()
	migrations[id] = Migration{
		ID:   id,
		Up:   up,
		Down: down,
	}
}

// Pending returns the registered migration ids not in executed, sorted.
func Pending(executed []MigrationRecord) []string {
	mu.Lock()
	defer mu.Unlock()

	done := make(map[string]bool, len(executed))
	for _, m := range executed {
		done[m.ID] = true
	}

	var ids []string
	for id := range migrations {
		if !done[id] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// RunMigrations executes all pending migrations, each in its own transaction
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var executed []MigrationRecord
	if err := db.Find(&executed).Error; err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	for _, id := range Pending(executed) {
		mu.Lock()
		migration := migrations[id]
		mu.Unlock()

		logger.Info("Running migration", "id", id)
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return err
			}
			return tx.Create(&MigrationRecord{ID: id}).Error
		})
		if err != nil {
			return fmt.Errorf("failed to run migration %s: %w", id, err)
		}
		logger.Info("Completed migration", "id", id)
	}

	return nil
}

// MigrationRecord represents a record of executed migrations
type MigrationRecord struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"autoCreateTime"`
}

// LoadSQLMigrations registers every .sql file in dir of fsys. The file name
// without extension is the migration id.
func LoadSQLMigrations(fsys fs.FS, dir string) error {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}
		id := strings.TrimSuffix(file.Name(), ".sql")

		content, err := fs.ReadFile(fsys, path.Join(dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file.Name(), err)
		}

		sql := string(content)
		Register(id, func(db *gorm.DB) error {
			return db.Exec(sql).Error
		}, nil) // No down migration for SQL files
	}

	return nil
}
