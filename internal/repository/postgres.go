package repository

import (
	"gorm.io/gorm"
)

// Repositories bundles the gorm-backed stores sharing one connection
type Repositories struct {
	db *gorm.DB

	Users          *UserRepository
	Readings       *ReadingRepository
	Medications    *MedicationRepository
	MedicationLogs *MedicationLogRepository
	Settings       *SettingsRepository
}

// New creates every repository over db
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		db:             db,
		Users:          NewUserRepository(db),
		Readings:       NewReadingRepository(db),
		Medications:    NewMedicationRepository(db),
		MedicationLogs: NewMedicationLogRepository(db),
		Settings:       NewSettingsRepository(db),
	}
}

// Close closes the underlying connection pool
func (r *Repositories) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
