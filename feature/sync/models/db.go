package models

import "gorm.io/gorm"

// Migrate creates or updates the local mirror schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Condominium{},
		&Owner{},
		&Property{},
		&Agent{},
		&Channel{},
		&Reservation{},
		&Block{},
		&Guest{},
		&Fee{},
		&SourceFault{},
		&SinkFault{},
	)
}
