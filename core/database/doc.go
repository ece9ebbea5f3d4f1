// Package database handles the local mirror database connection.
//
// It provides a wrapper around GORM to properly configure MySQL connections
// based on the application's configuration. The local database holds one
// table per mirrored entity kind plus the two fault ledger tables; the
// schema itself is defined by the models in feature/sync/models and migrated
// at startup.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
