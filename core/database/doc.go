// Package database handles the MySQL connection used for invoice persistence.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure connections based on the application's configuration: encoded
// credentials, connection/read/write timeouts, pool limits, and a startup ping.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
