// Package db provides the embedded database schema.
package db

import _ "embed"

// Schema contains the DDL statements for all application tables.
//
//go:embed migrations/001_initial_schema.sql
var Schema string
