// Package database provides the local data access layer.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── copywriting.go   # Local content store (STORE_BACKEND=sqlite)
//	├── audit/           # Audit event log
//	└── runs/            # Import run history
//
// The Database type implements the same content store contract as the
// hosted Supabase client, so the importer and the moderation API run
// against either backend:
//
//	db, err := database.NewDatabase("./copywriting.db")
//	rows, err := db.Insert(ctx, entities.CopywritingTable, inputs)
//
// Audit events and import runs always live here, whichever backend holds
// the records themselves:
//
//	auditRepo := audit.NewRepository(db.DB)
//	runsRepo := runs.NewRepository(db.DB)
package database
