// Package database owns the reading store: the sqlite file, its tables and
// the error taxonomy every repository reports through.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Handle, Initialize, stats, bulk wipe
//	├── errors.go        # ErrNotInitialized, ErrStorageUnavailable, ErrDuplicateName, ErrNotFound
//	├── documents/       # Document import, listing, progress, search
//	├── collections/     # Collections and document membership
//	├── highlights/      # Highlight creation, review updates, search
//	├── tags/            # Tags and document tagging
//	└── sessions/        # Reading session telemetry
//
// # Lifecycle
//
// The handle is created once and passed by reference:
//
//	db := database.New("./reader.db")
//	if err := db.Initialize(ctx); err != nil {
//		// errors.Is(err, database.ErrStorageUnavailable)
//	}
//	docs := documents.NewRepository(db)
//	id, err := docs.AddDocument(ctx, &entities.Document{...})
//
// Initialize is idempotent. Any repository call made before it fails with
// ErrNotInitialized.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct holding the *database.Database handle
//  3. Add NewRepository(db *database.Database) constructor
//  4. Obtain the connection per call with db.Conn(ctx)
//  5. Add a compile-time interface check in internal/interfaces
package database
