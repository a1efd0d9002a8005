// Package exports provides the client-side history of downloaded event
// books.
//
// # Overview
//
// Every export written to disk is recorded together with its archive state.
// Exports whose upload to object storage failed stay "pending" and can be
// listed with GetAllPendingArchive and retried; MarkArchived records the
// storage key and link once the upload succeeds.
//
// Typical Usage
//
//	repo := exports.NewSQLiteRepository(db)
//	_ = repo.Create(ctx, &models.Export{EventID: "1", Format: "pdf", ArchiveStatus: models.ArchivePending})
//	pend, _ := repo.GetAllPendingArchive(ctx)
//	_ = repo.MarkArchived(ctx, pend[0].ID, key, url)
package exports
