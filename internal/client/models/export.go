package models

import "time"

// Archive states of a saved export.
const (
	ArchiveNone     = "none"
	ArchivePending  = "pending"
	ArchiveComplete = "archived"
)

// Export is one event book saved on this machine.
type Export struct {
	ID            int64
	EventID       string
	EventTitle    string
	Format        string
	Path          string
	Size          int64
	ContentType   string
	ArchiveStatus string
	ArchiveKey    string
	ArchiveURL    string
	CreatedAt     time.Time
}
