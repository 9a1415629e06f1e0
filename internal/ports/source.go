package ports

import (
	"context"

	"github.com/JakobGM/quelf/internal/domain"
)

// SessionSource is an authenticated handle on the remote sleep service.
// Authentication (the credential exchange and session cookie) is entirely
// the implementation's concern; callers only issue queries.
type SessionSource interface {
	// Bounds fetches the oldest and newest session ids known to the
	// service right now. Bounds are fetched fresh each run, never cached.
	// An empty remote history yields empty bounds and no error.
	Bounds(ctx context.Context) (domain.WalkBounds, error)

	// FetchSession retrieves one session: the exact id, or the session
	// adjacent to it. A Next/Previous query that has no further session
	// fails with application.ErrNoAdjacentSession; transport failures
	// surface as application.ErrRemoteUnavailable after bounded retries.
	FetchSession(ctx context.Context, id int, dir domain.Direction) (domain.Session, error)
}

// ExportSource can download the account's full data export.
type ExportSource interface {
	// DownloadExport streams the export archive to zipPath.
	DownloadExport(ctx context.Context, zipPath string) error

	// UnzipExport extracts a downloaded archive into destDir and returns
	// the path of the contained records file.
	UnzipExport(zipPath, destDir string) (string, error)

	// ReadExport parses an extracted records file. Rows without a usable
	// session id are skipped rather than failing the whole file.
	ReadExport(jsonPath string) ([]domain.Session, error)
}
