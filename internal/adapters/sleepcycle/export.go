package sleepcycle

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/JakobGM/quelf/internal/domain"
)

// exportDataFile is the records file inside the export archive.
const exportDataFile = "data_json.txt"

// DownloadExport streams the account's full data export to zipPath. The
// download is written through a temp file so an interrupted transfer
// never leaves a half-written archive behind.
func (c *Client) DownloadExport(ctx context.Context, zipPath string) error {
	if err := c.ensureSession(ctx); err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodGet, c.baseURL+exportPath, nil)
	if err != nil {
		return fmt.Errorf("downloading export: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("export download returned status %d", resp.StatusCode)
	}

	if dir := filepath.Dir(zipPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	if err := atomic.WriteFile(zipPath, resp.Body); err != nil {
		return fmt.Errorf("writing export to %s: %w", zipPath, err)
	}

	c.logger.Info("downloaded export archive", slog.String("path", zipPath))
	return nil
}

// UnzipExport extracts a downloaded archive into destDir and returns the
// path of the records file it contained.
func (c *Client) UnzipExport(zipPath, destDir string) (string, error) {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("opening export archive: %w", err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("creating extraction directory: %w", err)
	}

	var recordsPath string
	for _, f := range reader.File {
		target, err := archiveTarget(destDir, f.Name)
		if err != nil {
			return "", err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return "", fmt.Errorf("extracting %s: %w", f.Name, err)
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return "", fmt.Errorf("extracting %s: %w", f.Name, err)
		}
		if filepath.Base(target) == exportDataFile {
			recordsPath = target
		}
	}

	if recordsPath == "" {
		return "", fmt.Errorf("export archive contains no %s", exportDataFile)
	}
	return recordsPath, nil
}

// ReadExport parses an extracted records file into sessions. The file
// is a JSON array; rows that do not carry a usable session id are
// skipped rather than failing the whole import.
func (c *Client) ReadExport(jsonPath string) ([]domain.Session, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("reading export records: %w", err)
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing export records: %w", err)
	}

	sessions := make([]domain.Session, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		s, err := domain.ParseSession(row)
		if err != nil {
			skipped++
			continue
		}
		sessions = append(sessions, s)
	}
	if skipped > 0 {
		c.logger.Debug("skipped export rows without a session id", slog.Int("count", skipped))
	}
	return sessions, nil
}

// archiveTarget joins an archive entry name onto destDir, refusing
// entries that would escape it.
func archiveTarget(destDir, name string) (string, error) {
	target := filepath.Join(destDir, name)
	if target != filepath.Clean(destDir) &&
		!strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes destination directory", name)
	}
	return target, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
