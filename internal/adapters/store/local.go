// Package store implements the case-management document store on top
// of a locally synced folder tree plus an Excel tracking workbook. The
// tree follows the firm's convention:
//
//	{cases root}/{client}/{matter} - {style}/09 Orders/...
//
// Folder paths exposed to the rest of the pipeline use the logical
// prefix (for example /Cases) so the resolver output matches what the
// tracking records show, independent of where the sync client mounts
// the tree on this machine.
package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/core"
	"github.com/double232/autorouter/internal/utils"
)

// LocalStore is a core.DocumentStore backed by the synced folder tree.
type LocalStore struct {
	casesRoot  string
	pathPrefix string
	tracker    *Tracker
	text       *utils.TextProcessor
	logger     *zap.Logger
}

// NewLocalStore creates a store rooted at casesRoot. pathPrefix is the
// logical prefix under which folders are reported, typically "/Cases".
func NewLocalStore(casesRoot, pathPrefix string, tracker *Tracker, text *utils.TextProcessor, logger *zap.Logger) *LocalStore {
	return &LocalStore{
		casesRoot:  casesRoot,
		pathPrefix: strings.TrimRight(pathPrefix, "/"),
		tracker:    tracker,
		text:       text,
		logger:     logger,
	}
}

// ListFolders scans the two-level client/matter tree and returns one
// descriptor per matter folder.
func (s *LocalStore) ListFolders(ctx context.Context) ([]*core.CaseFolder, error) {
	clients, err := os.ReadDir(s.casesRoot)
	if err != nil {
		return nil, fmt.Errorf("read cases root %s: %w", s.casesRoot, err)
	}

	var folders []*core.CaseFolder
	for _, client := range clients {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !client.IsDir() {
			continue
		}

		matters, err := os.ReadDir(filepath.Join(s.casesRoot, client.Name()))
		if err != nil {
			s.logger.Warn("skipping unreadable client folder",
				zap.String("client", client.Name()), zap.Error(err))
			continue
		}

		for _, matter := range matters {
			if !matter.IsDir() {
				continue
			}
			folder := &core.CaseFolder{
				Path:   s.pathPrefix + "/" + client.Name() + "/" + matter.Name(),
				Client: client.Name(),
			}
			// Matter folders are named "{matter} - {style}"; folders
			// that do not follow the convention still resolve by
			// client plus the raw name.
			if name, style, ok := strings.Cut(matter.Name(), " - "); ok {
				folder.Matter = strings.TrimSpace(name)
				folder.Style = strings.TrimSpace(style)
			} else {
				folder.Matter = matter.Name()
			}
			if info, err := matter.Info(); err == nil {
				folder.ModifiedAt = info.ModTime()
			}
			folders = append(folders, folder)
		}
	}

	s.logger.Info("loaded case folders", zap.Int("count", len(folders)))
	return folders, nil
}

// WriteFile writes content into the folder, creating missing
// directories. A byte-identical existing file is left alone and its
// path returned; differing content is overwritten.
func (s *LocalStore) WriteFile(ctx context.Context, folderPath, filename string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir, err := s.resolvePath(folderPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create folder %s: %w", dir, err)
	}

	target := filepath.Join(dir, s.text.SanitizeFilename(filename))

	if existing, err := os.ReadFile(target); err == nil {
		if bytes.Equal(existing, content) {
			s.logger.Debug("identical file already present, skipping write",
				zap.String("path", target))
			return s.logicalPath(folderPath, target), nil
		}
		s.logger.Info("overwriting differing file", zap.String("path", target))
	}

	if err := os.WriteFile(target, content, 0o644); err != nil {
		return "", fmt.Errorf("write file %s: %w", target, err)
	}

	s.logger.Info("filed document",
		zap.String("path", target), zap.Int("bytes", len(content)))
	return s.logicalPath(folderPath, target), nil
}

// CreateTrackingRecord delegates to the workbook tracker.
func (s *LocalStore) CreateTrackingRecord(ctx context.Context, rec *core.TrackingRecord) error {
	return s.tracker.Record(ctx, rec)
}

// resolvePath maps a logical folder path onto the disk tree.
func (s *LocalStore) resolvePath(folderPath string) (string, error) {
	rel := folderPath
	if s.pathPrefix != "" {
		if !strings.HasPrefix(folderPath, s.pathPrefix+"/") {
			return "", fmt.Errorf("folder path %q outside store prefix %q", folderPath, s.pathPrefix)
		}
		rel = strings.TrimPrefix(folderPath, s.pathPrefix+"/")
	}
	rel = strings.TrimPrefix(rel, "/")
	return filepath.Join(s.casesRoot, filepath.FromSlash(rel)), nil
}

// logicalPath reports the filed path in logical form so tracking
// records stay portable across machines.
func (s *LocalStore) logicalPath(folderPath, target string) string {
	return folderPath + "/" + filepath.Base(target)
}
