package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode selects where backups go.
type BackupMode string

const (
	// BackupModeSidecar writes "<file>.rbfix.bak" next to the file.
	BackupModeSidecar BackupMode = "sidecar"
	BackupModeNone    BackupMode = "none"
)

// BackupSuffix is appended to a file name to form its sidecar backup.
const BackupSuffix = ".rbfix.bak"

// BackupConfig controls backups taken before a fixed file is written.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig has backups off in sidecar mode.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// BackupPath returns where the backup of path is stored, or "" when mode
// disables backups. Unknown modes use the sidecar location.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup stores content as the backup of info.Path with the file's
// mode. An existing backup is kept, so repeated runs never replace the
// oldest copy. It reports whether a backup was written.
func CreateBackup(ctx context.Context, info *FileInfo, content []byte, cfg BackupConfig) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	backupPath := BackupPath(info.Path, cfg.Mode)
	if !cfg.Enabled || backupPath == "" {
		return false, nil
	}

	_, err := os.Lstat(backupPath)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, info.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}
