package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rbfix/pkg/fsutil"
)

func writeFile(t *testing.T, content string, mode os.FileMode) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "app.rb")
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	require.NoError(t, os.Chmod(path, mode))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "puts 1\n", 0o600)

	content, info, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "puts 1\n", string(content))
	assert.Equal(t, path, info.Path)
	assert.Equal(t, os.FileMode(0o600), info.Mode.Perm())
	assert.Equal(t, int64(7), info.Size)
	assert.Equal(t, xxhash.Sum64String("puts 1\n"), info.Hash)
}

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(dir, "missing.rb"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = fsutil.ReadFile(context.Background(), dir)
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = fsutil.ReadFile(ctx, filepath.Join(dir, "missing.rb"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(t *testing.T, path string, info *fsutil.FileInfo)
		deep   bool
		want   bool
	}{
		{
			name:   "untouched",
			mutate: func(*testing.T, string, *fsutil.FileInfo) {},
			deep:   true,
		},
		{
			name: "size changed",
			mutate: func(t *testing.T, path string, _ *fsutil.FileInfo) {
				require.NoError(t, os.WriteFile(path, []byte("puts 12\n"), 0o644))
			},
			want: true,
		},
		{
			name: "deleted",
			mutate: func(t *testing.T, path string, _ *fsutil.FileInfo) {
				require.NoError(t, os.Remove(path))
			},
			want: true,
		},
		{
			name: "same stat different content with deep check",
			mutate: func(t *testing.T, path string, info *fsutil.FileInfo) {
				require.NoError(t, os.WriteFile(path, []byte("puts 2\n"), 0o644))
				require.NoError(t, os.Chtimes(path, time.Now(), info.ModTime))
			},
			deep: true,
			want: true,
		},
		{
			name: "same stat different content with quick check",
			mutate: func(t *testing.T, path string, info *fsutil.FileInfo) {
				require.NoError(t, os.WriteFile(path, []byte("puts 2\n"), 0o644))
				require.NoError(t, os.Chtimes(path, time.Now(), info.ModTime))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, "puts 1\n", 0o644)
			_, info, err := fsutil.ReadFile(context.Background(), path)
			require.NoError(t, err)

			tt.mutate(t, path, info)

			got, err := fsutil.CheckModified(context.Background(), info, tt.deep)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckModified_NilInfo(t *testing.T) {
	t.Parallel()

	_, err := fsutil.CheckModified(context.Background(), nil, true)
	assert.ErrorIs(t, err, fsutil.ErrNilFileInfo)
}
