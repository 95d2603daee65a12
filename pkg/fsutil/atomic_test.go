package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rbfix/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing bool
		mode     os.FileMode
		wantMode os.FileMode
	}{
		{name: "new file with default mode", wantMode: fsutil.DefaultFileMode},
		{name: "new file with explicit mode", mode: 0o600, wantMode: 0o600},
		{name: "replace existing", existing: true, mode: 0o755, wantMode: 0o755},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "app.rb")
			if tt.existing {
				require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))
			}

			require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new\n"), tt.mode))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "new\n", string(got))

			stat, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, stat.Mode().Perm())

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "no temp files are left behind")
		})
	}
}

func TestWriteAtomic_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nope", "app.rb")
		require.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "app.rb")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.ErrorIs(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0), context.Canceled)
		assert.NoFileExists(t, path)
	})
}

func FuzzWriteAtomic(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("def foo\nend\n"))
	f.Add([]byte("\x00\xff\r\n"))

	f.Fuzz(func(t *testing.T, content []byte) {
		path := filepath.Join(t.TempDir(), "fuzz.rb")
		if err := fsutil.WriteAtomic(context.Background(), path, content, 0); err != nil {
			t.Fatalf("WriteAtomic: %v", err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if string(got) != string(content) {
			t.Fatalf("read back %q, want %q", got, content)
		}
	})
}
