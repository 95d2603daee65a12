package langdetect_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rbfix/pkg/langdetect"
)

func TestIsRuby(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		want    bool
	}{
		{name: "rb extension", path: "lib/foo.rb", want: true},
		{name: "upper case extension", path: "lib/FOO.RB", want: true},
		{name: "rake task", path: "lib/tasks/db.rake", want: true},
		{name: "gemspec", path: "foo.gemspec", want: true},
		{name: "rackup", path: "config.ru", want: true},
		{name: "Gemfile", path: "Gemfile", want: true},
		{name: "Rakefile", path: "Rakefile", want: true},
		{name: "ruby shebang", path: "bin/console", content: "#!/usr/bin/env ruby\nputs 1\n", want: true},
		{name: "bash shebang", path: "bin/setup", content: "#!/bin/bash\necho hi\n", want: false},
		{name: "python source", path: "main.py", want: false},
		{name: "no extension and no shebang", path: "README", content: "hello\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.IsRuby(tt.path, []byte(tt.content)))
		})
	}
}

func TestIsRubyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"extension", write("app.rb", ""), true},
		{"filename", write("Gemfile", "source 'https://rubygems.org'\n"), true},
		{"shebang", write("console", "#!/usr/bin/env ruby\nrequire 'irb'\n"), true},
		{"shell script", write("setup", "#!/bin/sh\nset -e\n"), false},
		{"empty", write("empty", ""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := langdetect.IsRubyFile(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsRubyFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := langdetect.IsRubyFile(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsVendored(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsVendored("vendor/bundle/ruby/foo.rb"))
	assert.True(t, langdetect.IsVendored("node_modules/pkg/index.js"))
	assert.False(t, langdetect.IsVendored("lib/foo.rb"))
}

func TestHasRubyExtension(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.HasRubyExtension("a.rb", []string{".rb"}))
	assert.True(t, langdetect.HasRubyExtension("a.RAKE", []string{".rake"}))
	assert.False(t, langdetect.HasRubyExtension("Gemfile", langdetect.RubyExtensions()))
	assert.False(t, langdetect.HasRubyExtension("a.rbx", langdetect.RubyExtensions()))
}
