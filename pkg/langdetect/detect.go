// Package langdetect identifies Ruby source files.
// Known Ruby extensions are matched directly; other files fall back to
// go-enry's filename and shebang detection, so Gemfile, Rakefile, and
// scripts starting with "#!/usr/bin/env ruby" are recognized.
package langdetect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Ruby is the linguist name of the Ruby language.
const Ruby = "Ruby"

// headSize is how much of a file is read for shebang detection.
const headSize = 512

// RubyExtensions returns the file extensions (lowercase, with leading dot)
// that are always treated as Ruby.
func RubyExtensions() []string {
	return []string{".rb", ".rake", ".gemspec", ".ru"}
}

// Language returns the linguist language of a file from its name and the
// first bytes of its content, or "" when no strategy is confident.
func Language(path string, head []byte) string {
	if lang, safe := enry.GetLanguageByFilename(path); safe {
		return lang
	}
	if lang, safe := enry.GetLanguageByExtension(path); safe {
		return lang
	}
	if lang, safe := enry.GetLanguageByShebang(head); safe {
		return lang
	}
	return ""
}

// HasRubyExtension reports whether path ends in one of extensions,
// ignoring case.
func HasRubyExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

// IsRuby reports whether a file with the given name and leading content is
// Ruby.
func IsRuby(path string, head []byte) bool {
	if HasRubyExtension(path, RubyExtensions()) {
		return true
	}
	return Language(path, head) == Ruby
}

// IsRubyFile reports whether the file at path is Ruby, reading its first
// bytes only when the name alone is not conclusive.
func IsRubyFile(path string) (bool, error) {
	if HasRubyExtension(path, RubyExtensions()) {
		return true, nil
	}
	if lang, safe := enry.GetLanguageByFilename(path); safe {
		return lang == Ruby, nil
	}
	if filepath.Ext(path) != "" {
		lang, safe := enry.GetLanguageByExtension(path)
		if safe {
			return lang == Ruby, nil
		}
	}

	head, err := readHead(path)
	if err != nil {
		return false, err
	}
	lang, _ := enry.GetLanguageByShebang(head)
	return lang == Ruby, nil
}

// IsVendored reports whether a slash-separated relative path lies in a
// vendored or dependency directory such as vendor/ or node_modules/.
func IsVendored(relPath string) bool {
	return enry.IsVendor(filepath.ToSlash(relPath))
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, headSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return buf[:n], nil
}
