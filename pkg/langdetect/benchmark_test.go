package langdetect

import (
	"testing"
)

func BenchmarkIsRubyExtension(b *testing.B) {
	for range b.N {
		IsRuby("app/models/user.rb", nil)
	}
}

func BenchmarkIsRubyShebang(b *testing.B) {
	head := []byte("#!/usr/bin/env ruby\n# frozen_string_literal: true\n")
	b.ResetTimer()
	for range b.N {
		IsRuby("bin/console", head)
	}
}

func BenchmarkIsRubyUnknown(b *testing.B) {
	head := []byte("hello")
	b.ResetTimer()
	for range b.N {
		IsRuby("NOTES", head)
	}
}
