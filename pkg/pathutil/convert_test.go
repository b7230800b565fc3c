package pathutil

import (
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func TestToRelative(t *testing.T) {
	tests := []struct {
		name     string
		absPath  string
		rootDir  string
		expected string
	}{
		{
			name:     "simple relative path",
			absPath:  "/home/user/project/src/main.py",
			rootDir:  "/home/user/project",
			expected: "src/main.py",
		},
		{
			name:     "nested relative path",
			absPath:  "/home/user/project/lib/server/app.js",
			rootDir:  "/home/user/project",
			expected: "lib/server/app.js",
		},
		{
			name:     "root level file",
			absPath:  "/home/user/project/README.md",
			rootDir:  "/home/user/project",
			expected: "README.md",
		},
		{
			name:     "same directory",
			absPath:  "/home/user/project",
			rootDir:  "/home/user/project",
			expected: ".",
		},
		{
			name:     "already relative path",
			absPath:  "src/main.py",
			rootDir:  "/home/user/project",
			expected: "src/main.py", // Should return as-is if already relative
		},
		{
			name:     "path outside root - fallback to absolute",
			absPath:  "/other/location/file.py",
			rootDir:  "/home/user/project",
			expected: "/other/location/file.py", // Should return absolute if outside root
		},
		{
			name:     "empty root directory",
			absPath:  "/home/user/project/file.py",
			rootDir:  "",
			expected: "/home/user/project/file.py", // Fallback to absolute
		},
		{
			name:     "empty absolute path",
			absPath:  "",
			rootDir:  "/home/user/project",
			expected: "", // Empty stays empty
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToRelative(tt.absPath, tt.rootDir)

			// Normalize separators for cross-platform testing
			expected := tt.expected
			if runtime.GOOS == "windows" {
				result = filepath.ToSlash(result)
				expected = filepath.ToSlash(expected)
			}
			if result != expected {
				t.Errorf("ToRelative() = %v, want %v", result, expected)
			}
		})
	}
}

func TestToRelativeAll(t *testing.T) {
	paths := []string{
		"/home/user/project/a.py",
		"/home/user/project/src/b.py",
		"/elsewhere/c.py",
	}
	got := ToRelativeAll(paths, "/home/user/project")
	want := []string{"a.py", "src/b.py", "/elsewhere/c.py"}

	if runtime.GOOS != "windows" && !reflect.DeepEqual(got, want) {
		t.Errorf("ToRelativeAll() = %v, want %v", got, want)
	}

	// Original slice stays untouched.
	if paths[0] != "/home/user/project/a.py" {
		t.Errorf("input slice was modified: %v", paths)
	}

	if out := ToRelativeAll(nil, "/root"); out != nil {
		t.Errorf("nil input should pass through, got %v", out)
	}
}
