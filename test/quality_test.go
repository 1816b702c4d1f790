package test

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"unicode/utf8"
)

// getProjectRoot returns the project root directory based on this test file's location.
func getProjectRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "."
	}
	return filepath.Dir(filepath.Dir(filename))
}

// collectFiles walks the project and returns files accepted by keep.
// Hidden directories, vendor/ and the read-only reference tree are ignored.
func collectFiles(t *testing.T, keep func(path string) bool) []string {
	t.Helper()
	files := []string{}

	err := filepath.Walk(getProjectRoot(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" {
				return filepath.SkipDir
			}
			return nil
		}
		if keep(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk directory: %v", err)
	}

	return files
}

// TestNoSkippedTests ensures no test files contain t.Skip() calls.
// Skipped tests hide failures - tests should either pass or fail, never skip.
func TestNoSkippedTests(t *testing.T) {
	forbiddenPatterns := []string{
		"t.Skip(",
		"t.SkipNow(",
		"testing.Short()",
	}

	testFiles := collectFiles(t, func(path string) bool {
		return strings.HasSuffix(path, "_test.go") && !strings.HasSuffix(path, "quality_test.go")
	})

	violations := []string{}

	for _, testFile := range testFiles {
		f, err := os.Open(testFile)
		if err != nil {
			t.Fatalf("Failed to open %s: %v", testFile, err)
		}

		scanner := bufio.NewScanner(f)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			line := scanner.Text()

			if strings.HasPrefix(strings.TrimSpace(line), "//") {
				continue
			}

			for _, pattern := range forbiddenPatterns {
				if strings.Contains(line, pattern) {
					violations = append(violations,
						fmt.Sprintf("%s:%d: contains forbidden pattern '%s'", testFile, lineNum, pattern))
				}
			}
		}
		f.Close()

		if err := scanner.Err(); err != nil {
			t.Fatalf("Error scanning %s: %v", testFile, err)
		}
	}

	if len(violations) > 0 {
		t.Errorf("Found %d test skip violation(s):\n", len(violations))
		for _, v := range violations {
			t.Errorf("  %s", v)
		}
		t.Error("\nTests should not be skipped. Either:")
		t.Error("  1. Fix the issue causing the skip")
		t.Error("  2. Use t.Fatalf() if a required resource is missing")
		t.Error("  3. Remove the test if it's no longer relevant")
	}
}

// TestEveryPackageHasTests ensures each package under pkg/ and internal/ ships tests.
func TestEveryPackageHasTests(t *testing.T) {
	goFiles := collectFiles(t, func(path string) bool {
		return strings.HasSuffix(path, ".go")
	})

	hasSource := map[string]bool{}
	hasTests := map[string]bool{}
	for _, path := range goFiles {
		dir := filepath.Dir(path)
		rel, err := filepath.Rel(getProjectRoot(), dir)
		if err != nil || !(strings.HasPrefix(rel, "pkg") || strings.HasPrefix(rel, "internal")) {
			continue
		}
		if strings.HasSuffix(path, "_test.go") {
			hasTests[rel] = true
		} else {
			hasSource[rel] = true
		}
	}

	if len(hasSource) == 0 {
		t.Fatal("No packages found - something is wrong with package discovery")
	}

	for dir := range hasSource {
		if !hasTests[dir] {
			t.Errorf("package %s has no tests", dir)
		}
	}
}

// TestFixturesAreUTF8 ensures the shared log fixtures decode cleanly.
// Invalid-encoding cases build their input inside the test instead.
func TestFixturesAreUTF8(t *testing.T) {
	logs := collectFiles(t, func(path string) bool {
		return strings.HasSuffix(path, ".log") && strings.Contains(path, filepath.Join("testdata", "logs"))
	})

	if len(logs) == 0 {
		t.Fatal("No log fixtures found under testdata/logs")
	}

	for _, path := range logs {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", path, err)
		}
		if !utf8.Valid(data) {
			t.Errorf("%s is not valid UTF-8", path)
		}
	}
}
