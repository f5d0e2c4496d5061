// Package workdir finds the directory that holds .sheet/.
package workdir

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// EnvDir overrides the lookup entirely.
	EnvDir = "SHEET_DIR"

	rootFile = ".sheet-root"
	sheetDir = ".sheet"
)

// ResolveBaseDir picks the project root for baseDir, in order:
//  1. $SHEET_DIR, relative paths taken from baseDir.
//  2. Inside a git checkout, the nearest directory from baseDir up to the
//     git top level that has a .sheet-root redirect or a .sheet directory.
//  3. Outside git, the same check on baseDir alone.
//
// With no marker it returns baseDir unchanged.
func ResolveBaseDir(baseDir string) string {
	if baseDir == "" {
		return baseDir
	}
	baseDir = filepath.Clean(baseDir)

	if env := strings.TrimSpace(os.Getenv(EnvDir)); env != "" {
		return absFrom(baseDir, env)
	}

	stop := baseDir
	if top, err := gitTopLevel(baseDir); err == nil && top != "" {
		stop = filepath.Clean(top)
	}
	start := baseDir
	if real, err := filepath.EvalSymlinks(baseDir); err == nil {
		start = real
	}

	for dir := start; ; dir = filepath.Dir(dir) {
		if resolved, ok := readRoot(dir); ok {
			return resolved
		}
		if hasSheetDir(dir) {
			return dir
		}
		if dir == stop || filepath.Dir(dir) == dir || !within(dir, stop) {
			break
		}
	}
	return baseDir
}

// readRoot follows a .sheet-root file in dir.
func readRoot(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, rootFile))
	if err != nil {
		return "", false
	}
	target := strings.TrimSpace(string(content))
	if target == "" {
		return "", false
	}
	return absFrom(dir, target), true
}

func absFrom(dir, path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return filepath.Clean(path)
}

func hasSheetDir(dir string) bool {
	fi, err := os.Stat(filepath.Join(dir, sheetDir))
	return err == nil && fi.IsDir()
}

// within reports whether dir is root or below it.
func within(dir, root string) bool {
	rel, err := filepath.Rel(root, dir)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func gitTopLevel(dir string) (string, error) {
	out, err := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
