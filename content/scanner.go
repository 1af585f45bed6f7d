package content

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/moby/patternmatcher"

	"github.com/lectern/lectern/logging"
)

// IgnoreFileName is the optional ignore file read from the project root.
const IgnoreFileName = ".lecternignore"

// Scanner discovers markdown pages under the content directory. Discovery is
// deterministic: results come back sorted by content-relative path.
type Scanner struct {
	// ContentDir is the absolute content directory to walk.
	ContentDir string

	// ProjectRoot is where the .lecternignore file is looked up. Empty
	// disables the ignore file.
	ProjectRoot string

	// Patterns holds extra ignore patterns from course.yml (content.ignore).
	Patterns []string
}

// Scan walks the content directory and returns the content-relative paths of
// all markdown pages not excluded by ignore patterns.
func (s *Scanner) Scan() ([]string, error) {
	log := logging.NewLogger("content")

	patterns := append([]string{}, s.Patterns...)
	if s.ProjectRoot != "" {
		filePatterns, err := readIgnoreFile(filepath.Join(s.ProjectRoot, IgnoreFileName))
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, filePatterns...)
	}

	var matcher *patternmatcher.PatternMatcher
	if len(patterns) > 0 {
		var err error
		matcher, err = patternmatcher.New(patterns)
		if err != nil {
			return nil, err
		}
	}

	var pages []string
	err := filepath.WalkDir(s.ContentDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != s.ContentDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}

		rel, err := filepath.Rel(s.ContentDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if matcher != nil {
			ignored, err := matcher.MatchesOrParentMatches(rel)
			if err != nil {
				return err
			}
			if ignored {
				log.WithField("page", rel).Debug("Page excluded by ignore pattern")
				return nil
			}
		}

		pages = append(pages, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(pages)
	log.WithField("count", len(pages)).Debug("Content scan complete")
	return pages, nil
}

// readIgnoreFile parses a .lecternignore file: one pattern per line, blank
// lines and #-comments skipped. A missing file is not an error.
func readIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, scanner.Err()
}
