package config

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// maxLexiconFileSize guards against accidentally pointing the lexicon at a
// huge file.
const maxLexiconFileSize = 1024 * 1024

// loadedLexicon holds the extra skill terms loaded from the configured
// lexicon file, one term per line.
var loadedLexicon []string

// ExtraSkills returns the skill terms loaded from the lexicon file, nil when
// no file was configured.
func (c *Config) ExtraSkills() []string {
	return loadedLexicon
}

// loadLexiconFile reads the configured skill lexicon extension file. The
// format is one term per line; blank lines and '#' comments are skipped.
func (c *Config) loadLexiconFile() error {
	path := c.Engine.LexiconFile
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("lexicon file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("lexicon file %s is a directory", path)
	}
	if info.Size() > maxLexiconFileSize {
		return fmt.Errorf("lexicon file %s exceeds %d bytes", path, maxLexiconFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("lexicon file %s: %w", path, err)
	}

	terms := parseLexicon(string(data))
	loadedLexicon = terms
	log.Printf("[CONFIG] Loaded %d extra skill terms from %s", len(terms), path)
	return nil
}

// parseLexicon parses lexicon file content into normalized terms.
func parseLexicon(content string) []string {
	var terms []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		term := strings.ToLower(line)
		if seen[term] {
			continue
		}
		seen[term] = true
		terms = append(terms, term)
	}

	return terms
}
