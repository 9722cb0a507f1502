// Package importer turns Markdown files with YAML frontmatter into learning
// items ready for spaced-repetition scheduling.
package importer

import (
	"bufio"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/curatorhq/curator/pkg/types"
)

// ParsedFile represents a single Markdown file that has been parsed.
type ParsedFile struct {
	// Path is the filesystem path to the file.
	Path string

	// Title is derived from frontmatter, the first H1 heading, or the
	// filename (without extension), in that order of preference.
	Title string

	// Content is the raw Markdown body (frontmatter stripped).
	Content string

	// Kind is the item kind from frontmatter, default "note".
	Kind string

	// Tags is the merged set of tags from frontmatter and inline #tags.
	Tags []string

	// SREnabled is false only when frontmatter explicitly disables
	// scheduling (sr_enabled: false).
	SREnabled bool
}

// ParseMarkdownFile parses a single Markdown file's content. path is used to
// derive a fallback title from the filename.
func ParseMarkdownFile(content []byte, path string) (*ParsedFile, error) {
	fm, body, err := splitFrontmatter(string(content))
	if err != nil {
		return nil, fmt.Errorf("frontmatter parse error in %s: %w", path, err)
	}

	title := extractString(fm, "title", "")
	if title == "" {
		title = extractH1(body)
	}
	if title == "" {
		title = titleFromPath(path)
	}

	kind := extractString(fm, "kind", types.KindNote)
	if !types.IsValidKind(kind) {
		return nil, fmt.Errorf("unknown item kind %q in %s", kind, path)
	}

	tags := mergeTags(extractTags(fm), extractInlineTags(body))

	enabled := true
	if v, ok := fm["sr_enabled"]; ok {
		if b, ok := v.(bool); ok {
			enabled = b
		}
	}

	return &ParsedFile{
		Path:      path,
		Title:     title,
		Content:   strings.TrimSpace(body),
		Kind:      kind,
		Tags:      tags,
		SREnabled: enabled,
	}, nil
}

// Item converts the parsed file into a new learning item with the given ID.
// Scheduling state starts at the defaults; frontmatter can only disable it.
func (p *ParsedFile) Item(id string) *types.Item {
	item := types.NewItem(id, p.Title, p.Content, p.Kind)
	item.Tags = p.Tags
	item.Scheduling.Enabled = p.SREnabled
	return item
}

// splitFrontmatter separates YAML frontmatter (between --- delimiters) from
// the Markdown body. Returns an empty map and the full text when no
// frontmatter is found.
func splitFrontmatter(text string) (map[string]interface{}, string, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return map[string]interface{}{}, text, nil
	}

	closeIdx := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			closeIdx = i
			break
		}
	}
	if closeIdx == -1 {
		// No closing delimiter - treat entire file as body.
		return map[string]interface{}{}, text, nil
	}

	fmText := strings.Join(lines[1:closeIdx], "\n")
	fm := make(map[string]interface{})
	if err := yaml.Unmarshal([]byte(fmText), &fm); err != nil {
		return map[string]interface{}{}, text, fmt.Errorf("invalid YAML: %w", err)
	}

	body := strings.Join(lines[closeIdx+1:], "\n")
	return fm, body, nil
}

// titleFromPath derives a human-readable title from the file name (no extension).
func titleFromPath(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.TrimSpace(name)
}

// extractH1 returns the text of the first ATX heading (# ...) in the body.
func extractH1(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}

// extractTags reads tags from frontmatter. Handles both list and string forms.
func extractTags(fm map[string]interface{}) []string {
	raw, ok := fm["tags"]
	if !ok {
		return nil
	}

	switch v := raw.(type) {
	case []interface{}:
		var tags []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	case string:
		if v == "" {
			return nil
		}
		// Comma-separated tags in a single string.
		var tags []string
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		return tags
	}
	return nil
}

// extractString pulls a string value from frontmatter by key with a default.
func extractString(fm map[string]interface{}, key, defaultVal string) string {
	v, ok := fm[key]
	if !ok {
		return defaultVal
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	return defaultVal
}

// inlineTagRe finds #hashtag patterns in body text.
var inlineTagRe = regexp.MustCompile(`(?:^|\s)#([A-Za-z][A-Za-z0-9_/-]*)`)

// extractInlineTags finds #hashtag patterns in body text.
func extractInlineTags(body string) []string {
	matches := inlineTagRe.FindAllStringSubmatch(body, -1)
	seen := make(map[string]bool)
	var tags []string
	for _, m := range matches {
		tag := strings.TrimSpace(m[1])
		lower := strings.ToLower(tag)
		if !seen[lower] {
			seen[lower] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

// mergeTags combines two tag slices deduplicating by lowercase value.
func mergeTags(a, b []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, tag := range append(a, b...) {
		lower := strings.ToLower(tag)
		if !seen[lower] {
			seen[lower] = true
			result = append(result, tag)
		}
	}
	return result
}
