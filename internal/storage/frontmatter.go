// ABOUTME: YAML frontmatter and file helpers for the markdown backend.
// ABOUTME: Files are "---\n<yaml>---\n<body>" and are written atomically.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const fmDelim = "---"

// parseFrontmatter splits a document into its YAML header and body.
// A document without a header yields an empty YAML string.
func parseFrontmatter(content string) (string, string) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, fmDelim+"\n") {
		return "", content
	}
	rest := content[len(fmDelim)+1:]

	end := strings.Index(rest, "\n"+fmDelim+"\n")
	if end < 0 {
		if strings.HasSuffix(rest, "\n"+fmDelim) {
			return rest[:len(rest)-len(fmDelim)], ""
		}
		return "", content
	}
	return rest[:end+1], rest[end+len(fmDelim)+2:]
}

// renderFrontmatter marshals fm as YAML and prepends it to body.
func renderFrontmatter(fm interface{}, body string) (string, error) {
	out, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmDelim + "\n")
	sb.Write(out)
	sb.WriteString(fmDelim + "\n")
	sb.WriteString(body)
	return sb.String(), nil
}

// atomicWrite writes data to a temp file in the target directory and
// renames it into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// slugify lowercases s and replaces runs of non-alphanumerics with '-'.
func slugify(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			dash = false
		default:
			if sb.Len() > 0 && !dash {
				sb.WriteByte('-')
				dash = true
			}
		}
	}
	slug := strings.TrimSuffix(sb.String(), "-")
	if slug == "" {
		return "untitled"
	}
	return slug
}

// noteBody renders free text as a markdown body.
func noteBody(notes string) string {
	if notes == "" {
		return ""
	}
	return "\n" + notes + "\n"
}
