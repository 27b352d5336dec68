package services

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

// Manifest layout.
const (
	manifestFilePrefix   = "File: "
	manifestSizePrefix   = "Size: "
	manifestLayersPrefix = "Layers: "
	manifestSection      = "--- Layers ---"
	manifestGroupMarker  = "[📁] "
	manifestIndent       = "  "
)

var lineBreakReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// WriteManifest renders the layer list manifest for a document.
//
//	File: poster.psd
//	Size: 800x600px
//	Layers: 2
//
//	--- Layers ---
//
//	[📁] Characters
//	  002：Hero
//	001：Background
func WriteManifest(doc *domain.Document, entries []domain.FlatEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s%s\n", manifestFilePrefix, lineBreakReplacer.Replace(doc.Name))
	fmt.Fprintf(&b, "%s%dx%dpx\n", manifestSizePrefix, doc.Width, doc.Height)
	fmt.Fprintf(&b, "%s%d\n\n", manifestLayersPrefix, domain.CountLeaves(entries))
	b.WriteString(manifestSection + "\n\n")

	for _, e := range entries {
		b.WriteString(strings.Repeat(manifestIndent, e.Depth))
		name := lineBreakReplacer.Replace(e.DisplayName)
		if e.IsGroup {
			b.WriteString(manifestGroupMarker + name + "\n")
			continue
		}
		b.WriteString(e.OrdinalLabel() + OrdinalSeparator + name + "\n")
	}

	return b.String()
}

// ParseManifest reads a manifest written by WriteManifest.
func ParseManifest(text string) (*domain.Manifest, error) {
	m := &domain.Manifest{}
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inEntries := false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if !inEntries {
			if err := parseManifestHeader(m, line); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if line == manifestSection {
				inEntries = true
			}
			continue
		}

		if line == "" {
			continue
		}
		entry, err := parseManifestEntry(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		m.Entries = append(m.Entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	if !inEntries {
		return nil, fmt.Errorf("%w: missing %q section", domain.ErrInvalidInput, manifestSection)
	}

	return m, nil
}

func parseManifestHeader(m *domain.Manifest, line string) error {
	switch {
	case strings.HasPrefix(line, manifestFilePrefix):
		m.Document = strings.TrimPrefix(line, manifestFilePrefix)
	case strings.HasPrefix(line, manifestSizePrefix):
		size := strings.TrimSuffix(strings.TrimPrefix(line, manifestSizePrefix), "px")
		w, h, ok := strings.Cut(size, "x")
		if !ok {
			return fmt.Errorf("%w: size %q", domain.ErrInvalidInput, size)
		}
		var err error
		if m.Width, err = strconv.Atoi(w); err != nil {
			return fmt.Errorf("%w: width %q", domain.ErrInvalidInput, w)
		}
		if m.Height, err = strconv.Atoi(h); err != nil {
			return fmt.Errorf("%w: height %q", domain.ErrInvalidInput, h)
		}
	case strings.HasPrefix(line, manifestLayersPrefix):
		n, err := strconv.Atoi(strings.TrimPrefix(line, manifestLayersPrefix))
		if err != nil {
			return fmt.Errorf("%w: layer count", domain.ErrInvalidInput)
		}
		m.LayerCount = n
	}
	return nil
}

func parseManifestEntry(line string) (domain.ManifestEntry, error) {
	trimmed := strings.TrimLeft(line, " ")
	indent := len(line) - len(trimmed)
	entry := domain.ManifestEntry{Depth: indent / len(manifestIndent)}

	if name, ok := strings.CutPrefix(trimmed, manifestGroupMarker); ok {
		entry.IsGroup = true
		entry.Name = name
		return entry, nil
	}

	label, name, ok := strings.Cut(trimmed, OrdinalSeparator)
	if !ok {
		return entry, fmt.Errorf("%w: entry %q", domain.ErrInvalidInput, line)
	}
	ordinal, err := strconv.Atoi(label)
	if err != nil {
		return entry, fmt.Errorf("%w: ordinal %q", domain.ErrInvalidInput, label)
	}
	entry.Ordinal = ordinal
	entry.Name = name
	return entry, nil
}
