package services

import (
	"strings"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

// OrdinalSeparator joins the ordinal and the layer name in file names
// and manifest lines.
const OrdinalSeparator = "："

// Artifact name suffixes.
const (
	archiveSuffix  = "_layers.zip"
	mergedSuffix   = "_merged"
	manifestSuffix = ".layers.txt"
)

var filenameReplacer = strings.NewReplacer(
	`\`, "_",
	"/", "_",
	":", "_",
	"*", "_",
	"?", "_",
	`"`, "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// SanitizeFilename replaces characters that are invalid in file names on
// common platforms with an underscore.
func SanitizeFilename(name string) string {
	return filenameReplacer.Replace(name)
}

// LayerFilename returns the file name of an individually exported layer,
// e.g. "003：Background.png".
func LayerFilename(entry domain.FlatEntry, ext string) string {
	return entry.OrdinalLabel() + OrdinalSeparator + SanitizeFilename(entry.DisplayName) + "." + ext
}

// ArchiveFilename returns the name of the individual-export archive.
func ArchiveFilename(doc *domain.Document) string {
	return doc.BaseName() + archiveSuffix
}

// MergedFilename returns the name of the merged composite.
func MergedFilename(doc *domain.Document, ext string) string {
	return doc.BaseName() + mergedSuffix + "." + ext
}

// ManifestFilename returns the name of the layer list manifest.
func ManifestFilename(doc *domain.Document) string {
	return doc.BaseName() + manifestSuffix
}
