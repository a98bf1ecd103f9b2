package pool

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileFormat represents the supported pool file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatTOML               // [[options]] tables
	FormatYAML               // options: list
	FormatText               // one label per line
)

// FormatInfo describes a pool file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatTOML: {
		Format:      FormatTOML,
		Description: "TOML option list",
		Extensions:  []string{".toml"},
	},
	FormatYAML: {
		Format:      FormatYAML,
		Description: "YAML option list",
		Extensions:  []string{".yaml", ".yml"},
	},
	FormatText: {
		Format:      FormatText,
		Description: "Plain text labels",
		Extensions:  []string{".txt"},
	},
}

// DetectFormat picks the format from the file extension.
func DetectFormat(filename string) FileFormat {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if e == ext {
				return format
			}
		}
	}
	return FormatUnknown
}

// String returns the format description
func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// SupportedExtensions returns all extensions LoadFile understands
func SupportedExtensions() []string {
	var exts []string
	for _, format := range []FileFormat{FormatTOML, FormatYAML, FormatText} {
		exts = append(exts, supportedFormats[format].Extensions...)
	}
	return exts
}

func unsupported(filename string) error {
	return fmt.Errorf("unsupported pool file %s (want one of %s)", filename, strings.Join(SupportedExtensions(), ", "))
}
