package pool

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// optionEntry is the on-disk shape of one option.
type optionEntry struct {
	Label    string `toml:"label" yaml:"label"`
	Value    string `toml:"value" yaml:"value"`
	Selected bool   `toml:"selected" yaml:"selected"`
}

type poolFile struct {
	Options []optionEntry `toml:"options" yaml:"options"`
}

// LoadFile reads a pool from a TOML, YAML or plain text file.
// Entries without a label are skipped; a missing value defaults to the label.
func LoadFile(filename string) (*Memory, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read pool file %s: %w", filename, err)
	}
	format := DetectFormat(filename)
	opts, err := Parse(data, format)
	if err != nil {
		if format == FormatUnknown {
			return nil, unsupported(filename)
		}
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	log.Debugf("Loaded %d options from %s (%s)", len(opts), filename, format)
	return NewMemory(opts...), nil
}

// Parse decodes pool options from data in the given format.
func Parse(data []byte, format FileFormat) ([]Option, error) {
	var file poolFile
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &file); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, err
		}
	case FormatText:
		return parseText(data)
	default:
		return nil, fmt.Errorf("unknown format")
	}

	opts := make([]Option, 0, len(file.Options))
	for i, e := range file.Options {
		label := strings.TrimSpace(e.Label)
		if label == "" {
			log.Warnf("Skipping pool entry %d: missing label", i)
			continue
		}
		opts = append(opts, Option{Label: label, Value: strings.TrimSpace(e.Value), Selected: e.Selected})
	}
	return opts, nil
}

func parseText(data []byte) ([]Option, error) {
	var opts []Option
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		opts = append(opts, Option{Label: line})
	}
	return opts, scanner.Err()
}
