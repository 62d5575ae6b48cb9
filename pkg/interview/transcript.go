package interview

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Transcript is a conversation kept on disk as YAML or JSON. Both formats
// use the backend's key names.
type Transcript struct {
	JobTitle    string      `json:"jobTitle,omitempty" yaml:"jobTitle,omitempty"`
	ChatHistory ChatHistory `json:"chatHistory" yaml:"chatHistory"`
}

// LoadTranscript reads a transcript file. The format follows the file extension.
func LoadTranscript(path string) (Transcript, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Transcript{}, errors.New("transcript path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Transcript{}, fmt.Errorf("read transcript: %w", err)
	}
	return ParseTranscript(raw, filepath.Ext(path))
}

// ParseTranscript decodes data as YAML (.yaml, .yml) or JSON (.json). An empty
// or unknown extension tries YAML first, then JSON. Unknown keys and a missing
// chatHistory are rejected.
func ParseTranscript(data []byte, ext string) (Transcript, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		exts []string
		fn   func([]byte, *Transcript) error
	}{
		{name: "yaml", exts: []string{".yaml", ".yml"}, fn: decodeYAMLTranscript},
		{name: "json", exts: []string{".json"}, fn: decodeJSONTranscript},
	}

	known := false
	for _, d := range decoders {
		if slices.Contains(d.exts, ext) {
			known = true
		}
	}

	var errs []error
	for _, d := range decoders {
		if known && !slices.Contains(d.exts, ext) {
			continue
		}
		var t Transcript
		if err := d.fn(data, &t); err != nil {
			errs = append(errs, fmt.Errorf("decode %s transcript: %w", d.name, err))
			continue
		}
		if t.ChatHistory == nil {
			errs = append(errs, fmt.Errorf("decode %s transcript: chatHistory is missing", d.name))
			continue
		}
		return t, nil
	}
	return Transcript{}, errors.Join(errs...)
}

func decodeYAMLTranscript(data []byte, t *Transcript) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(t); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("document is empty")
		}
		return err
	}
	return nil
}

func decodeJSONTranscript(data []byte, t *Transcript) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(t)
}

// WriteFile stores t at path, as JSON for .json files and YAML otherwise.
func (t Transcript) WriteFile(path string) error {
	var (
		raw []byte
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		raw, err = json.MarshalIndent(t, "", "  ")
	} else {
		raw, err = yaml.Marshal(t)
	}
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create transcript directory: %w", err)
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
