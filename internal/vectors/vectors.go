// Package vectors loads signature vector files: lists of
// (message, public key, signature) entries in JSON or YAML.
package vectors

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vector is one entry with its fields decoded to raw bytes. Lengths are not
// checked here.
type Vector struct {
	Message   []byte
	PublicKey []byte
	Signature []byte
}

// Parser loads vectors from a source.
type Parser interface {
	// ParseVectors parses vectors from a source and returns them.
	ParseVectors(source string) ([]Vector, error)
}

// Fields names the keys of an entry. Empty names fall back to the defaults.
type Fields struct {
	Message    string // default: "message" (UTF-8 text)
	MessageHex string // default: "message_hex" (hex, takes precedence)
	PublicKey  string // default: "public_key"
	Signature  string // default: "signature"
}

func (f Fields) withDefaults() Fields {
	if f.Message == "" {
		f.Message = "message"
	}
	if f.MessageHex == "" {
		f.MessageHex = "message_hex"
	}
	if f.PublicKey == "" {
		f.PublicKey = "public_key"
	}
	if f.Signature == "" {
		f.Signature = "signature"
	}
	return f
}

// JSONParser parses vectors from JSON files.
//
// Expected format:
//
//	[
//	  {"message": "text", "public_key": "0x...", "signature": "0x..."},
//	  ...
//	]
type JSONParser struct {
	Fields Fields
}

// ParseVectors implements Parser.
func (p *JSONParser) ParseVectors(jsonFile string) ([]Vector, error) {
	raw, err := os.ReadFile(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	var items []map[string]interface{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return decodeItems(items, p.Fields.withDefaults())
}

// YAMLParser parses vectors from YAML files holding a sequence of mappings
// with the same keys as the JSON format.
type YAMLParser struct {
	Fields Fields
}

// ParseVectors implements Parser.
func (p *YAMLParser) ParseVectors(yamlFile string) ([]Vector, error) {
	raw, err := os.ReadFile(yamlFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	// Scalars decode as their literal text, so an unquoted 123 or 0x0102
	// stays a string instead of becoming an integer.
	var entries []map[string]string
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	items := make([]map[string]interface{}, len(entries))
	for i, entry := range entries {
		items[i] = make(map[string]interface{}, len(entry))
		for k, v := range entry {
			items[i][k] = v
		}
	}
	return decodeItems(items, p.Fields.withDefaults())
}

// ParserFor picks a parser from the file extension.
func ParserFor(path string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return &JSONParser{}, nil
	case ".yaml", ".yml":
		return &YAMLParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported vector file extension %q", filepath.Ext(path))
	}
}

// ParseFile loads path with the parser matching its extension.
func ParseFile(path string) ([]Vector, error) {
	p, err := ParserFor(path)
	if err != nil {
		return nil, err
	}
	return p.ParseVectors(path)
}

func decodeItems(items []map[string]interface{}, f Fields) ([]Vector, error) {
	vectors := make([]Vector, 0, len(items))
	for i, item := range items {
		var v Vector
		var err error

		if msgHex, ok := item[f.MessageHex]; ok {
			if v.Message, err = decodeHex(msgHex); err != nil {
				return nil, fmt.Errorf("entry %d: failed to parse %s: %w", i, f.MessageHex, err)
			}
		} else if msg, ok := item[f.Message]; ok {
			s, ok := msg.(string)
			if !ok {
				return nil, fmt.Errorf("entry %d: %s field must be a string", i, f.Message)
			}
			v.Message = []byte(s)
		} else {
			return nil, fmt.Errorf("entry %d: missing %s or %s field", i, f.Message, f.MessageHex)
		}

		pk, ok := item[f.PublicKey]
		if !ok {
			return nil, fmt.Errorf("entry %d: missing %s field", i, f.PublicKey)
		}
		if v.PublicKey, err = decodeHex(pk); err != nil {
			return nil, fmt.Errorf("entry %d: failed to parse %s: %w", i, f.PublicKey, err)
		}

		sig, ok := item[f.Signature]
		if !ok {
			return nil, fmt.Errorf("entry %d: missing %s field", i, f.Signature)
		}
		if v.Signature, err = decodeHex(sig); err != nil {
			return nil, fmt.Errorf("entry %d: failed to parse %s: %w", i, f.Signature, err)
		}

		vectors = append(vectors, v)
	}
	return vectors, nil
}

func decodeHex(val interface{}) ([]byte, error) {
	s, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("expected hex string, got %T", val)
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	return hex.DecodeString(s)
}
