package mapping

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	interrors "github.com/fleetglass/agentmap/internal/errors"
)

// ValueShape is the expected shape of a column's cell values, used only as a
// tie-break signal between closely scored fields.
type ValueShape string

const (
	ShapeText    ValueShape = "text"
	ShapeNumeric ValueShape = "numeric"
	ShapeBoolean ValueShape = "boolean"
	ShapeList    ValueShape = "list"
)

// CanonicalField is one target configuration slot an imported column can map
// to. Fields are immutable once the registry is built.
type CanonicalField struct {
	Key      string     `yaml:"key"`
	Aliases  []string   `yaml:"aliases"`
	Required bool       `yaml:"required,omitempty"`
	Shape    ValueShape `yaml:"shape,omitempty"`
}

// Registry is the immutable canonical field set plus its synonym table.
// Built once at process start and safe for concurrent readers.
type Registry struct {
	fields   []CanonicalField
	aliases  map[string][]Token // field key -> normalized aliases (key included)
	synonyms []synonymEntry
	required int
}

// synonymEntry maps a curated business phrasing to a field key. Phrases are
// stored normalized; phrases containing wildcard metacharacters are matched
// as patterns against the normalized header.
type synonymEntry struct {
	Phrase   string
	Field    string
	Wildcard bool
}

// registryFile is the on-disk YAML form of a registry.
type registryFile struct {
	Version  int               `yaml:"version"`
	Fields   []CanonicalField  `yaml:"fields"`
	Synonyms map[string]string `yaml:"synonyms,omitempty"`
}

// NewRegistry validates and builds a registry from a field set and a synonym
// table (phrase -> field key). Duplicate keys, empty alias lists, or synonym
// phrases pointing at unknown fields are configuration errors.
func NewRegistry(fields []CanonicalField, synonyms map[string]string) (*Registry, error) {
	if len(fields) == 0 {
		return nil, interrors.WrapRegistryError("build_registry",
			fmt.Errorf("no canonical fields defined: %w", interrors.ErrInvalidRegistry))
	}

	reg := &Registry{
		fields:  make([]CanonicalField, 0, len(fields)),
		aliases: make(map[string][]Token, len(fields)),
	}

	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		key := strings.TrimSpace(f.Key)
		if key == "" {
			return nil, interrors.WrapRegistryError("build_registry",
				fmt.Errorf("field with empty key: %w", interrors.ErrInvalidRegistry))
		}
		if _, dup := seen[key]; dup {
			return nil, interrors.WrapRegistryError("build_registry",
				fmt.Errorf("duplicate field key %q: %w", key, interrors.ErrInvalidRegistry))
		}
		seen[key] = struct{}{}

		// The key itself always participates as an alias.
		names := append([]string{key}, f.Aliases...)
		normalized := make([]Token, 0, len(names))
		aliasSeen := make(map[string]struct{}, len(names))
		for _, a := range names {
			tok := Normalize(a)
			if tok.Empty() {
				continue
			}
			if _, dup := aliasSeen[tok.Joined]; dup {
				continue
			}
			aliasSeen[tok.Joined] = struct{}{}
			normalized = append(normalized, tok)
		}
		if len(normalized) == 0 {
			return nil, interrors.WrapRegistryError("build_registry",
				fmt.Errorf("field %q has no usable aliases: %w", key, interrors.ErrInvalidRegistry))
		}

		cf := f
		cf.Key = key
		if cf.Shape == "" {
			cf.Shape = ShapeText
		}
		reg.fields = append(reg.fields, cf)
		reg.aliases[key] = normalized
		if cf.Required {
			reg.required++
		}
	}

	phraseTargets := make(map[string]string, len(synonyms))
	for phrase, fieldKey := range synonyms {
		if _, ok := seen[fieldKey]; !ok {
			return nil, interrors.WrapRegistryError("build_registry",
				fmt.Errorf("synonym %q targets unknown field %q: %w", phrase, fieldKey, interrors.ErrInvalidRegistry))
		}
		wild := strings.ContainsAny(phrase, "*?")
		norm := phrase
		if !wild {
			tok := Normalize(phrase)
			if tok.Empty() {
				return nil, interrors.WrapRegistryError("build_registry",
					fmt.Errorf("synonym for field %q normalizes to empty: %w", fieldKey, interrors.ErrInvalidRegistry))
			}
			norm = tok.Joined
		} else {
			norm = strings.ToLower(strings.TrimSpace(phrase))
		}
		if prev, dup := phraseTargets[norm]; dup {
			if prev == fieldKey {
				continue
			}
			return nil, interrors.WrapRegistryError("build_registry",
				fmt.Errorf("synonym %q targets both %q and %q: %w", norm, prev, fieldKey, interrors.ErrInvalidRegistry))
		}
		phraseTargets[norm] = fieldKey
		reg.synonyms = append(reg.synonyms, synonymEntry{Phrase: norm, Field: fieldKey, Wildcard: wild})
	}

	// Deterministic synonym evaluation order regardless of map iteration.
	sortSynonyms(reg.synonyms)

	return reg, nil
}

// LoadRegistryFile reads a versioned registry document from a YAML file.
func LoadRegistryFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, interrors.WrapRegistryError("load_registry", err)
	}

	var doc registryFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, interrors.WrapRegistryError("load_registry",
			fmt.Errorf("parse %s: %w", path, err))
	}

	return NewRegistry(doc.Fields, doc.Synonyms)
}

// Fields returns the canonical fields in registry order.
func (r *Registry) Fields() []CanonicalField {
	return r.fields
}

// FieldAliases returns the normalized alias tokens for a field key.
func (r *Registry) FieldAliases(key string) []Token {
	return r.aliases[key]
}

// RequiredCount returns how many fields are flagged required.
func (r *Registry) RequiredCount() int {
	return r.required
}

// sortSynonyms orders exact phrases before wildcard patterns, then
// lexicographically, so evaluation order never depends on map iteration.
func sortSynonyms(entries []synonymEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Wildcard != b.Wildcard {
			return !a.Wildcard
		}
		if a.Phrase != b.Phrase {
			return a.Phrase < b.Phrase
		}
		return a.Field < b.Field
	})
}
