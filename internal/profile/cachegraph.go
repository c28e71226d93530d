package profile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/titanous/json5"
)

const (
	cacheGlobal               = "window.__APOLLO_STATE__"
	profileTypePrefix         = "PublicInvestorProfile:"
	recordedInvestmentsPrefix = "investments_on_record"
)

// Entity is one normalized object of the embedded cache, attribute values may be
// typed references to other entities.
type Entity map[string]any

// String returns the attribute when it is a string, "" otherwise.
func (e Entity) String(attr string) string {
	s, _ := e[attr].(string)
	return s
}

// KeyWithPrefix returns the first attribute (in sorted order) whose key starts with prefix.
func (e Entity) KeyWithPrefix(prefix string) (string, bool) {
	var keys []string
	for k := range e {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return "", false
	}
	sort.Strings(keys)
	return keys[0], true
}

// CacheGraph indexes the embedded key to entity store. References are only ever
// followed one hop at a time so there is no traversal or cycle handling.
type CacheGraph struct {
	entities map[string]Entity

	// ProfileKey is the key of the current investor profile, "" when not found.
	ProfileKey string
	// PersonKey is the key of the profile's person entity, "" when unresolved.
	PersonKey string
}

// LoadCacheGraph finds the cache assignment in the document text and decodes it.
// On any failure the returned graph is empty and safe to use, the error says why.
func LoadCacheGraph(document string) (CacheGraph, error) {
	literal, found := findCacheLiteral(document)
	if !found {
		return CacheGraph{}, fmt.Errorf("%w: no %s assignment", ErrStructuralMismatch, cacheGlobal)
	}

	var raw map[string]any
	err := json5.Unmarshal([]byte(literal), &raw)
	if err != nil {
		return CacheGraph{}, fmt.Errorf("%w: %w", ErrMalformedCache, err)
	}

	graph := CacheGraph{entities: make(map[string]Entity, len(raw))}
	for key, value := range raw {
		obj, ok := value.(map[string]any)
		if !ok {
			continue
		}
		graph.entities[key] = Entity(obj)
	}

	graph.ProfileKey = graph.findProfileKey()
	if profile, ok := graph.Get(graph.ProfileKey); ok {
		if key, ok := graph.resolveKey(profile["person"]); ok {
			graph.PersonKey = key
		}
	}
	return graph, nil
}

func (g CacheGraph) findProfileKey() string {
	var keys []string
	for k := range g.entities {
		if strings.HasPrefix(k, profileTypePrefix) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	// pages also embed the profiles of related investors, the page's own profile
	// is the one that carries its investment history.
	for _, k := range keys {
		if _, ok := g.entities[k].KeyWithPrefix(recordedInvestmentsPrefix); ok {
			return k
		}
	}
	return keys[0]
}

// Len is the number of entities in the graph.
func (g CacheGraph) Len() int {
	return len(g.entities)
}

func (g CacheGraph) Get(key string) (Entity, bool) {
	if key == "" {
		return nil, false
	}
	e, ok := g.entities[key]
	return e, ok
}

func (g CacheGraph) Profile() (Entity, bool) {
	return g.Get(g.ProfileKey)
}

func (g CacheGraph) Person() (Entity, bool) {
	return g.Get(g.PersonKey)
}

// refKeys returns the candidate keys of a typed reference in lookup order.
func refKeys(value any) []string {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	if ref, ok := obj["__ref"].(string); ok {
		return []string{ref}
	}

	typename, ok := obj["typename"].(string)
	if !ok || typename == "" {
		return nil
	}
	var id string
	switch v := obj["id"].(type) {
	case string:
		id = v
	case float64:
		id = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return nil
	}
	if id == "" {
		return nil
	}

	keys := []string{typename + ":" + id}
	// older caches store the full key in the id
	if strings.Contains(id, ":") {
		keys = append(keys, id)
	}
	return keys
}

// IsRef reports whether the value is shaped like a typed reference.
func IsRef(value any) bool {
	return len(refKeys(value)) > 0
}

func (g CacheGraph) resolveKey(value any) (string, bool) {
	for _, key := range refKeys(value) {
		if _, ok := g.entities[key]; ok {
			return key, true
		}
	}
	return "", false
}

// Resolve dereferences a typed reference, a missing key is simply unresolved.
func (g CacheGraph) Resolve(value any) (Entity, bool) {
	key, ok := g.resolveKey(value)
	if !ok {
		return nil, false
	}
	return g.entities[key], true
}

// Deref returns the value as an entity, following it first if it is a reference.
func (g CacheGraph) Deref(value any) (Entity, bool) {
	if IsRef(value) {
		return g.Resolve(value)
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	return Entity(obj), true
}

// findCacheLiteral returns the object literal assigned to the cache global.
func findCacheLiteral(document string) (string, bool) {
	offset := 0
	for {
		idx := strings.Index(document[offset:], cacheGlobal)
		if idx < 0 {
			return "", false
		}
		pos := offset + idx + len(cacheGlobal)
		offset = pos

		pos = skipSpace(document, pos)
		if pos >= len(document) || document[pos] != '=' {
			continue
		}
		pos++
		if pos < len(document) && document[pos] == '=' {
			// comparison, not an assignment
			continue
		}
		pos = skipSpace(document, pos)
		if pos >= len(document) || document[pos] != '{' {
			continue
		}

		end, ok := matchBrace(document, pos)
		if !ok {
			// unterminated, hand the rest over so decoding reports it
			return document[pos:], true
		}
		return document[pos : end+1], true
	}
}

func skipSpace(s string, pos int) int {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t' || s[pos] == '\n' || s[pos] == '\r') {
		pos++
	}
	return pos
}

// matchBrace returns the index of the brace closing the one at start, skipping
// over string literals and comments.
func matchBrace(s string, start int) (int, bool) {
	depth := 0
	var quote byte
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}

		if c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				end := strings.IndexByte(s[i:], '\n')
				if end < 0 {
					return 0, false
				}
				i += end
				continue
			case '*':
				end := strings.Index(s[i+2:], "*/")
				if end < 0 {
					return 0, false
				}
				i += end + 3
				continue
			}
		}

		switch c {
		case '"', '\'':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
