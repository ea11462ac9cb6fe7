package phrase

import (
	"bufio"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultSetKey selects the set used when no preference is stored.
const DefaultSetKey = "starter"

//go:embed sets/*.toml
var builtinSets embed.FS

// Set is a named, ordered collection of phrases.
type Set struct {
	Key     string
	Name    string
	Phrases []Phrase
}

type setFile struct {
	Name    string   `toml:"name"`
	Phrases []string `toml:"phrases"`
}

// Library holds every available phrase set, ordered by key. Sets are loaded
// once at startup; the library is read-only afterwards.
type Library struct {
	sets  []Set
	byKey map[string]int
}

// LoadLibrary merges the built-in sets with user sets found in dir. User
// sets may be TOML files or plain text files with one phrase per line; a
// user set whose key matches a built-in replaces it. dir may be empty or
// missing.
func LoadLibrary(dir string) (*Library, error) {
	merged := make(map[string]Set)

	entries, err := builtinSets.ReadDir("sets")
	if err != nil {
		return nil, fmt.Errorf("failed to list built-in sets: %w", err)
	}
	for _, entry := range entries {
		data, err := builtinSets.ReadFile("sets/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read built-in set %s: %w", entry.Name(), err)
		}
		set, err := parseSetTOML(keyFor(entry.Name()), data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse built-in set %s: %w", entry.Name(), err)
		}
		merged[set.Key] = set
	}

	if dir != "" {
		if err := loadUserSets(dir, merged); err != nil {
			return nil, err
		}
	}
	if len(merged) == 0 {
		return nil, fmt.Errorf("no phrase sets available")
	}

	sets := make([]Set, 0, len(merged))
	for _, set := range merged {
		sets = append(sets, set)
	}
	return NewLibrary(sets...), nil
}

// NewLibrary builds a library from the given sets, ordered by key.
func NewLibrary(sets ...Set) *Library {
	sorted := make([]Set, len(sets))
	copy(sorted, sets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	lib := &Library{byKey: make(map[string]int, len(sorted))}
	for _, set := range sorted {
		lib.byKey[set.Key] = len(lib.sets)
		lib.sets = append(lib.sets, set)
	}
	return lib
}

func loadUserSets(dir string, merged map[string]Set) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read set directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		path := filepath.Join(dir, name)
		var (
			set     Set
			loadErr error
		)
		switch {
		case strings.HasSuffix(name, ".toml"):
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read set file %s: %w", path, err)
			}
			set, loadErr = parseSetTOML(keyFor(name), data)
		case strings.HasSuffix(name, ".txt"):
			set, loadErr = loadSetLines(keyFor(name), path)
		default:
			continue
		}
		if loadErr != nil {
			return fmt.Errorf("failed to load set file %s: %w", path, loadErr)
		}
		merged[set.Key] = set
	}
	return nil
}

func parseSetTOML(key string, data []byte) (Set, error) {
	var file setFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return Set{}, fmt.Errorf("failed to decode TOML: %w", err)
	}
	name := strings.TrimSpace(file.Name)
	if name == "" {
		name = titleFor(key)
	}
	phrases := make([]Phrase, 0, len(file.Phrases))
	for _, text := range file.Phrases {
		p := New(strings.TrimSpace(text))
		if p.Typing == "" {
			continue
		}
		phrases = append(phrases, p)
	}
	if len(phrases) == 0 {
		return Set{}, fmt.Errorf("set %q contains no phrases", key)
	}
	return Set{Key: key, Name: name, Phrases: phrases}, nil
}

// loadSetLines reads one phrase per line, skipping blank lines.
func loadSetLines(key, path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		cerr := f.Close()
		_ = cerr // Best-effort close of a read-only file.
	}()

	var phrases []Phrase
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		p := New(strings.TrimSpace(scanner.Text()))
		if p.Typing == "" {
			continue
		}
		phrases = append(phrases, p)
	}
	if err := scanner.Err(); err != nil {
		return Set{}, fmt.Errorf("failed to read file: %w", err)
	}
	if len(phrases) == 0 {
		return Set{}, fmt.Errorf("set %q contains no phrases", key)
	}
	return Set{Key: key, Name: titleFor(key), Phrases: phrases}, nil
}

// keyFor derives a set key from a file name by stripping the extension.
func keyFor(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// titleFor derives a display name from a set key: hyphens become spaces and
// each word is capitalized.
func titleFor(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

// Sets returns all sets ordered by key.
func (l *Library) Sets() []Set {
	return l.sets
}

// Get returns the set with the given key.
func (l *Library) Get(key string) (Set, bool) {
	i, ok := l.byKey[key]
	if !ok {
		return Set{}, false
	}
	return l.sets[i], true
}

// IndexOf returns the position of key in the ordered set list.
func (l *Library) IndexOf(key string) (int, bool) {
	i, ok := l.byKey[key]
	return i, ok
}

// Len returns the number of sets.
func (l *Library) Len() int {
	return len(l.sets)
}

// At returns the set at position i, wrapping around both ends so that
// cycling past the last set lands on the first and vice versa.
func (l *Library) At(i int) Set {
	n := len(l.sets)
	i = ((i % n) + n) % n
	return l.sets[i]
}
