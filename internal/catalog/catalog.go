// Package catalog exposes the static career → subject → topic reference data
// as an immutable index built once at startup.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

type Career struct {
	Code     string
	Name     string
	Subjects []Subject
}

type Subject struct {
	Name   string
	Topics []string
}

// Lookup is the narrow read-only contract the managers depend on.
type Lookup interface {
	// Career resolves a career by catalog code or name, case-insensitively.
	Career(key string) (Career, bool)
	// Subject resolves a subject that belongs to the given career.
	Subject(career, subject string) (Subject, bool)
	// Topic resolves a topic of subject under career and returns its
	// catalog spelling.
	Topic(career, subject, topic string) (string, bool)
	Careers() []Career
}

type document struct {
	Careers []struct {
		Code     string `yaml:"code"`
		Name     string `yaml:"name"`
		Subjects []struct {
			Name   string   `yaml:"name"`
			Topics []string `yaml:"topics"`
		} `yaml:"subjects"`
	} `yaml:"careers"`
}

type careerEntry struct {
	career   Career
	subjects map[string]subjectEntry
}

type subjectEntry struct {
	subject Subject
	topics  map[string]string
}

// Index is an immutable Lookup. It is safe for concurrent use because
// nothing mutates it after construction.
type Index struct {
	careers []Career
	byKey   map[string]*careerEntry
}

var _ Lookup = (*Index)(nil)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Default returns the index built from the catalog compiled into the binary.
func Default() (*Index, error) {
	return Parse(embedded)
}

// Load builds an index from a YAML file on disk, or from the embedded
// catalog when path is empty.
func Load(path string) (*Index, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds an index from a YAML document.
func Parse(data []byte) (*Index, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	idx := &Index{byKey: make(map[string]*careerEntry)}
	for i, c := range doc.Careers {
		code := strings.ToUpper(strings.TrimSpace(c.Code))
		name := strings.TrimSpace(c.Name)
		if code == "" || name == "" {
			return nil, fmt.Errorf("catalog career %d: code and name are required", i)
		}
		entry := &careerEntry{subjects: make(map[string]subjectEntry)}
		career := Career{Code: code, Name: name}
		for _, s := range c.Subjects {
			subjName := strings.TrimSpace(s.Name)
			if subjName == "" {
				return nil, fmt.Errorf("catalog career %s: subject without a name", code)
			}
			subj := Subject{Name: subjName, Topics: append([]string(nil), s.Topics...)}
			topics := make(map[string]string, len(s.Topics))
			for _, topic := range s.Topics {
				topics[normalize(topic)] = strings.TrimSpace(topic)
			}
			entry.subjects[normalize(subjName)] = subjectEntry{subject: subj, topics: topics}
			career.Subjects = append(career.Subjects, subj)
		}
		entry.career = career

		for _, key := range []string{normalize(code), normalize(name)} {
			if _, dup := idx.byKey[key]; dup {
				return nil, fmt.Errorf("catalog career %q defined twice", key)
			}
			idx.byKey[key] = entry
		}
		idx.careers = append(idx.careers, career)
	}

	sort.Slice(idx.careers, func(i, j int) bool { return idx.careers[i].Code < idx.careers[j].Code })
	return idx, nil
}

// Returned values never share slices with the index.
func (c Career) clone() Career {
	subjects := make([]Subject, len(c.Subjects))
	for i, s := range c.Subjects {
		subjects[i] = s.clone()
	}
	c.Subjects = subjects
	return c
}

func (s Subject) clone() Subject {
	s.Topics = append([]string(nil), s.Topics...)
	return s
}

func (idx *Index) Career(key string) (Career, bool) {
	entry, ok := idx.byKey[normalize(key)]
	if !ok {
		return Career{}, false
	}
	return entry.career.clone(), true
}

func (idx *Index) Subject(career, subject string) (Subject, bool) {
	entry, ok := idx.byKey[normalize(career)]
	if !ok {
		return Subject{}, false
	}
	s, ok := entry.subjects[normalize(subject)]
	if !ok {
		return Subject{}, false
	}
	return s.subject.clone(), true
}

func (idx *Index) Topic(career, subject, topic string) (string, bool) {
	entry, ok := idx.byKey[normalize(career)]
	if !ok {
		return "", false
	}
	s, ok := entry.subjects[normalize(subject)]
	if !ok {
		return "", false
	}
	name, ok := s.topics[normalize(topic)]
	return name, ok
}

// Careers returns a deep copy of every career, ordered by code.
func (idx *Index) Careers() []Career {
	out := make([]Career, len(idx.careers))
	for i, c := range idx.careers {
		out[i] = c.clone()
	}
	return out
}
