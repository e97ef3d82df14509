package stubserver

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/model"
)

var xccdfIDRgx = regexp.MustCompile(`RHEL-\d+-\d+`)

// Store holds the STIG controls the stub answers from. Safe for
// concurrent use by HTTP handlers.
type Store struct {
	mutex    sync.RWMutex
	controls map[string]model.Control
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{controls: map[string]model.Control{}}
}

// AddDocument indexes every control in doc, replacing controls that
// share an ID. Returns the number of controls indexed.
func (s *Store) AddDocument(doc model.Document) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, control := range doc.Controls {
		if control.Version == "" {
			control.Version = doc.RHELVersion
		}
		s.controls[strings.ToUpper(control.ID)] = control
	}
	return len(doc.Controls)
}

// LoadFile ingests a STIG document from a local path. JSON documents are
// parsed fully; XCCDF XML is scanned for control identifiers only, which
// is enough to validate the load path end to end.
func (s *Store) LoadFile(path string) (int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		doc, err := model.ReadDocument(path)
		if err != nil {
			return 0, err
		}
		return s.AddDocument(*doc), nil
	case ".xml":
		return s.loadXCCDF(path)
	default:
		return 0, fmt.Errorf("unsupported file type %q: expected .json or .xml", filepath.Ext(path))
	}
}

func (s *Store) loadXCCDF(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	ids := map[string]bool{}
	for _, id := range xccdfIDRgx.FindAllString(strings.ToUpper(string(data)), -1) {
		ids[id] = true
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("no STIG control identifiers found in %s", path)
	}

	doc := model.Document{RHELVersion: ""}
	for id := range ids {
		doc.Controls = append(doc.Controls, model.Control{
			ID:    id,
			Title: "Imported from XCCDF benchmark",
		})
	}
	return s.AddDocument(doc), nil
}

// Len returns the number of indexed controls.
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.controls)
}

// ByStigID looks up a single control by its identifier.
func (s *Store) ByStigID(stigID string) (model.Control, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	control, ok := s.controls[strings.ToUpper(stigID)]
	return control, ok
}

// Search returns controls matching the question, ordered RHEL 9 first
// and then by ID. When rhelVersion is set, controls targeting other
// versions are excluded. A control matches when its ID appears in the
// question or when any question word of four or more characters appears
// in its indexed text.
func (s *Store) Search(question, rhelVersion string, limit int) []model.Control {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	words := searchTerms(question)
	questionUpper := strings.ToUpper(question)

	var matched []model.Control
	for _, control := range s.controls {
		if rhelVersion != "" && control.RHELVersion() != "" && control.RHELVersion() != rhelVersion {
			continue
		}
		if strings.Contains(questionUpper, strings.ToUpper(control.ID)) || matchesTerms(control, words) {
			matched = append(matched, control)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Priority() != matched[j].Priority() {
			return matched[i].Priority() < matched[j].Priority()
		}
		return matched[i].ID < matched[j].ID
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

func searchTerms(question string) []string {
	var terms []string
	for _, word := range strings.Fields(strings.ToLower(question)) {
		word = strings.Trim(word, ".,;:?!\"'()")
		if len(word) >= 4 {
			terms = append(terms, word)
		}
	}
	return terms
}

func matchesTerms(control model.Control, terms []string) bool {
	text := strings.ToLower(control.Text())
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
