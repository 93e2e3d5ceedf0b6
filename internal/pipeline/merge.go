package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/iurcrowd/lawlinks/model"
)

// lawlinksKey returns the object key of a document's lawlinks file
func lawlinksKey(id string) string {
	return "lawlinks/" + id + ".json"
}

// mergeVorinstanzen sets lawlinks.vorinstanzen in a lawlinks document,
// keeping every other field. A nil document starts a new one.
func mergeVorinstanzen(existing []byte, links []model.ResolvedLink) ([]byte, error) {
	if links == nil {
		links = []model.ResolvedLink{}
	}
	encoded, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("encode vorinstanzen: %w", err)
	}

	doc := map[string]json.RawMessage{}
	if existing != nil {
		if err := json.Unmarshal(existing, &doc); err != nil {
			return nil, fmt.Errorf("decode lawlinks document: %w", err)
		}
		if doc == nil {
			doc = map[string]json.RawMessage{}
		}
	}

	section := map[string]json.RawMessage{}
	if raw, ok := doc["lawlinks"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &section); err != nil {
			return nil, fmt.Errorf("decode lawlinks section: %w", err)
		}
	}
	section["vorinstanzen"] = encoded

	if doc["lawlinks"], err = json.Marshal(section); err != nil {
		return nil, fmt.Errorf("encode lawlinks section: %w", err)
	}
	return json.Marshal(doc)
}
