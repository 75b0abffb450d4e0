package export

import (
	"fmt"
	"time"

	"github.com/halchemy/bookpath/internal/fileutil"
	"github.com/halchemy/bookpath/internal/recommend"
)

// Document is the JSON export shape for one generated path.
type Document struct {
	GeneratedAt string         `json:"generated_at"`
	Path        recommend.Path `json:"path"`
	Rationale   string         `json:"rationale,omitempty"`
}

// WriteJSON writes the path as a JSON document. It returns whether a file
// was actually written.
func WriteJSON(p recommend.Path, rationale, filePath string, overwrite bool) (bool, error) {
	doc := Document{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Path:        p,
		Rationale:   rationale,
	}

	written, err := fileutil.WriteJSONFile(doc, filePath, overwrite)
	if err != nil {
		return false, fmt.Errorf("failed to write JSON: %w", err)
	}
	return written, nil
}
