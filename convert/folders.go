package convert

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// FolderMap resolves the opaque folder keys notes carry into the
// human-readable folder names from Boostnote's boostnote.json.
type FolderMap struct {
	names map[string]string
}

// LoadFolderMap reads a boostnote.json file. The file is plain JSON of the
// shape {"folders": [{"key": ..., "color": ..., "name": ...}, ...]}.
func LoadFolderMap(fs afero.Fs, path string) (*FolderMap, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading folder map %s", path)
	}

	var file struct {
		Folders []struct {
			Key  string `json:"key"`
			Name string `json:"name"`
		} `json:"folders"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "parsing folder map %s", path)
	}

	m := &FolderMap{names: make(map[string]string, len(file.Folders))}
	for _, folder := range file.Folders {
		m.names[folder.Key] = folder.Name
	}
	return m, nil
}

// Name returns the display name for a folder key. Unknown keys fall back
// to the key itself so notes never get lost; an empty key (a note that was
// never filed) resolves to the empty string, which places the note at the
// output root.
func (m *FolderMap) Name(key string) string {
	if m == nil {
		return key
	}
	if name, ok := m.names[key]; ok {
		return name
	}
	return key
}
