package media

import (
	"path"
	"sort"

	"portfolio/internal/storage"
)

// Orphans returns the paths of files under folder that no media item
// references, sorted. Folder placeholders (objects without an id) are skipped.
func Orphans(folder string, objects []storage.Object, referenced []string) []string {
	used := make(map[string]struct{}, len(referenced))
	for _, p := range referenced {
		used[p] = struct{}{}
	}

	var orphans []string
	for _, obj := range objects {
		if obj.ID == "" {
			continue
		}
		p := path.Join(folder, obj.Name)
		if _, ok := used[p]; !ok {
			orphans = append(orphans, p)
		}
	}
	sort.Strings(orphans)
	return orphans
}
