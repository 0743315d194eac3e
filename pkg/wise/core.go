package wise

import (
	"fmt"
	"strings"

	"codeberg.org/miketth/wise/pkg/bundleid"
)

// CoreSet is the set of applications whose windows are managed. It is fixed
// at startup.
type CoreSet struct {
	ids map[string]struct{}
}

func NewCoreSet(bundleIDs []string) (CoreSet, error) {
	ids := make(map[string]struct{}, len(bundleIDs))
	for _, raw := range bundleIDs {
		id, err := bundleid.Parse(raw)
		if err != nil {
			return CoreSet{}, fmt.Errorf("core app %q: %w", raw, err)
		}
		ids[id] = struct{}{}
	}

	return CoreSet{ids: ids}, nil
}

func (c CoreSet) Contains(bundleID string) bool {
	_, ok := c.ids[strings.ToLower(bundleID)]
	return ok
}

func (c CoreSet) Len() int {
	return len(c.ids)
}
