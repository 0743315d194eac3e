package memory

import "codeberg.org/miketth/wise/pkg/geometry"

// DirectiveStore keeps directives for the lifetime of the process.
type DirectiveStore struct {
	directives map[string]geometry.Directive
}

func NewDirectiveStore() *DirectiveStore {
	return &DirectiveStore{
		directives: make(map[string]geometry.Directive),
	}
}

func (s *DirectiveStore) LastDirective(bundleID string) (geometry.Directive, bool, error) {
	directive, ok := s.directives[bundleID]
	return directive, ok, nil
}

func (s *DirectiveStore) SetLastDirective(bundleID string, directive geometry.Directive) error {
	s.directives[bundleID] = directive
	return nil
}
