package tracker

import (
	"context"
	"sort"
	"strings"
)

// ListClients returns the distinct client names observed in the store,
// sorted lexicographically. Repeated calls against unchanged data produce
// identical output, so callers may treat the result as cacheable.
func (s *Service) ListClients(ctx context.Context) ([]string, error) {
	col, err := s.store.ReadColumn(ctx, s.cfg.ClientColumn)
	if err != nil {
		return nil, &StorageError{Op: "read " + s.cfg.ClientColumn, Err: err}
	}

	seen := make(map[string]bool, len(col))
	clients := make([]string, 0, len(col))
	for _, name := range col {
		if strings.TrimSpace(name) == "" || seen[name] {
			continue
		}
		seen[name] = true
		clients = append(clients, name)
	}
	sort.Strings(clients)
	return clients, nil
}

// FilterClients narrows the directory to names containing q, ignoring case.
// This is the autocomplete match; aggregation itself stays case-sensitive.
// An empty q returns the full directory.
func (s *Service) FilterClients(ctx context.Context, q string) ([]string, error) {
	clients, err := s.ListClients(ctx)
	if err != nil || q == "" {
		return clients, err
	}

	needle := strings.ToLower(q)
	matched := make([]string, 0, len(clients))
	for _, name := range clients {
		if strings.Contains(strings.ToLower(name), needle) {
			matched = append(matched, name)
		}
	}
	return matched, nil
}
