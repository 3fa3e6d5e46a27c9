package cluster

import (
	"fmt"
	"sort"
	"strings"
)

// Table is the registry of known clusters. Built-in entries are loaded
// first; site files overlay them by name.
type Table struct {
	clusters map[string]*Defaults
}

// Lookup returns the defaults for the named cluster. An unknown name is an
// error that lists the clusters the table does know.
func (t *Table) Lookup(name string) (*Defaults, error) {
	d, ok := t.clusters[name]
	if !ok {
		return nil, fmt.Errorf("unknown cluster %q (known: %s)", name, strings.Join(t.Names(), ", "))
	}
	return d, nil
}

// Names returns the known cluster names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.clusters))
	for name := range t.clusters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
