package domain

import (
	"fmt"
	"strings"
)

type Project struct {
	ID   string
	Name string
}

// Validate checks that the project carries an ID and a non-blank name.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("project id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project %q: name is required", p.ID)
	}
	return nil
}

// DisplayName returns the name, falling back to the ID when the name is empty.
func (p *Project) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
