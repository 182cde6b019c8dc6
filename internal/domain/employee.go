package domain

import (
	"fmt"
	"strings"
)

type Employee struct {
	ID        string
	FirstName string
	LastName  string
}

// Name returns the display name "First Last".
func (e *Employee) Name() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func (e *Employee) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("employee id is required")
	}
	if e.Name() == "" {
		return fmt.Errorf("employee %q: name is required", e.ID)
	}
	return nil
}
