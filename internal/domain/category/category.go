// Package category holds the category read model. Category lifecycle is
// owned by the directory collaborator; the search engine only resolves and
// lists categories.
package category

import "fmt"

// Category is a business category.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// Validate checks required fields before the record enters the directory.
func (c *Category) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Slug == "" {
		return fmt.Errorf("slug is required")
	}
	return nil
}
