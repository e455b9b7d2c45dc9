package entities

// Category groups video games by genre.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,max=255"`
}

func (c *Category) Field(name string) any {
	switch name {
	case "id":
		return c.ID
	case "name":
		return c.Name
	}
	return nil
}
