package entities

// Editor is the publisher of a video game.
type Editor struct {
	ID      int64  `json:"id"`
	Name    string `json:"name" validate:"required,max=255"`
	Country string `json:"country" validate:"max=255"`
}

func (e *Editor) Field(name string) any {
	switch name {
	case "id":
		return e.ID
	case "name":
		return e.Name
	case "country":
		return e.Country
	}
	return nil
}
