package entities

import "time"

// DateLayout is the wire format of calendar dates such as a release date.
const DateLayout = "2006-01-02"

// VideoGame always references exactly one category and one editor.
type VideoGame struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title" validate:"required,max=255"`
	ReleaseDate time.Time `json:"releaseDate" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Category    *Category `json:"category" validate:"required"`
	Editor      *Editor   `json:"editor" validate:"required"`
}

func (g *VideoGame) Field(name string) any {
	switch name {
	case "id":
		return g.ID
	case "title":
		return g.Title
	case "releaseDate":
		if g.ReleaseDate.IsZero() {
			return nil
		}
		return g.ReleaseDate.Format(DateLayout)
	case "description":
		return g.Description
	case "category":
		// A nil *Category inside an interface would not compare equal to nil.
		if g.Category == nil {
			return nil
		}
		return g.Category
	case "editor":
		if g.Editor == nil {
			return nil
		}
		return g.Editor
	}
	return nil
}
