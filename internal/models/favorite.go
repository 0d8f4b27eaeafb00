package models

import "fmt"

// Favorite links a user to a planet and a character. Every reference is optional
// and none is checked against the referenced table.
type Favorite struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	UserID   *uint `gorm:"index" json:"user_id"`
	PlanetID *uint `json:"planet_id"`
	PeopleID *uint `gorm:"column:character_id" json:"people_id"`
}

func (Favorite) TableName() string { return "favorites" }

func (f Favorite) String() string { return fmt.Sprintf("<Favorites %d>", f.ID) }

func (f Favorite) Serialize() map[string]any {
	return map[string]any{
		"id":        f.ID,
		"user_id":   f.UserID,
		"planet_id": f.PlanetID,
		"people_id": f.PeopleID,
	}
}

// Serializer is implemented by every model exposed over HTTP.
type Serializer interface {
	Serialize() map[string]any
}

// SerializeAll maps Serialize over items.
func SerializeAll[T Serializer](items []T) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, item.Serialize())
	}
	return out
}
