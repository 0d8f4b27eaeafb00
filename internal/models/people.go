package models

// People is a single character; the table keeps the plural name.
type People struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(250);not null" json:"name"`
	Description *string    `gorm:"type:varchar(250)" json:"description"`
	Favorites   []Favorite `gorm:"foreignKey:PeopleID" json:"-" swaggerignore:"true"`
}

func (People) TableName() string { return "people" }

func (p People) String() string { return "<People " + p.Name + ">" }

func (p People) Serialize() map[string]any {
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
	}
}
