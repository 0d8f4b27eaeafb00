package models

type Planet struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(250);not null" json:"name"`
	Description *string    `gorm:"type:varchar(250)" json:"description"`
	Favorites   []Favorite `gorm:"foreignKey:PlanetID" json:"-" swaggerignore:"true"`
}

func (Planet) TableName() string { return "planets" }

func (p Planet) String() string { return "<Planet " + p.Name + ">" }

func (p Planet) Serialize() map[string]any {
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
	}
}
