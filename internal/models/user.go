package models

// User is a registered account. Password is stored as submitted and never serialized.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Email     string     `gorm:"type:varchar(250);not null" json:"email"`
	Password  string     `gorm:"type:varchar(35);not null" json:"-" swaggerignore:"true"`
	Name      string     `gorm:"type:varchar(250);not null" json:"name"`
	Favorites []Favorite `gorm:"foreignKey:UserID" json:"-" swaggerignore:"true"`
}

func (User) TableName() string { return "users" }

func (u User) String() string { return "<User " + u.Email + ">" }

// Serialize returns the public view of the user.
func (u User) Serialize() map[string]any {
	return map[string]any{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
	}
}
