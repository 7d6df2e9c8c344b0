package models

type Product struct {
	ID          uint     `gorm:"primaryKey;autoIncrement"         json:"id"`
	Name        *string  `gorm:"type:varchar(100);not null"       json:"name"`
	Description *string  `gorm:"type:varchar(255)"                json:"description"`
	Price       *float64 `gorm:"type:float"                       json:"price"`
	Stock       *int     `gorm:"type:integer"                     json:"stock"`
}

func (Product) TableName() string { return "products" }

// Category is migrated together with Product but has no HTTP surface.
type Category struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"         json:"id"`
	Name        string  `gorm:"type:varchar(100);not null;unique" json:"name"`
	Description *string `gorm:"type:varchar(255)"                json:"description"`
}

func (Category) TableName() string { return "categories" }

// All lists every table owned by the service, in creation order.
func All() []any {
	return []any{&Product{}, &Category{}}
}
