package models

import "time"

// Catalog domain models: the three kinds of menu items a client can order.

type FoodType string

const (
	FoodSeafood    FoodType = "seafood"
	FoodRedMeat    FoodType = "red meat"
	FoodWhiteMeat  FoodType = "white meat"
	FoodVegetarian FoodType = "vegetarian"
	FoodPasta      FoodType = "pasta"
	FoodSalad      FoodType = "salad"
	FoodSandwich   FoodType = "sandwich"
	FoodOther      FoodType = "other"
)

var FoodTypes = []string{
	string(FoodSeafood), string(FoodRedMeat), string(FoodWhiteMeat),
	string(FoodVegetarian), string(FoodPasta), string(FoodSalad),
	string(FoodSandwich), string(FoodOther),
}

type BeverageType string

const (
	BeverageWine     BeverageType = "wine"
	BeverageBeer     BeverageType = "beer"
	BeverageCocktail BeverageType = "cocktail"
	BeverageSoda     BeverageType = "soda"
	BeverageJuice    BeverageType = "juice"
)

var BeverageTypes = []string{
	string(BeverageWine), string(BeverageBeer), string(BeverageCocktail),
	string(BeverageSoda), string(BeverageJuice),
}

type Plate struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"not null" json:"name"`
	Description string   `gorm:"type:text;not null" json:"description"`
	Price       float64  `gorm:"type:decimal(10,2);not null" json:"price"`
	Info        *string  `gorm:"type:text" json:"info,omitempty"`
	Type        FoodType `gorm:"size:50;not null;default:'other'" json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Beverage struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"not null" json:"name"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Price       float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	Info        *string      `gorm:"type:text" json:"info,omitempty"`
	Type        BeverageType `gorm:"size:50;not null" json:"type"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Dessert has no type discriminator; the dessert menu is flat.
type Dessert struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Info        *string   `gorm:"type:text" json:"info,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
