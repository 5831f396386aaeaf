package db

import (
	"github.com/borbabeats/sistema-comandas/internal/models"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

// Seed inserts a small sample menu so a fresh install has something to show.
// Idempotent: items are matched by name, re-running changes nothing.
func Seed(conn *gorm.DB) error {
	plates := []models.Plate{
		{Name: "Moqueca de Camarão", Description: "Shrimp stew with coconut milk and dendê oil", Price: 64.90, Type: models.FoodSeafood},
		{Name: "Picanha Grelhada", Description: "Grilled picanha with rice, beans and vinaigrette", Price: 79.50, Type: models.FoodRedMeat},
		{Name: "Spaghetti al Pomodoro", Description: "Fresh tomato, basil and parmesan", Price: 42.00, Type: models.FoodPasta, Info: strPtr("vegetarian option available")},
		{Name: "Salada Caesar", Description: "Romaine, croutons, parmesan and grilled chicken", Price: 38.00, Type: models.FoodSalad},
	}
	for i := range plates {
		if err := conn.Where(models.Plate{Name: plates[i].Name}).FirstOrCreate(&plates[i]).Error; err != nil {
			return err
		}
	}

	beverages := []models.Beverage{
		{Name: "Caipirinha", Description: "Cachaça, lime and sugar", Price: 24.00, Type: models.BeverageCocktail},
		{Name: "Suco de Laranja", Description: "Freshly squeezed orange juice", Price: 12.00, Type: models.BeverageJuice},
		{Name: "Chopp Pilsen", Description: "Draft lager, 300ml", Price: 14.50, Type: models.BeverageBeer},
		{Name: "Guaraná", Description: "Guaraná soda, 350ml can", Price: 8.00, Type: models.BeverageSoda},
	}
	for i := range beverages {
		if err := conn.Where(models.Beverage{Name: beverages[i].Name}).FirstOrCreate(&beverages[i]).Error; err != nil {
			return err
		}
	}

	desserts := []models.Dessert{
		{Name: "Pudim de Leite", Description: "Classic milk flan with caramel", Price: 16.00},
		{Name: "Petit Gâteau", Description: "Warm chocolate cake with vanilla ice cream", Price: 22.00},
		{Name: "Açaí na Tigela", Description: "Açaí bowl with granola and banana", Price: 19.50},
	}
	for i := range desserts {
		if err := conn.Where(models.Dessert{Name: desserts[i].Name}).FirstOrCreate(&desserts[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
