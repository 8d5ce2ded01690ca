package catalog

import "scanpay_back_end/internal/models"

var seed = []models.Product{
	{
		ID:      "1",
		Barcode: "8901234567890",
		Name:    "Classic Milk Chocolate",
		Price:   45,
		Weight:  100,
		Image:   "https://images.unsplash.com/photo-1581795669633-91b77ad1805d?w=400&h=400&fit=crop",
		Stock:   50,
	},
	{
		ID:      "2",
		Barcode: "8901234567891",
		Name:    "Organic Green Tea",
		Price:   250,
		Weight:  250,
		Image:   "https://images.unsplash.com/photo-1523920290228-4f321a939b4c?w=400&h=400&fit=crop",
		Stock:   30,
	},
	{
		ID:      "3",
		Barcode: "8901234567892",
		Name:    "Whole Wheat Bread",
		Price:   40,
		Weight:  400,
		Image:   "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=400&h=400&fit=crop",
		Stock:   20,
	},
	{
		ID:      "4",
		Barcode: "8901234567893",
		Name:    "Fresh Apple (1kg)",
		Price:   180,
		Weight:  1000,
		Image:   "https://images.unsplash.com/photo-1560806887-1e4cd0b6bcd6?w=400&h=400&fit=crop",
		Stock:   100,
	},
}
