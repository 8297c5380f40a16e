package types

import "time"

// SampleProducts returns the built-in dataset used when running without
// a live scrape. It mirrors a small filtered laptop listing.
func SampleProducts() []*Product {
	now := time.Now()
	return []*Product{
		{
			Name:         "Apple MacBook Air 13",
			Brand:        "Apple",
			Price:        1099.99,
			Rating:       4.7,
			ReviewsCount: 1280,
			URL:          "https://example.com/1",
			Specs:        map[string]string{"CPU": "M2", "RAM": "8GB", "Storage": "256GB SSD"},
			Reviews: []Review{
				{Text: "Battery life is amazing!", Score: 5},
				{Text: "Keyboard feels great.", Score: 4.5},
			},
			ScrapedAt: now,
		},
		{
			Name:         "Dell XPS 13",
			Brand:        "Dell",
			Price:        1299.00,
			Rating:       4.5,
			ReviewsCount: 980,
			URL:          "https://example.com/2",
			Specs:        map[string]string{"CPU": "Intel i7", "RAM": "16GB", "Storage": "512GB SSD"},
			Reviews: []Review{
				{Text: "Display is outstanding.", Score: 5},
				{Text: "Gets a bit warm.", Score: 3.5},
			},
			ScrapedAt: now,
		},
		{
			Name:         "HP Envy 15",
			Brand:        "HP",
			Price:        999.00,
			Rating:       4.3,
			ReviewsCount: 640,
			URL:          "https://example.com/3",
			Specs:        map[string]string{"CPU": "AMD Ryzen 7", "RAM": "16GB", "Storage": "1TB SSD"},
			Reviews: []Review{
				{Text: "Great performance for price.", Score: 4.5},
				{Text: "Fans are audible under load.", Score: 3.0},
			},
			ScrapedAt: now,
		},
	}
}
