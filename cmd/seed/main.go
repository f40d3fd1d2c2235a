package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/Ginagitwhat123/PaganiniViolin/config"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS product_category (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS product_brand (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS product (
		id SERIAL PRIMARY KEY,
		product_name TEXT NOT NULL,
		price NUMERIC NOT NULL DEFAULT 0,
		discount_price NUMERIC,
		description TEXT NOT NULL DEFAULT '',
		category_id INTEGER NOT NULL REFERENCES product_category(id),
		brand_id INTEGER NOT NULL REFERENCES product_brand(id)
	)`,
	`CREATE TABLE IF NOT EXISTS product_picture (
		id SERIAL PRIMARY KEY,
		product_id INTEGER NOT NULL REFERENCES product(id),
		picture_url TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS product_size (
		id SERIAL PRIMARY KEY,
		product_id INTEGER NOT NULL REFERENCES product(id),
		size TEXT NOT NULL DEFAULT '',
		stock INTEGER NOT NULL DEFAULT 0
	)`,
}

type seedProduct struct {
	name     string
	price    float64
	discount float64 // 0 = no markdown
	category string
	brand    string
	sizes    map[string]int
}

var categories = []string{"小提琴", "中提琴", "大提琴", "琴弓", "琴盒"}

var brands = []string{"Stentor", "Yamaha", "GEWA", "Eastman", "Karl Höfner"}

var products = []seedProduct{
	{"Stentor Student I 小提琴", 5200, 4680, "小提琴", "Stentor", map[string]int{"4/4": 8, "3/4": 5, "1/2": 3}},
	{"Stentor Conservatoire 小提琴", 12800, 0, "小提琴", "Stentor", map[string]int{"4/4": 4, "3/4": 2}},
	{"Yamaha V5 小提琴", 15600, 13900, "小提琴", "Yamaha", map[string]int{"4/4": 6, "3/4": 6, "1/2": 2}},
	{"Yamaha V10SG 小提琴", 48000, 0, "小提琴", "Yamaha", map[string]int{"4/4": 2}},
	{"GEWA Allegro 小提琴", 22500, 19800, "小提琴", "GEWA", map[string]int{"4/4": 3, "3/4": 1}},
	{"Eastman VL80 小提琴", 9800, 0, "小提琴", "Eastman", map[string]int{"4/4": 10, "3/4": 7}},
	{"Karl Höfner H5 小提琴", 36000, 32400, "小提琴", "Karl Höfner", map[string]int{"4/4": 2, "3/4": 1}},
	{"Yamaha VA5 中提琴", 19800, 0, "中提琴", "Yamaha", map[string]int{"16\"": 3, "15.5\"": 4}},
	{"Eastman VA100 中提琴", 16500, 14850, "中提琴", "Eastman", map[string]int{"16\"": 2, "15\"": 3}},
	{"GEWA Ideale 中提琴", 28000, 0, "中提琴", "GEWA", map[string]int{"16\"": 1}},
	{"Yamaha VC5 大提琴", 62000, 55800, "大提琴", "Yamaha", map[string]int{"4/4": 2, "3/4": 1}},
	{"Eastman VC100 大提琴", 45000, 0, "大提琴", "Eastman", map[string]int{"4/4": 3}},
	{"Stentor Student II 大提琴", 31500, 28300, "大提琴", "Stentor", map[string]int{"4/4": 2, "3/4": 2, "1/2": 1}},
	{"GEWA Carbon 琴弓", 8600, 0, "琴弓", "GEWA", map[string]int{"": 12}},
	{"Eastman 巴西木琴弓", 4200, 3780, "琴弓", "Eastman", map[string]int{"": 15}},
	{"Karl Höfner 八角琴弓", 11200, 0, "琴弓", "Karl Höfner", map[string]int{"": 6}},
	{"GEWA Air 琴盒", 13500, 12150, "琴盒", "GEWA", map[string]int{"": 7}},
	{"Yamaha 輕量琴盒", 6800, 0, "琴盒", "Yamaha", map[string]int{"": 9}},
}

// main populates a demo catalog.
// Usage: go run cmd/seed/main.go
// This is a standalone CLI tool, not part of the main application
func main() {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("PAGANINI VIOLIN - Catalog Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	config.InitDB()
	defer config.CloseDB()
	log.Println("✓ Connected to database")

	ctx := context.Background()
	db := config.StoreDB

	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			log.Fatalf("Failed to create schema: %v", err)
		}
	}
	log.Println("✓ Schema ready")

	categoryIDs := make(map[string]int)
	for _, name := range categories {
		var id int
		err := db.QueryRow(ctx,
			`INSERT INTO product_category (name) VALUES ($1)
			 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`, name).Scan(&id)
		if err != nil {
			log.Fatalf("Failed to seed category %q: %v", name, err)
		}
		categoryIDs[name] = id
	}
	log.Printf("✓ Seeded %d categories", len(categories))

	brandIDs := make(map[string]int)
	for _, name := range brands {
		var id int
		err := db.QueryRow(ctx,
			`INSERT INTO product_brand (name) VALUES ($1)
			 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`, name).Scan(&id)
		if err != nil {
			log.Fatalf("Failed to seed brand %q: %v", name, err)
		}
		brandIDs[name] = id
	}
	log.Printf("✓ Seeded %d brands", len(brands))

	seeded := 0
	for i, p := range products {
		var discount *float64
		if p.discount > 0 {
			discount = &p.discount
		}

		var productID int
		err := db.QueryRow(ctx,
			`INSERT INTO product (product_name, price, discount_price, description, category_id, brand_id)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			p.name, p.price, discount,
			fmt.Sprintf("%s，由 %s 出品。", p.name, p.brand),
			categoryIDs[p.category], brandIDs[p.brand],
		).Scan(&productID)
		if err != nil {
			log.Fatalf("Failed to seed product %q: %v", p.name, err)
		}

		// two pictures per product: "-1." default, "-2." hover
		for _, suffix := range []string{"-1.jpg", "-2.jpg"} {
			pictureURL := fmt.Sprintf("p%03d%s", i+1, suffix)
			if _, err := db.Exec(ctx,
				`INSERT INTO product_picture (product_id, picture_url) VALUES ($1, $2)`,
				productID, pictureURL); err != nil {
				log.Fatalf("Failed to seed picture for %q: %v", p.name, err)
			}
		}

		for size, stock := range p.sizes {
			if _, err := db.Exec(ctx,
				`INSERT INTO product_size (product_id, size, stock) VALUES ($1, $2, $3)`,
				productID, size, stock); err != nil {
				log.Fatalf("Failed to seed size for %q: %v", p.name, err)
			}
		}
		seeded++
	}

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("✅ Catalog Seeded Successfully!")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Printf("Categories: %d\n", len(categories))
	fmt.Printf("Brands:     %d\n", len(brands))
	fmt.Printf("Products:   %d\n", seeded)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("1. Start the storefront server: go run main.go")
	fmt.Println("2. Browse GET /api/v1/store/products")
}
