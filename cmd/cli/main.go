package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/RyanColorado04/DjangoSandbox2/internal/models"
	"github.com/RyanColorado04/DjangoSandbox2/internal/store"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	addUserCmd := flag.NewFlagSet("add-user", flag.ExitOnError)
	username := addUserCmd.String("username", "", "Username for the new user")
	password := addUserCmd.String("password", "", "Password for the new user")
	admin := addUserCmd.Bool("admin", false, "Grant admin rights")

	addCategoryCmd := flag.NewFlagSet("add-category", flag.ExitOnError)
	categoryName := addCategoryCmd.String("name", "", "Category name")

	addProductCmd := flag.NewFlagSet("add-product", flag.ExitOnError)
	productName := addProductCmd.String("name", "", "Product name")
	productCategory := addProductCmd.Int("category", 0, "Category ID")
	productPrice := addProductCmd.String("price", "", "Price, e.g. 19.99")
	productDesc := addProductCmd.String("description", "", "Product description")
	productImage := addProductCmd.String("image", "", "Image URL")

	if len(os.Args) < 2 {
		fmt.Println("expected a subcommand: add-user | add-category | add-product")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-user":
		addUserCmd.Parse(os.Args[2:])
		runAddUser(*username, *password, *admin)
	case "add-category":
		addCategoryCmd.Parse(os.Args[2:])
		runAddCategory(*categoryName)
	case "add-product":
		addProductCmd.Parse(os.Args[2:])
		runAddProduct(*productName, *productCategory, *productPrice, *productDesc, *productImage)
	default:
		fmt.Println("unknown subcommand:", os.Args[1])
		os.Exit(1)
	}
}

func openStore() *store.Store {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./storefront.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}
	return db
}

func runAddUser(username, password string, admin bool) {
	if username == "" || password == "" {
		log.Fatal("-username and -password are required")
	}
	db := openStore()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := db.CreateUser(username, string(hashedPassword), admin); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User '%s' created successfully.\n", username)
}

func runAddCategory(name string) {
	if name == "" {
		log.Fatal("-name is required")
	}
	db := openStore()

	category := &models.Category{Name: name}
	if err := db.CreateCategory(category); err != nil {
		log.Fatalf("Failed to create category: %v", err)
	}

	fmt.Printf("Category '%s' created with id %d.\n", name, category.ID)
}

func runAddProduct(name string, categoryID int, priceStr, description, imageURL string) {
	if name == "" || categoryID == 0 || priceStr == "" {
		log.Fatal("-name, -category and -price are required")
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil || !price.IsPositive() {
		log.Fatal("-price must be a positive decimal, e.g. 19.99")
	}
	db := openStore()

	product := &models.Product{
		CategoryID:  categoryID,
		Name:        name,
		Price:       price.Round(2),
		Description: description,
		ImageURL:    imageURL,
	}
	if err := db.CreateProduct(product); err != nil {
		log.Fatalf("Failed to create product: %v", err)
	}

	fmt.Printf("Product '%s' created with id %d.\n", name, product.ID)
}
