package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gudang/internal/catalog"
	"gudang/internal/config"
	"gudang/internal/database"
	"gudang/internal/handlers"
	"gudang/internal/middleware"
	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// App is the wired inventory console.
type App struct {
	DB       *gorm.DB
	Catalog  *catalog.Catalog
	Auth     *services.AuthService
	Router   *handlers.Router
	Products *services.ProductService
	Taxonomy *services.TaxonomyService
}

// NewApp opens the store, wires every layer and loads the catalog.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, err
	}

	// --- Initialize Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	taxonomyRepo := repositories.NewGORMTaxonomyRepository(db)

	// --- Initialize Services ---
	productService := services.NewProductService(productRepo)
	taxonomyService := services.NewTaxonomyService(taxonomyRepo)
	authService := services.NewAuthService(cfg.ManagerPasswordHash)

	if cfg.SeedDemoData {
		if err := seedDemoData(ctx, productService, taxonomyService); err != nil {
			database.Close(db)
			return nil, err
		}
	}

	scope, ok := catalog.ParseSearchScope(cfg.SearchScope)
	if !ok {
		database.Close(db)
		return nil, fmt.Errorf("invalid search scope %q", cfg.SearchScope)
	}
	cat, err := catalog.New(productService, taxonomyService, catalog.Options{Locale: cfg.Locale, Scope: scope})
	if err != nil {
		database.Close(db)
		return nil, err
	}
	if err := cat.Load(ctx); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	// --- Initialize Handlers ---
	router := handlers.NewRouter()
	public := router.Group("")
	managerOnly := router.Group("", middleware.ManagerRequired(authService))

	handlers.NewAuthHandler(authService).RegisterCommands(public)
	handlers.NewCatalogHandler(cat).RegisterCommands(public)
	handlers.NewProductHandler(cat).RegisterCommands(managerOnly)
	handlers.NewTaxonomyHandler(cat).RegisterCommands(public, managerOnly)

	return &App{
		DB:       db,
		Catalog:  cat,
		Auth:     authService,
		Router:   router,
		Products: productService,
		Taxonomy: taxonomyService,
	}, nil
}

// Close releases the database.
func (a *App) Close() error {
	return database.Close(a.DB)
}

// Run serves the console on in and out until EOF, "quit" or ctx is cancelled.
func (a *App) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, a.Catalog.Stats())
	return handlers.NewConsole(a.Router, a.Catalog, "gudang> ").Run(ctx, in, out)
}

func main() {
	if len(os.Args) == 3 && os.Args[1] == "hash-password" {
		hash, err := services.HashPassword(os.Args[2])
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		fmt.Println(hash)
		return
	}

	// --- Configuration ---
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Graceful shutdown handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer app.Close()

	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Console stopped: %v", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down...")
	}
	log.Println("Inventory console stopped")
}

type demoProduct struct {
	name        string
	description string
	price       int
	stock       int
	rating      string
	category    int
	brand       int
	tags        []int
}

// seedDemoData fills an empty store with a small catalog.
func seedDemoData(ctx context.Context, products *services.ProductService, taxonomy *services.TaxonomyService) error {
	existing, err := products.GetAllProducts(ctx)
	if err != nil {
		return err
	}
	snapshot, err := taxonomy.Snapshot(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 || len(snapshot.Categories) > 0 {
		return nil
	}

	create := func(kind models.Kind, names ...string) ([]uint, error) {
		ids := make([]uint, 0, len(names))
		for _, name := range names {
			term, err := taxonomy.CreateTerm(ctx, kind, name)
			if err != nil {
				return nil, fmt.Errorf("failed to seed %s %q: %w", kind, name, err)
			}
			ids = append(ids, term.ID)
		}
		return ids, nil
	}
	categories, err := create(models.KindCategory, "Electronics", "Kitchen", "Stationery")
	if err != nil {
		return err
	}
	brands, err := create(models.KindBrand, "Acme", "Nusantara", "Globex")
	if err != nil {
		return err
	}
	tags, err := create(models.KindTag, "new", "sale", "bestseller")
	if err != nil {
		return err
	}

	demo := []demoProduct{
		{"Laptop", "High performance laptop", 12000, 10, "4.6", 0, 0, []int{0, 2}},
		{"Keyboard", "Mechanical keyboard", 750, 25, "4.2", 0, 2, []int{1}},
		{"Mouse", "Ergonomic wireless mouse", 250, 50, "3.9", 0, 2, nil},
		{"Rice Cooker", "1.8 litre rice cooker", 900, 12, "4.8", 1, 1, []int{2}},
		{"Kettle", "Electric kettle", 400, 0, "3.5", 1, 0, []int{1}},
		{"Notebook", "A5 dotted notebook", 35, 300, "4.0", 2, 1, []int{0}},
	}
	for _, d := range demo {
		in := services.ProductInput{
			Name:        d.name,
			Description: d.description,
			Price:       d.price,
			Stock:       d.stock,
			Rating:      decimal.RequireFromString(d.rating),
			CategoryID:  categories[d.category],
			BrandID:     brands[d.brand],
		}
		for _, t := range d.tags {
			in.TagIDs = append(in.TagIDs, tags[t])
		}
		p, err := products.CreateProduct(ctx, in)
		if err != nil {
			return fmt.Errorf("failed to seed product %q: %w", d.name, err)
		}
		log.Printf("Seeded product: %s (ID: %d)", p.Name, p.ID)
	}
	return nil
}
