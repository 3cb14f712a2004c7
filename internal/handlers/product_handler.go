package handlers

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"gudang/internal/catalog"
	"gudang/internal/models"
	"gudang/internal/services"
)

const productFields = "name= description= price= stock= rating= category= brand= tags=1,2"

// ProductHandler handles the product editor commands.
type ProductHandler struct {
	catalog *catalog.Catalog
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(c *catalog.Catalog) *ProductHandler {
	return &ProductHandler{
		catalog: c,
	}
}

// RegisterCommands registers the product commands with the router.
func (h *ProductHandler) RegisterCommands(router *Group) {
	productCommands := router.Group("product")
	productCommands.Handle("add", "product add "+productFields, "Create a product", h.HandleCreateProduct)
	productCommands.Handle("edit", "product edit <id> [field=value...]", "Change fields of a product", h.HandleUpdateProduct)
	productCommands.Handle("delete", "product delete <id>", "Delete a product", h.HandleDeleteProduct)
}

// HandleCreateProduct creates a product from field=value arguments.
func (h *ProductHandler) HandleCreateProduct(r *Request) error {
	var form services.ProductForm
	if err := setFormFields(&form, r.Args); err != nil {
		return err
	}
	in, err := services.ParseProductForm(form)
	if err != nil {
		return err
	}

	product, err := h.catalog.CreateProduct(r.Ctx, in)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return err
	}
	fmt.Fprintf(r.Out, "Product %d created\n", product.ID)
	return nil
}

// HandleUpdateProduct overlays field=value arguments on an existing product.
func (h *ProductHandler) HandleUpdateProduct(r *Request) error {
	id, err := parseID(r.Arg(0))
	if err != nil {
		return r.UsageErr()
	}
	row, ok := h.catalog.Row(id)
	if !ok {
		return fmt.Errorf("product with ID %d not found", id)
	}

	form := formFromProduct(row.Product)
	if err := setFormFields(&form, r.Args[1:]); err != nil {
		return err
	}
	in, err := services.ParseProductForm(form)
	if err != nil {
		return err
	}

	if _, err := h.catalog.UpdateProduct(r.Ctx, id, in); err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		return err
	}
	fmt.Fprintf(r.Out, "Product %d updated\n", id)
	return nil
}

// HandleDeleteProduct deletes a product by id.
func (h *ProductHandler) HandleDeleteProduct(r *Request) error {
	id, err := parseID(r.Arg(0))
	if err != nil || len(r.Args) != 1 {
		return r.UsageErr()
	}
	if err := h.catalog.DeleteProduct(r.Ctx, id); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return err
	}
	fmt.Fprintf(r.Out, "Product %d deleted\n", id)
	return nil
}

func formFromProduct(p models.Product) services.ProductForm {
	return services.ProductForm{
		Name:        p.Name,
		Description: p.Description,
		Price:       strconv.Itoa(p.Price),
		Stock:       strconv.Itoa(p.Stock),
		Rating:      p.Rating.String(),
		CategoryID:  p.CategoryID,
		BrandID:     p.BrandID,
		TagIDs:      p.TagIDs(),
	}
}

func setFormFields(form *services.ProductForm, args []string) error {
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("expected field=value, got %q", arg)
		}
		switch strings.ToLower(key) {
		case "name":
			form.Name = value
		case "description":
			form.Description = value
		case "price":
			form.Price = value
		case "stock":
			form.Stock = value
		case "rating":
			form.Rating = value
		case "category":
			id, err := parseID(value)
			if err != nil {
				return fmt.Errorf("category: %w", err)
			}
			form.CategoryID = id
		case "brand":
			id, err := parseID(value)
			if err != nil {
				return fmt.Errorf("brand: %w", err)
			}
			form.BrandID = id
		case "tags":
			ids, err := parseIDList(value)
			if err != nil {
				return fmt.Errorf("tags: %w", err)
			}
			form.TagIDs = ids
		default:
			return fmt.Errorf("unknown field %q", key)
		}
	}
	return nil
}
