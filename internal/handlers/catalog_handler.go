package handlers

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"text/tabwriter"

	"gudang/internal/catalog"
)

// CatalogHandler handles the read-side commands: listing, search, filters and sort.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{
		catalog: c,
	}
}

// RegisterCommands registers the catalog commands with the router.
func (h *CatalogHandler) RegisterCommands(router *Group) {
	router.Handle("list", "list", "Show the visible products", h.HandleList)
	router.Handle("show", "show <id>", "Show one product", h.HandleShow)
	router.Handle("search", "search [text...]", "Search products; no text clears the search", h.HandleSearch)
	router.Handle("scope", "scope name|all", "Search product names only, or every field", h.HandleScope)
	router.Handle("stats", "stats", "Show product counts", h.HandleStats)
	router.Handle("sort", "sort none|name|price|stock [asc|desc]", "Order the products", h.HandleSort)
	router.Handle("reset", "reset", "Clear search, filters and sort", h.HandleReset)
	router.Handle("reload", "reload", "Read everything from the store again", h.HandleReload)

	filters := router.Group("filter")
	filters.Handle("category", "filter category <id|0>", "Only show one category; 0 clears", h.HandleFilterCategory)
	filters.Handle("brand", "filter brand <id|0>", "Only show one brand; 0 clears", h.HandleFilterBrand)
	filters.Handle("price-from", "filter price-from [amount]", "Lowest price shown, inclusive", h.HandlePriceFrom)
	filters.Handle("price-to", "filter price-to [amount]", "Highest price shown, inclusive", h.HandlePriceTo)
}

// HandleList prints the visible rows followed by the counts.
func (h *CatalogHandler) HandleList(r *Request) error {
	printRows(r.Out, h.catalog.Rows())
	fmt.Fprintln(r.Out, h.catalog.Stats())
	return nil
}

// HandleShow prints every field of one product.
func (h *CatalogHandler) HandleShow(r *Request) error {
	id, err := parseID(r.Arg(0))
	if err != nil || len(r.Args) != 1 {
		return r.UsageErr()
	}
	row, ok := h.catalog.Row(id)
	if !ok {
		return fmt.Errorf("product with ID %d not found", id)
	}

	w := tabwriter.NewWriter(r.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%d\n", row.ID)
	fmt.Fprintf(w, "Name:\t%s\n", row.Name)
	fmt.Fprintf(w, "Description:\t%s\n", row.Description)
	fmt.Fprintf(w, "Price:\t%d\n", row.Price)
	fmt.Fprintf(w, "Stock:\t%d\n", row.Stock)
	fmt.Fprintf(w, "Rating:\t%s\n", row.Rating.StringFixed(1))
	fmt.Fprintf(w, "Category:\t%s\n", row.CategoryName)
	fmt.Fprintf(w, "Brand:\t%s\n", row.BrandName)
	fmt.Fprintf(w, "Tags:\t%s\n", strings.Join(row.TagNames, ", "))
	fmt.Fprintf(w, "Created:\t%s\n", row.CreatedAt)
	return w.Flush()
}

// HandleSearch sets the free-text query.
func (h *CatalogHandler) HandleSearch(r *Request) error {
	h.catalog.SetQuery(strings.Join(r.Args, " "))
	return nil
}

// HandleScope switches between name-only and all-field search.
func (h *CatalogHandler) HandleScope(r *Request) error {
	scope, ok := catalog.ParseSearchScope(r.Arg(0))
	if !ok || len(r.Args) != 1 {
		return r.UsageErr()
	}
	h.catalog.SetSearchScope(scope)
	return nil
}

// HandleStats prints the counts line.
func (h *CatalogHandler) HandleStats(r *Request) error {
	fmt.Fprintln(r.Out, h.catalog.Stats())
	return nil
}

// HandleSort replaces the active ordering.
func (h *CatalogHandler) HandleSort(r *Request) error {
	if len(r.Args) == 0 || len(r.Args) > 2 {
		return r.UsageErr()
	}
	s, err := catalog.ParseSort(r.Arg(0), r.Arg(1))
	if err != nil {
		return err
	}
	h.catalog.SortBy(s)
	return nil
}

// HandleReset clears every filter criterion and the sort.
func (h *CatalogHandler) HandleReset(r *Request) error {
	h.catalog.ResetFilters()
	return nil
}

// HandleReload reads the catalog from the store again.
func (h *CatalogHandler) HandleReload(r *Request) error {
	if err := h.catalog.Reload(r.Ctx); err != nil {
		log.Printf("Error reloading catalog: %v", err)
		return err
	}
	return nil
}

// HandleFilterCategory filters by category id.
func (h *CatalogHandler) HandleFilterCategory(r *Request) error {
	id, err := parseID(r.Arg(0))
	if err != nil || len(r.Args) != 1 {
		return r.UsageErr()
	}
	h.catalog.SetCategory(id)
	return nil
}

// HandleFilterBrand filters by brand id.
func (h *CatalogHandler) HandleFilterBrand(r *Request) error {
	id, err := parseID(r.Arg(0))
	if err != nil || len(r.Args) != 1 {
		return r.UsageErr()
	}
	h.catalog.SetBrand(id)
	return nil
}

// HandlePriceFrom sets the lower price bound. Text that is not a whole
// number leaves the bound unset.
func (h *CatalogHandler) HandlePriceFrom(r *Request) error {
	h.catalog.SetPriceFrom(r.Arg(0))
	return nil
}

// HandlePriceTo sets the upper price bound.
func (h *CatalogHandler) HandlePriceTo(r *Request) error {
	h.catalog.SetPriceTo(r.Arg(0))
	return nil
}

func printRows(out io.Writer, rows []catalog.Row) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tBRAND\tPRICE\tSTOCK\tRATING\tTAGS")
	for _, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			row.ID, row.Name, row.CategoryName, row.BrandName,
			row.Price, row.Stock, row.Rating.StringFixed(1), strings.Join(row.TagNames, ","))
	}
	w.Flush()
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}

func parseIDList(s string) ([]uint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var ids []uint
	for _, part := range strings.Split(s, ",") {
		id, err := parseID(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
