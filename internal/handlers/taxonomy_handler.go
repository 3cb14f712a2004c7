package handlers

import (
	"fmt"
	"log"
	"strings"
	"text/tabwriter"

	"gudang/internal/catalog"
	"gudang/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TaxonomyHandler handles the category, brand and tag editor commands.
type TaxonomyHandler struct {
	catalog *catalog.Catalog
}

// NewTaxonomyHandler creates a new TaxonomyHandler.
func NewTaxonomyHandler(c *catalog.Catalog) *TaxonomyHandler {
	return &TaxonomyHandler{
		catalog: c,
	}
}

// RegisterCommands registers list commands on public and the editing commands
// on protected, once per taxonomy kind.
func (h *TaxonomyHandler) RegisterCommands(public, protected *Group) {
	for _, kind := range []models.Kind{models.KindCategory, models.KindBrand, models.KindTag} {
		name := string(kind)
		public.Group(name).Handle("list", name+" list [text...]", "List "+name+" names, optionally filtered", h.handleList(kind))

		editor := protected.Group(name)
		editor.Handle("add", name+" add <name...>", "Create a "+name, h.handleCreate(kind))
		editor.Handle("rename", name+" rename <id> <name...>", "Rename a "+name, h.handleRename(kind))
		editor.Handle("delete", name+" delete <id>", "Delete a "+name, h.handleDelete(kind))
	}
}

func (h *TaxonomyHandler) handleList(kind models.Kind) HandlerFunc {
	return func(r *Request) error {
		result := h.catalog.SearchTerms(kind, strings.Join(r.Args, " "))
		w := tabwriter.NewWriter(r.Out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		for _, term := range result.Terms {
			fmt.Fprintf(w, "%d\t%s\n", term.ID, term.Name)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(r.Out, "Showing %d of %d\n", len(result.Terms), result.Total)
		return nil
	}
}

func (h *TaxonomyHandler) handleCreate(kind models.Kind) HandlerFunc {
	return func(r *Request) error {
		if len(r.Args) == 0 {
			return r.UsageErr()
		}
		term, err := h.catalog.CreateTerm(r.Ctx, kind, strings.Join(r.Args, " "))
		if err != nil {
			log.Printf("Error creating %s: %v", kind, err)
			return err
		}
		fmt.Fprintf(r.Out, "%s %d created\n", capitalize(string(kind)), term.ID)
		return nil
	}
}

func (h *TaxonomyHandler) handleRename(kind models.Kind) HandlerFunc {
	return func(r *Request) error {
		id, err := parseID(r.Arg(0))
		if err != nil || len(r.Args) < 2 {
			return r.UsageErr()
		}
		if err := h.catalog.RenameTerm(r.Ctx, kind, id, strings.Join(r.Args[1:], " ")); err != nil {
			log.Printf("Error renaming %s %d: %v", kind, id, err)
			return err
		}
		fmt.Fprintf(r.Out, "%s %d renamed\n", capitalize(string(kind)), id)
		return nil
	}
}

func (h *TaxonomyHandler) handleDelete(kind models.Kind) HandlerFunc {
	return func(r *Request) error {
		id, err := parseID(r.Arg(0))
		if err != nil || len(r.Args) != 1 {
			return r.UsageErr()
		}
		if err := h.catalog.DeleteTerm(r.Ctx, kind, id); err != nil {
			log.Printf("Error deleting %s %d: %v", kind, id, err)
			return err
		}
		fmt.Fprintf(r.Out, "%s %d deleted\n", capitalize(string(kind)), id)
		return nil
	}
}

func capitalize(s string) string {
	return cases.Title(language.English).String(s)
}
