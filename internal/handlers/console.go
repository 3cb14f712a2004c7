package handlers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"gudang/internal/catalog"
	"gudang/internal/services"
)

// Console reads command lines and dispatches them to a Router. After each
// command that changed the view, the new counts are printed.
type Console struct {
	router  *Router
	catalog *catalog.Catalog
	prompt  string
}

// NewConsole creates a Console.
func NewConsole(router *Router, c *catalog.Catalog, prompt string) *Console {
	return &Console{
		router:  router,
		catalog: c,
		prompt:  prompt,
	}
}

// Run processes lines from in until EOF, "quit", or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	var changed *catalog.Stats
	unsubscribe := c.catalog.Subscribe(func(_ []catalog.Row, s catalog.Stats) {
		changed = &s
	})
	defer unsubscribe()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, c.prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			return nil
		}

		changed = nil
		if err := c.router.Dispatch(ctx, line, out); err != nil {
			fmt.Fprintln(out, FormatError(err))
		}
		if changed != nil {
			fmt.Fprintln(out, changed)
		}
	}
}

// FormatError renders a command error for the operator.
func FormatError(err error) string {
	var validationErr *services.ValidationError
	var gatewayErr *services.GatewayError
	var usageErr *UsageError
	switch {
	case errors.As(err, &validationErr):
		var b strings.Builder
		b.WriteString("Please fix the following:")
		for _, field := range slices.Sorted(maps.Keys(validationErr.Fields)) {
			fmt.Fprintf(&b, "\n  %s %s", field, validationErr.Fields[field])
		}
		return b.String()
	case errors.Is(err, catalog.ErrStaleView):
		return fmt.Sprintf("Warning: %v (try \"reload\")", err)
	case errors.As(err, &gatewayErr):
		return fmt.Sprintf("Operation failed: %v", gatewayErr)
	case errors.As(err, &usageErr):
		return usageErr.Error()
	case errors.Is(err, services.ErrManagerRequired):
		return "Manager mode required (use \"login\")"
	}
	return "Error: " + err.Error()
}
