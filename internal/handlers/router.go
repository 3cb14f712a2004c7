package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-shellwords"
)

// ErrUnknownCommand is returned by Dispatch for a line that matches no command.
var ErrUnknownCommand = errors.New("unknown command")

// UsageError reports malformed arguments for a known command.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "usage: " + e.Usage
}

// Request is one parsed command line.
type Request struct {
	Ctx  context.Context
	Args []string
	Out  io.Writer
	// Usage is the usage line of the matched command.
	Usage string
}

// Arg returns the i-th argument or "".
func (r *Request) Arg(i int) string {
	if i < len(r.Args) {
		return r.Args[i]
	}
	return ""
}

// UsageErr builds the UsageError for the matched command.
func (r *Request) UsageErr() error {
	return &UsageError{Usage: r.Usage}
}

// HandlerFunc runs a command.
type HandlerFunc func(r *Request) error

// Middleware wraps a HandlerFunc.
type Middleware func(HandlerFunc) HandlerFunc

type command struct {
	name    string
	usage   string
	summary string
	handler HandlerFunc
}

// Router maps command names (one or two words) to handlers.
type Router struct {
	commands map[string]command
	parser   *shellwords.Parser
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	p := shellwords.NewParser()
	p.ParseEnv = false
	p.ParseBacktick = false
	return &Router{
		commands: make(map[string]command),
		parser:   p,
	}
}

// Group returns a registrar that prefixes command names and applies mw to
// every command registered through it.
func (rt *Router) Group(prefix string, mw ...Middleware) *Group {
	return &Group{router: rt, prefix: prefix, mw: mw}
}

// Handle registers a command without middleware.
func (rt *Router) Handle(name, usage, summary string, h HandlerFunc) {
	rt.Group("").Handle(name, usage, summary, h)
}

// Dispatch parses line and runs the matching command.
func (rt *Router) Dispatch(ctx context.Context, line string, out io.Writer) error {
	words, err := rt.parser.Parse(line)
	if err != nil {
		return fmt.Errorf("cannot parse command: %w", err)
	}
	if len(words) == 0 {
		return nil
	}
	if words[0] == "help" {
		rt.help(out)
		return nil
	}

	cmd, args, ok := rt.match(words)
	if !ok {
		return fmt.Errorf("%w %q (try \"help\")", ErrUnknownCommand, strings.Join(words, " "))
	}
	return cmd.handler(&Request{Ctx: ctx, Args: args, Out: out, Usage: cmd.usage})
}

func (rt *Router) match(words []string) (command, []string, bool) {
	if len(words) >= 2 {
		if cmd, ok := rt.commands[words[0]+" "+words[1]]; ok {
			return cmd, words[2:], true
		}
	}
	cmd, ok := rt.commands[words[0]]
	return cmd, words[1:], ok
}

func (rt *Router) help(out io.Writer) {
	names := make([]string, 0, len(rt.commands))
	for name := range rt.commands {
		names = append(names, name)
	}
	slices.Sort(names)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, name := range names {
		cmd := rt.commands[name]
		fmt.Fprintf(w, "%s\t%s\n", cmd.usage, cmd.summary)
	}
	w.Flush()
}

// Group registers commands under a shared prefix and middleware chain.
type Group struct {
	router *Router
	prefix string
	mw     []Middleware
}

// Handle registers a command. name is appended to the group prefix.
func (g *Group) Handle(name, usage, summary string, h HandlerFunc) {
	full := strings.TrimSpace(g.prefix + " " + name)
	for i := len(g.mw) - 1; i >= 0; i-- {
		h = g.mw[i](h)
	}
	g.router.commands[full] = command{
		name:    full,
		usage:   usage,
		summary: summary,
		handler: h,
	}
}

// Group returns a nested group that inherits this group's prefix and middleware.
func (g *Group) Group(prefix string, mw ...Middleware) *Group {
	return &Group{
		router: g.router,
		prefix: strings.TrimSpace(g.prefix + " " + prefix),
		mw:     append(slices.Clone(g.mw), mw...),
	}
}
