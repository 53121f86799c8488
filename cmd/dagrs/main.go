// Command dagrs runs a declarative graph document to completion.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/dagrs-dev/dagrs/configsrc"
	"github.com/dagrs-dev/dagrs/content"
	"github.com/dagrs-dev/dagrs/dag"
	"github.com/dagrs-dev/dagrs/dlog"
	yamlparser "github.com/dagrs-dev/dagrs/parser/yaml"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("dagrs", flag.ContinueOnError)
	var (
		yamlPath     = fs.String("yaml", "", "path to the graph document (required unless --config-source is set)")
		configSource = fs.String("config-source", "file", "where the graph document lives: file, redis, postgres, sqlite")
		redisAddr    = fs.String("redis-addr", "127.0.0.1:6379", "redis address, used with --config-source=redis")
		redisKey     = fs.String("redis-key", "", "redis key holding the document, used with --config-source=redis")
		dsn          = fs.String("dsn", "", "connection string, used with --config-source=postgres|sqlite")
		table        = fs.String("table", "", "table name, used with --config-source=postgres|sqlite")
		docName      = fs.String("name", "", "document row name, used with --config-source=postgres|sqlite")
		logLevel     = fs.String("log-level", "info", "log level: debug, info, warn, error, none")
		poolSize     = fs.Int("pool-size", 0, "cap concurrent node execution to this many goroutines (0 = unbounded)")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level, err := dlog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	logger := dlog.NewStdLogger(os.Stderr, level)

	src, err := resolveSource(*configSource, *yamlPath, *redisAddr, *redisKey, *dsn, *table, *docName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	p := yamlparser.New()
	nodes, edges, err := p.ParseTasks(context.Background(), src, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dagrs: parse failed:", err)
		return 1
	}

	g := dag.New()
	g.SetLogger(logger)
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			fmt.Fprintln(os.Stderr, "dagrs:", err)
			return 1
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e.From, e.To); err != nil {
			fmt.Fprintln(os.Stderr, "dagrs:", err)
			return 1
		}
	}

	ctx := context.Background()
	if *poolSize > 0 {
		err = g.StartWithPool(ctx, *poolSize)
	} else {
		err = g.Start(ctx)
	}

	render(os.Stdout, g)

	if err != nil {
		fmt.Fprintln(os.Stderr, "dagrs: run failed:", err)
		return 1
	}
	return 0
}

func resolveSource(kind, yamlPath, redisAddr, redisKey, dsn, table, name string) (configsrc.Source, error) {
	switch kind {
	case "file":
		if yamlPath == "" {
			return nil, fmt.Errorf("dagrs: --yaml is required with --config-source=file")
		}
		return configsrc.File{Path: yamlPath}, nil
	case "redis":
		if redisKey == "" {
			return nil, fmt.Errorf("dagrs: --redis-key is required with --config-source=redis")
		}
		return configsrc.NewRedis(configsrc.RedisOptions{Addr: redisAddr, Key: redisKey}), nil
	case "postgres":
		if dsn == "" {
			return nil, fmt.Errorf("dagrs: --dsn is required with --config-source=postgres")
		}
		return configsrc.NewPostgres(context.Background(), configsrc.PostgresOptions{ConnString: dsn, Table: table, Name: name})
	case "sqlite":
		if dsn == "" {
			return nil, fmt.Errorf("dagrs: --dsn is required with --config-source=sqlite")
		}
		return configsrc.NewSQLite(configsrc.SQLiteOptions{Path: dsn, Table: table, Name: name})
	default:
		return nil, fmt.Errorf("dagrs: unknown --config-source %q", kind)
	}
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

func render(w io.Writer, g *dag.Graph) {
	fmt.Fprintln(w, headerStyle.Render("dagrs run results"))
	outputs := g.Outputs()
	for _, o := range outputs {
		style := successStyle
		label := "ok"
		if !o.IsSuccess() {
			style = failureStyle
			label = "failed"
		}
		payload := ""
		if v, ok := content.Get[string](o.Payload()); ok {
			payload = v
		}
		fmt.Fprintf(w, "  %s  %s\n", style.Render(label), payload)
	}
	if len(outputs) == 0 {
		fmt.Fprintln(w, "  ", pendingStyle.Render("(no node completed)"))
	}
}
