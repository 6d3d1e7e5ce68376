package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/integrations-dev/catalog/internal/app"
	"github.com/integrations-dev/catalog/internal/config"
	"github.com/integrations-dev/catalog/internal/repo"
	"github.com/integrations-dev/catalog/internal/ui"
)

type CLI struct {
	NoColor bool       `help:"Disable color output."`
	Root    string     `help:"Integrations checkout to inspect."`
	Repo    string     `help:"Named repo from the config file."`
	Config  string     `help:"Path to the config file."`
	Catalog CatalogCmd `cmd:"" help:"Create a catalog with information about integrations."`
	Columns ColumnsCmd `cmd:"" help:"Describe the catalog columns."`
}

type CatalogCmd struct {
	Checks []string `arg:"" name:"checks" help:"Integrations to inspect, or \"all\"."`
	File   string   `short:"f" help:"Output to file (it will be overwritten), you can pass \"tmp\" to generate a temporary file."`
	Format string   `help:"File format: csv or yaml."`
}

type ColumnsCmd struct{}

type Context struct {
	Root     string
	Settings config.Settings
	Reporter app.Reporter
}

func (c *CatalogCmd) Run(ctx *Context) error {
	output := c.File
	if output == "" {
		output = ctx.Settings.Catalog.Output
	}
	format := c.Format
	if strings.TrimSpace(format) == "" {
		format = ctx.Settings.Catalog.Format
	}
	return app.Catalog(ctx.Root, app.CatalogOptions{
		Checks:   c.Checks,
		Output:   output,
		Format:   format,
		Reporter: ctx.Reporter,
	})
}

func (c *ColumnsCmd) Run(ctx *Context) error {
	return app.Columns(app.ColumnsOptions{Reporter: ctx.Reporter})
}

func main() {
	var cli CLI
	parser := kong.Must(&cli,
		kong.Name("catalog"),
		kong.Description("Report traits of the integrations in a checkout."),
		kong.UsageOnError(),
	)
	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	noColor := cli.NoColor || os.Getenv("NO_COLOR") != ""
	reporter := ui.NewRenderer(ui.Options{NoColor: noColor, Out: os.Stdout, Err: os.Stderr})

	settings, err := config.Load(cli.Config)
	if err != nil {
		reporter.Error(err)
		os.Exit(1)
	}
	root, err := resolveRoot(cli.Root, cli.Repo, settings)
	if err != nil {
		reporter.Error(err)
		os.Exit(1)
	}

	if err := ctx.Run(&Context{Root: root, Settings: settings, Reporter: reporter}); err != nil {
		reporter.Error(err)
		os.Exit(1)
	}
}

// resolveRoot prefers --root, then the configured repo, then the checkout
// enclosing the working directory.
func resolveRoot(override, repoName string, settings config.Settings) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(override) != "" {
		return resolveDir(cwd, override)
	}
	configured, err := settings.RepoPath(repoName)
	if err != nil {
		return "", err
	}
	if configured != "" {
		return resolveDir(cwd, configured)
	}
	return repo.FindRoot(cwd), nil
}

func resolveDir(cwd, path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", path)
	}
	return path, nil
}
