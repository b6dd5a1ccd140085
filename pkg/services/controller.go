package services

import (
	"github.com/kerbaras/ucfprep/pkg/config"
	"github.com/kerbaras/ucfprep/pkg/integrations"
	"github.com/kerbaras/ucfprep/pkg/sources"
)

// Controller builds the tools from a configuration, sharing one runner and
// one set of options between them.
type Controller struct {
	cfg    config.Config
	runner integrations.Runner
	opts   Options
}

func NewController(cfg config.Config, runner integrations.Runner, opts Options) *Controller {
	return &Controller{cfg: cfg, runner: runner, opts: opts}
}

// Tools returns the binaries the fetcher will invoke.
func (c *Controller) Tools() []string {
	return []string{c.cfg.Wget, c.cfg.Unrar, c.cfg.Unzip}
}

func (c *Controller) Fetcher(opts FetchOptions) *Fetcher {
	opts.Options = c.opts

	wget := integrations.NewWget(c.runner)
	wget.Binary = c.cfg.Wget
	unrar := integrations.NewUnrar(c.runner)
	unrar.Binary = c.cfg.Unrar
	unzip := integrations.NewUnzip(c.runner)
	unzip.Binary = c.cfg.Unzip

	return NewFetcher(wget, map[sources.Format]integrations.Extractor{
		sources.FormatRar: unrar,
		sources.FormatZip: unzip,
	}, opts)
}

func (c *Controller) Copier() *Copier {
	return NewCopier(c.opts)
}

func (c *Controller) Splitter() *Splitter {
	return NewSplitter(c.opts)
}
