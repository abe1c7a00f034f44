package main

import (
	"context"
	"io"

	"github.com/fwojciec/clipdown"
)

// Dependencies holds the services and configuration for command
// execution. Nil services are constructed from the flags at run time.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Fetcher   clipdown.Fetcher
	Extractor clipdown.Extractor
}

// CLI defines the command-line interface structure for Kong. There are
// no subcommands; clipping is the whole program.
type CLI struct {
	URLs []string `arg:"" name:"url" help:"Page URLs to extract."`

	Output string `short:"o" type:"path" help:"Write the result to this file (single URL only)."`
	Dir    string `type:"path" help:"Write one file per page under this directory."`

	Browser  bool   `help:"Render pages in headless Chrome before extraction."`
	Selector string `short:"s" help:"CSS selector overriding automatic content location."`

	NoImages      bool `help:"Drop images from the output."`
	NoLinks       bool `help:"Drop hyperlinks, keeping their text."`
	NoTables      bool `help:"Drop tables from the output."`
	NoFrontmatter bool `help:"Omit the YAML frontmatter header."`

	Category string   `default:"clipped" help:"Frontmatter category."`
	Author   string   `help:"Frontmatter author."`
	Tag      []string `help:"Frontmatter tag (repeatable)."`
	Draft    bool     `help:"Mark the frontmatter as unpublished."`

	Concurrency int  `short:"c" default:"4" help:"Concurrent page limit."`
	Verbose     bool `short:"v" help:"Log fetch and extraction progress."`
}

// options translates the exclusion flags into extraction options.
func (c *CLI) options() clipdown.Options {
	return clipdown.Options{
		IncludeImages:      !c.NoImages,
		IncludeLinks:       !c.NoLinks,
		IncludeTables:      !c.NoTables,
		IncludeFrontmatter: !c.NoFrontmatter,
	}
}

// policy translates the frontmatter flags into a policy.
func (c *CLI) policy() clipdown.FrontmatterPolicy {
	return clipdown.FrontmatterPolicy{
		Category:  c.Category,
		Author:    c.Author,
		Tags:      c.Tag,
		Published: !c.Draft,
	}
}
