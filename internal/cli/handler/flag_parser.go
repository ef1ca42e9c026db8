package handler

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todometer/internal/cli"
	"github.com/thenoetrevino/todometer/internal/models"
)

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd *cobra.Command
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command) *FlagParser {
	return &FlagParser{cmd: cmd}
}

// Changed reports whether the flag was given on the command line
func (p *FlagParser) Changed(flagName string) bool {
	return p.cmd.Flags().Changed(flagName)
}

// String extracts a string flag
func (p *FlagParser) String(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", cli.Exit(cli.ExitUsage, fmt.Errorf("failed to parse %s flag: %w", flagName, err))
	}
	return value, nil
}

// Strings extracts a repeatable string flag
func (p *FlagParser) Strings(flagName string) ([]string, error) {
	values, err := p.cmd.Flags().GetStringArray(flagName)
	if err != nil {
		return nil, cli.Exit(cli.ExitUsage, fmt.Errorf("failed to parse %s flag: %w", flagName, err))
	}
	return values, nil
}

// Title extracts a non-empty task title
func (p *FlagParser) Title(flagName string) (string, error) {
	title, err := p.String(flagName)
	if err != nil {
		return "", err
	}
	return title, cli.RequireTitle(title)
}

// Name extracts a non-empty task list name
func (p *FlagParser) Name(flagName string) (string, error) {
	name, err := p.String(flagName)
	if err != nil {
		return "", err
	}
	return name, cli.RequireName(name)
}

// Description extracts a description; "-" reads it from stdin
func (p *FlagParser) Description(flagName string) (string, error) {
	value, err := p.String(flagName)
	if err != nil {
		return "", err
	}
	return cli.ReadDescription(p.cmd, value)
}

// Tag extracts a tag; an empty flag yields fallback
func (p *FlagParser) Tag(flagName string, fallback models.Tag) (models.Tag, error) {
	value, err := p.String(flagName)
	if err != nil {
		return "", err
	}
	return cli.ParseTag(value, fallback)
}

// Due extracts an optional due date
func (p *FlagParser) Due(flagName string) (*time.Time, error) {
	value, err := p.String(flagName)
	if err != nil {
		return nil, err
	}
	return cli.ParseDueDate(value)
}
