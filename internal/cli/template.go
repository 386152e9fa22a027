package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/recruiter/internal/importers"
)

// TemplateCommand writes the blank import template with example rows.
type TemplateCommand struct {
	Format     string
	OutputPath string
}

func NewTemplateCommand() *TemplateCommand {
	return &TemplateCommand{}
}

func (cmd *TemplateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("template", flag.ContinueOnError)

	fs.StringVar(&cmd.Format, "format", string(importers.TemplateCSV), "Template format: csv or xlsx")
	fs.StringVar(&cmd.OutputPath, "output", "", "Output file (default: the template file name in the current directory)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s template [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Write the candidate import template.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	format := importers.TemplateFormat(cmd.Format)
	if format != importers.TemplateCSV && format != importers.TemplateXLSX {
		return fmt.Errorf("invalid -format %q: expected csv or xlsx", cmd.Format)
	}
	if cmd.OutputPath == "" {
		cmd.OutputPath = format.FileName()
	}

	return nil
}

func (cmd *TemplateCommand) Run() error {
	file, err := os.Create(cmd.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create template file: %w", err)
	}

	if err := importers.WriteTemplate(file, importers.TemplateFormat(cmd.Format)); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write template file: %w", err)
	}

	fmt.Printf("Template written to %s\n", cmd.OutputPath)
	return nil
}
