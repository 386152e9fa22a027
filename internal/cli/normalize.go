package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mrlokans/recruiter/internal/normalize"
)

// NormalizeCommand prints the canonical form of a value, or a catalog's labels.
type NormalizeCommand struct {
	Catalog string
	Value   string
	List    bool
	Labels  bool
}

func NewNormalizeCommand() *NormalizeCommand {
	return &NormalizeCommand{}
}

func (cmd *NormalizeCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)

	fs.StringVar(&cmd.Catalog, "catalog", normalize.CatalogCity, "Catalog: "+strings.Join(normalize.CatalogNames(), ", "))
	fs.StringVar(&cmd.Value, "value", "", "Value to normalize")
	fs.BoolVar(&cmd.List, "list", false, "Treat the value as a comma-separated list")
	fs.BoolVar(&cmd.Labels, "labels", false, "Print the catalog labels instead")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s normalize -catalog <name> -value <text> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s normalize -catalog interestAreas -value \"rh, ti\" -list\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := normalize.Lookup(cmd.Catalog); err != nil {
		return err
	}
	if cmd.Value == "" && !cmd.Labels {
		return fmt.Errorf("required flag -value not provided")
	}

	return nil
}

func (cmd *NormalizeCommand) Run() error {
	catalog, err := normalize.Lookup(cmd.Catalog)
	if err != nil {
		return err
	}

	if cmd.Labels {
		for _, label := range catalog.Labels() {
			fmt.Println(label)
		}
		return nil
	}

	if cmd.List {
		fmt.Println(catalog.NormalizeList(cmd.Value))
	} else {
		fmt.Println(catalog.Normalize(cmd.Value))
	}
	return nil
}
