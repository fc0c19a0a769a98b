package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jared-cannon/app-registry/internal/services"
)

// printTable writes the listing table as aligned text columns
func printTable(w io.Writer, model services.TableModel) error {
	if model.Empty {
		_, err := fmt.Fprintln(w, model.Placeholder)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\t"+strings.Join(model.Headers[:4], "\t")+"\tWebsite")
	for _, row := range model.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", row.Index, row.Name, row.Company, row.Domain, row.FreeLabel, row.Website)
	}
	return tw.Flush()
}
