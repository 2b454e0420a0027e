package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// listSchemas prints one line per catalog schema.
func (cli *commandLine) listSchemas() error {
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCHEMA\tFIELDS\tREQUIRED")
	for _, name := range cli.cat.Names() {
		schema := cli.cat.MustGet(name)
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, strings.Join(schema.Names(), ","), strings.Join(schema.Required(), ","))
	}
	return w.Flush()
}
