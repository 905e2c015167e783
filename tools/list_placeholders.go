// list_placeholders prints every {{token}} in a template and whether it sits
// in one run or is split across runs (split tokens lose per-run formatting
// when replaced).
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"cv-customizer/internal/placeholder"
	"cv-customizer/pkg/docx"
)

func main() {
	in := "resources/template.docx"
	if len(os.Args) > 1 {
		in = os.Args[1]
	}
	d, err := docx.Open(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open template: %v\n", err)
		os.Exit(2)
	}

	occ := placeholder.Inspect(d)
	if len(occ) == 0 {
		fmt.Println("no placeholders found")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOKEN\tLAYOUT\tRUNS\tPARAGRAPH")
	for _, o := range occ {
		runs := fmt.Sprintf("%d", o.Match.Fragment)
		if o.Match.Kind == placeholder.SpansFragments {
			runs = fmt.Sprintf("%d-%d", o.Match.First, o.Match.Last)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%q\n", o.Token, o.Match.Kind, runs, o.Text)
	}
	w.Flush()
}
