// Command sqllint fails when a SQL constant lacks a unique audit marker.
//
//	go run ./cmd/sqllint ./internal/sqlinline
package main

import (
	"flag"
	"fmt"
	"os"

	"garage/internal/tools/sqllint"
)

func main() {
	flag.Parse()
	targets := flag.Args()
	if len(targets) == 0 {
		targets = []string{"."}
	}

	res, err := sqllint.Lint(targets...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sqllint: %v\n", err)
		os.Exit(1)
	}
	if len(res.Violations) > 0 {
		fmt.Fprintln(os.Stderr, "sqllint: missing SQL audit markers")
		for _, v := range res.Violations {
			fmt.Fprintf(os.Stderr, "  %s\n", v)
		}
		os.Exit(1)
	}
	fmt.Printf("sqllint: %d queries ok\n", res.Checked)
}
