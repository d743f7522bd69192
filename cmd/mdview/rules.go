package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alnah/go-mdview/internal/security"
	flag "github.com/spf13/pflag"
)

// runRules lists the security rules in evaluation order.
func runRules(args []string, env *Environment) error {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)
	kind := fs.StringP("kind", "k", "", "only list rules of this kind: call, superglobal, injection, active")
	fs.Usage = func() { printRulesUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: rules takes no arguments", ErrUsage)
	}

	rules := security.Rules()
	if *kind != "" {
		filtered := rules[:0]
		for _, r := range rules {
			if r.Kind.String() == *kind {
				filtered = append(filtered, r)
			}
		}
		if len(filtered) == 0 {
			return fmt.Errorf("%w: unknown rule kind %q", ErrUsage, *kind)
		}
		rules = filtered
	}

	return printRules(env.Stdout, rules)
}

// printRules writes rules as an aligned table.
func printRules(w io.Writer, rules []security.Rule) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tPATTERN")
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Kind, r.Pattern)
	}
	return tw.Flush()
}
