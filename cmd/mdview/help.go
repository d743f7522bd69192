package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdview <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render Markdown, JSON or text files to safe HTML")
	fmt.Fprintln(w, "  rules      List the security filter rules")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A file argument without a command runs render.")
	fmt.Fprintln(w, "Run 'mdview help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdview render [flags] <file|dir|->...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render files to HTML fragments. Directories are walked for")
	fmt.Fprintln(w, ".md, .markdown, .txt and .json files. '-' reads stdin and")
	fmt.Fprintln(w, "requires --type.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File, directory or '-' (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .html file or directory (default: stdout)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -t, --type <s>            Content type: markdown, json, text, remote")
	fmt.Fprintln(w, "  -e, --engine <s>          Markdown engine: builtin, goldmark")
	fmt.Fprintln(w, "      --highlight           Syntax-highlight fenced code")
	fmt.Fprintln(w, "      --sanitize            Sanitize rendered HTML")
	fmt.Fprintln(w, "      --max-size <n>        Maximum input size in bytes (0 = unlimited)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page                Wrap output in a standalone HTML document")
	fmt.Fprintln(w, "      --css <path>          Stylesheet inlined into --page output")
	fmt.Fprintln(w, "  -s, --style <name>        Page style: default, dark, plain, or NAME.css in --style-dir")
	fmt.Fprintln(w, "      --style-dir <dir>     Directory searched for --style before built-ins")
	fmt.Fprintln(w, "      --highlight-theme <s> Chroma theme for highlighted code (default: github)")
	fmt.Fprintln(w, "      --base-url <url>      Resolve relative links and images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok, 1 error, 2 usage or config, 3 I/O, 4 content rejected")
}

// printRulesUsage prints usage for the rules command.
func printRulesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdview rules [--kind <kind>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the security filter rules in evaluation order.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -k, --kind <s>            Only list call, superglobal, injection or active rules")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "rules":
		printRulesUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdview version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdview help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
