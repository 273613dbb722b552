/*
Ttl reads a Turtle document and re-serializes it, exercising the reader and
writer end to end.

Usage:

	ttl [flags] [FILE]

With no FILE argument, ttl reads from stdin. The flags are:

	--base STRING
		Base IRI to resolve relative references against.

	--validate
		Stop at the first parse error instead of accumulating and
		continuing past it.

	--canonicalize
		Apply numeric literal canonicalization during serialization.

	--lex-only
		Tokenize the input and print one line per token, without parsing.

	--parse-only
		Parse the input and report success/failure without writing output.

	-o, --output FILE
		Write serialized Turtle to FILE instead of stdout.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/turtlelang/ttl/rdf"
	"github.com/turtlelang/ttl/serializer"
	"github.com/turtlelang/ttl/token"
	"github.com/turtlelang/ttl/turtle"
)

var (
	flagBase         = pflag.String("base", "", "base IRI to resolve relative references against")
	flagValidate     = pflag.Bool("validate", false, "stop at the first parse error")
	flagCanonicalize = pflag.Bool("canonicalize", false, "canonicalize numeric literals on output")
	flagLexOnly      = pflag.Bool("lex-only", false, "tokenize only, print tokens, skip parsing")
	flagParseOnly    = pflag.Bool("parse-only", false, "parse only, skip serialization")
	flagOutput       = pflag.StringP("output", "o", "", "write output to FILE instead of stdout")
)

func main() {
	pflag.Parse()

	input, err := readInput(pflag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *flagLexOnly {
		if err := lexOnly(input); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	graph, err := readGraph(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *flagParseOnly {
		fmt.Printf("parsed %d triples\n", graph.Len())
		return
	}

	out := os.Stdout
	if *flagOutput != "" {
		f, err := os.Create(*flagOutput)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	w := serializer.NewWriter(out, serializer.Options{
		BaseURI:          *flagBase,
		StandardPrefixes: true,
		Canonicalize:     *flagCanonicalize,
	})
	w.WriteGraph(graph)
	if _, err := w.WriteEpilogue(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readInput(path string) (string, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}

func readGraph(input string) (*rdf.Graph, error) {
	r := turtle.NewReader()
	return r.ReadAll(input, turtle.Options{
		BaseURI:  *flagBase,
		Validate: *flagValidate,
	})
}

func lexOnly(input string) error {
	lex, err := turtle.NewLexer(input)
	if err != nil {
		return err
	}
	return lex.EachToken(func(tok *token.Token) error {
		fmt.Printf("%-30s %q (line %d)\n", tok.Kind, tok.Value, tok.Line)
		return nil
	})
}
