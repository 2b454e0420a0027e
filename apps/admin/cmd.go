package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/trezcool/masomo/core/catalog"
)

var (
	errHelp    = errors.New("help provided")
	errInvalid = errors.New("payload is invalid")
)

type commandLine struct {
	cat *catalog.Catalog
	out io.Writer
	in  io.Reader // payload source for `-file -`
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  schemas - list the request schemas and their required fields")
	fmt.Fprintln(cli.out, "  validate -schema NAME -file PAYLOAD.json - validate a JSON payload (- reads stdin)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	validateCmd := flag.NewFlagSet("validate", flag.ContinueOnError)
	validateCmd.SetOutput(cli.out)
	validateSchema := validateCmd.String("schema", "", "The schema name, e.g. user.register.")
	validateFile := validateCmd.String("file", "", "Path to the JSON payload, - for stdin.")

	switch args[1] {
	case "schemas":
		return cli.listSchemas()
	case "validate":
		if err := validateCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *validateSchema == "" || *validateFile == "" {
			validateCmd.Usage()
			return errHelp
		}
		return cli.validate(*validateSchema, *validateFile)
	default:
		cli.printUsage()
		return errHelp
	}
}
