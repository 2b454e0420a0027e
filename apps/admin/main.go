package main

import (
	"log"
	"os"

	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/catalog"
	logsvc "github.com/trezcool/masomo/services/logger"
)

func main() {
	stdLogger := log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	if err != nil {
		stdLogger.Fatal(err)
	}
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(false) // CLI usage is not worth reporting

	cat, err := catalog.Open(conf.Catalog.Path)
	if err != nil {
		logger.Fatal("loading schema catalog", err)
	}

	// start CLI
	cli := commandLine{cat: cat, out: os.Stdout, in: os.Stdin}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp && err != errInvalid {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}
}
