package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"linksim/pkg/linker"
	"linksim/pkg/utils"
)

var version string

func main() {
	var (
		modelPath        string
		why              bool
		asJSON           bool
		functionSections bool
		verbose          bool
		showVersion      bool
	)
	pflag.StringVarP(&modelPath, "file", "f", "", "link model to resolve (yaml)")
	pflag.BoolVar(&why, "why", false, "report why each symbol was included")
	pflag.BoolVar(&asJSON, "json", false, "render the report as JSON")
	pflag.BoolVar(&functionSections, "function-sections", false, "split sections one symbol per section")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "trace resolution steps")
	pflag.BoolVar(&showVersion, "version", false, "print version and exit")
	pflag.Parse()

	if showVersion {
		fmt.Printf("linksim %s\n", version)
		os.Exit(0)
	}
	if modelPath == "" {
		fmt.Fprintf(os.Stderr, "usage: %s -f model.yaml [flags]\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(2)
	}

	data, err := os.ReadFile(modelPath)
	utils.MustNo(err)

	model, err := linker.LoadModel(data)
	utils.MustNo(err)

	cmd, err := model.BuildCommand()
	utils.MustNo(err)

	if functionSections {
		cmd = cmd.FunctionSections()
	}

	log := zap.NewNop()
	if verbose {
		log, err = zap.NewDevelopment()
		utils.MustNo(err)
		defer log.Sync()
	}

	res, err := linker.ResolveWithLogger(cmd, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "link failed: %v\n", err)
		os.Exit(1)
	}

	if asJSON {
		data, err := res.JSON()
		utils.MustNo(err)
		fmt.Printf("%s\n", data)
		return
	}
	fmt.Print(res.Report(why))
}
