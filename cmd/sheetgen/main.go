// sheetgen renders a MinKNOW sample sheet CSV from a JSON sample export,
// ready to be handed to the sequencer at run start.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/carbocation/pfx"

	"nanocov"
	"nanocov/buildinfo"
	"nanocov/samplesheet"
)

func main() {
	var (
		flowcell = flag.String("flowcell", "", "flow cell id (overrides the export)")
		position = flag.String("position", "", "sequencer position id (overrides the export)")
		kit      = flag.String("kit", "", "library prep kit (overrides the export)")
		product  = flag.String("product", samplesheet.DefaultFlowCellProductCode, "flow cell product code")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: sheetgen [flags] <export.json>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	buildinfo.LogToStderr()

	b, err := os.ReadFile(nanocov.ExpandHome(flag.Arg(0)))
	if err != nil {
		log.Fatalln(err)
	}

	var export struct {
		Run     samplesheet.RunMetadata  `json:"run"`
		Samples []samplesheet.SheetEntry `json:"samples"`
	}
	if err := json.Unmarshal(b, &export); err != nil {
		log.Fatalln(pfx.Err(err))
	}

	if *flowcell != "" {
		export.Run.FlowCellID = *flowcell
	}
	if *position != "" {
		export.Run.PositionID = *position
	}
	if *kit != "" {
		export.Run.Kit = *kit
	}
	if export.Run.FlowCellProductCode == "" {
		export.Run.FlowCellProductCode = *product
	}

	sheet, err := samplesheet.Generate(export.Run, export.Samples)
	if err != nil {
		log.Fatalln(err)
	}

	fmt.Print(sheet)
}
