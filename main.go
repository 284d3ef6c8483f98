// go-rinex-cn0 reads a RINEX 3 observation file and writes the C/N0
// values recorded on one day to a flat text file called
// yyyymmdd_CN0_data_.txt in the current directory.
//
// The program takes two arguments, the RINEX file and the date, which
// should be in the format yyyy-mm-dd:
//
//	go-rinex-cn0 cat20010.16o 2023-11-02
//
// For the version with flags, an output directory and an event log, see
// apps/rinexcn0.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	AppCore "github.com/goblimey/go-rinex-cn0/apps/appcore"
	"github.com/goblimey/go-rinex-cn0/jsonconfig"
	"github.com/goblimey/go-rinex-cn0/rinex/utils"
)

func main() {

	if len(os.Args) != 3 {
		log.Fatalf("usage: %s file yyyy-mm-dd", os.Args[0])
	}

	targetDate, err := utils.ParseDate(os.Args[2])
	if err != nil {
		log.Fatalf("usage: %s file yyyy-mm-dd - %v", os.Args[0], err)
	}

	// The zero value of the config writes the output file in the current
	// directory and sends warnings to stderr.
	var config jsonconfig.Config
	logger := config.EventLogger("go-rinex-cn0", os.Stderr)

	appCore := AppCore.New(&config, logger)
	result, err := appCore.ConvertFile(context.Background(), os.Args[1], targetDate, "")
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	fmt.Println(result.Summary())
}
