package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/stopshape/gtfs"
)

var (
	out     = flag.String("out", "gtfs_package_profile.pb.gz", "file path to output the profile to")
	collect = flag.Bool("collect-errors", false, "skip rows that fail to parse instead of failing")
	rounds  = flag.Int("rounds", 1, "number of times each feed is parsed")
)

func main() {
	if err := run(); err != nil {
		fmt.Println("failed:", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	opts := gtfs.ParseStaticOptions{}
	if *collect {
		opts.Strategy = gtfs.CollectErrors
	}
	var gtfsBytes [][]byte
	for _, gtfsFile := range flag.Args() {
		b, err := os.ReadFile(gtfsFile)
		if err != nil {
			return err
		}
		gtfsBytes = append(gtfsBytes, b)
	}

	fmt.Println("starting profile")
	var profile bytes.Buffer
	if err := pprof.StartCPUProfile(&profile); err != nil {
		return err
	}
	for round := 0; round < *rounds; round++ {
		for i, in := range gtfsBytes {
			fmt.Printf("round %d: parsing feed %d/%d\n", round+1, i+1, len(gtfsBytes))
			static, err := gtfs.ParseStatic(in, opts)
			if err != nil {
				pprof.StopCPUProfile()
				return err
			}
			var length float64
			for _, shape := range static.Shapes {
				length += shape.Length()
			}
			fmt.Printf("  %d stops, %d shapes, total shape length %.3f deg\n", len(static.Stops), len(static.Shapes), length)
		}
	}
	pprof.StopCPUProfile()

	fmt.Println("writing profile to", *out)
	return os.WriteFile(*out, profile.Bytes(), 0644)
}
