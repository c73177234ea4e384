package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"

	"github.com/spacemeshos/steg"
	"github.com/spacemeshos/steg/pixels"
)

type testCase struct {
	width, height int
	// Fraction of the carrier's max payload to embed.
	fill float64
}

func main() {
	side := flag.Int("side", 1024, "side of the largest square carrier, in pixels")
	single := flag.Bool("single", false, "whether to execute a single test instead of the complete set")
	flag.Parse()

	log.Printf("bench config: side: %v", *side)

	cases := genTestCases(*side, *single)
	data := make([][]string, 0, len(cases))
	for i, tc := range cases {
		log.Printf("test %v/%v starting...", i+1, len(cases))
		tStart := time.Now()

		grid, err := pixels.NewRGB(tc.width, tc.height)
		if err != nil {
			panic(err)
		}
		rand.Read(grid.Pix)

		payload := make([]byte, uint64(float64(steg.MaxPayload(grid))*tc.fill))
		rand.Read(payload)

		t := time.Now()
		if err := steg.Embed(grid, payload); err != nil {
			panic(err)
		}
		eEmbed := time.Since(t)

		t = time.Now()
		extracted, err := steg.Extract(grid)
		if err != nil {
			panic(err)
		}
		eExtract := time.Since(t)

		if len(extracted) != len(payload) {
			panic(fmt.Sprintf("extracted %d bytes, expected %d", len(extracted), len(payload)))
		}

		log.Printf("test %v/%v completed, %v", i+1, len(cases), time.Since(tStart))

		data = append(data, []string{
			fmt.Sprintf("%dx%d", tc.width, tc.height),
			strconv.FormatUint(steg.Capacity(grid), 10),
			bytefmt.ByteSize(uint64(len(payload))),
			eEmbed.Round(time.Microsecond).String(),
			eExtract.Round(time.Microsecond).String(),
		})
	}

	header := []string{"carrier", "slots", "payload", "embed", "extract"}
	report(header, data)
}

func report(header []string, data [][]string) {
	fmt.Printf("\n\nBENCHMARKS:\n")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()
}

func genTestCases(side int, single bool) []testCase {
	cases := make([]testCase, 0)

	if single {
		return append(cases, testCase{width: side, height: side, fill: 1})
	}

	// Growing carriers, saturated.
	for s := 16; s <= side; s <<= 1 {
		cases = append(cases, testCase{width: s, height: s, fill: 1})
	}

	// Fixed carrier, growing payload.
	for _, fill := range []float64{0, 0.25, 0.5, 0.75} {
		cases = append(cases, testCase{width: side, height: side, fill: fill})
	}

	// Degenerate shapes.
	cases = append(cases,
		testCase{width: side * side, height: 1, fill: 1},
		testCase{width: 1, height: side * side, fill: 1},
	)

	return cases
}
