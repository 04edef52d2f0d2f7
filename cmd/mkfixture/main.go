// mkfixture creates a small representative EF fixture from a larger file.
// Two-pass: first scans all lines to rank case ids, then keeps every line of
// the best N ids. Ids carrying a target code come first. Output is UTF-8.
// Usage: go run ./cmd/mkfixture --in testdata/ef-202401.txt --out testdata/ef-small.txt --cases 50
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/gyeh/tanshu3/internal/efread"
	"github.com/gyeh/tanshu3/internal/rules"
)

func main() {
	in := flag.String("in", "testdata/ef.txt", "input EF file")
	out := flag.String("out", "testdata/ef-small.txt", "output EF file")
	maxCases := flag.Int("cases", 50, "max case ids to keep")
	encName := flag.String("encoding", "auto", "input encoding: auto, utf-8 or shift_jis")
	checkOnly := flag.Bool("check", false, "only print stats, don't write")
	flag.Parse()

	enc, err := efread.ParseEncoding(*encName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	f, err := os.Open(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	src, enc, err := efread.Decode(f, enc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode input: %v\n", err)
		os.Exit(1)
	}

	// Pass 1: read ALL lines, note each id's first appearance and whether it
	// carries a target code.
	rs := rules.Default()
	type candidate struct {
		id     string
		target bool
		lines  int
	}
	var (
		header   string
		lines    []string
		lineIDs  []string
		order    []*candidate
		byID     = make(map[string]*candidate)
		total    int
		skipped  int
		targetID int
	)

	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			header = line
			first = false
			continue
		}
		total++
		fact, ok := efread.ExtractLine(line)
		if !ok {
			skipped++
			continue
		}
		c := byID[fact.ID]
		if c == nil {
			c = &candidate{id: fact.ID}
			byID[fact.ID] = c
			order = append(order, c)
		}
		c.lines++
		if fact.Procedure != nil && rs.IsTarget(fact.Procedure.Code) && !c.target {
			c.target = true
			targetID++
		}
		lines = append(lines, line)
		lineIDs = append(lineIDs, fact.ID)
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "read: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Scanned %d lines (%s): %d ids, %d with a target code, %d skipped\n",
		total, enc, len(order), targetID, skipped)
	if *checkOnly {
		return
	}

	// Target-carrying ids first, then the rest, both in first-seen order.
	keep := make(map[string]bool, *maxCases)
	for _, wantTarget := range []bool{true, false} {
		for _, c := range order {
			if len(keep) >= *maxCases {
				break
			}
			if c.target == wantTarget {
				keep[c.id] = true
			}
		}
	}

	outFile, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	defer outFile.Close()

	w := bufio.NewWriter(outFile)
	fmt.Fprintln(w, header)
	written := 0
	for i, line := range lines {
		if keep[lineIDs[i]] {
			fmt.Fprintln(w, line)
			written++
		}
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}

	kept := 0
	for _, c := range order {
		if keep[c.id] && c.target {
			kept++
		}
	}
	fmt.Printf("Wrote %d lines for %d ids (%d with a target code) to %s\n", written, len(keep), kept, *out)
}
