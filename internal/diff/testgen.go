// +build ignore

// Command testgen checks the unified diff of body text against the
// system's diff executable. It takes the two files to compare and an
// optional -U flag for the number of context lines. On a mismatch it
// prints the difference between the two outputs and leaves them in
// temporary files, from which a test case for unified_test.go is easily
// written.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"os/exec"
	"strconv"

	"github.com/nicolagi/orgdiff/internal/diff"
	log "github.com/sirupsen/logrus"
)

func main() {
	contextLines := flag.Int("U", diff.DefaultContextLines, "unified context lines")
	verbose := flag.Bool("v", false, "show output when both diffs match")
	flag.Parse()
	if flag.NArg() != 2 {
		log.Fatalf("want 2 args, got %d", flag.NArg())
	}
	left, right := flag.Arg(0), flag.Arg(1)

	// Exit status 1 only means the files differ.
	want, _ := exec.Command("diff",
		"-U", strconv.Itoa(*contextLines),
		"--label", "old", "--label", "new",
		left, right).CombinedOutput()

	lb, err := ioutil.ReadFile(left)
	if err != nil {
		log.Fatal(err)
	}
	rb, err := ioutil.ReadFile(right)
	if err != nil {
		log.Fatal(err)
	}
	var got bytes.Buffer
	if err := diff.UnifiedTo(&got, string(lb), string(rb), "old", "new", *contextLines); err != nil {
		log.Fatal(err)
	}

	wantFile := mustWriteTemp("testgen-want-", want)
	gotFile := mustWriteTemp("testgen-got-", got.Bytes())
	mismatch, _ := exec.Command("diff", "-u", wantFile, gotFile).CombinedOutput()
	if len(mismatch) != 0 {
		fmt.Fprintln(os.Stderr, string(mismatch))
		os.Exit(1)
	}
	log.WithField("bytes", got.Len()).Info("Outputs matched")
	if *verbose {
		fmt.Fprint(os.Stderr, got.String())
	}
	_ = os.Remove(wantFile)
	_ = os.Remove(gotFile)
}

func mustWriteTemp(prefix string, content []byte) string {
	f, err := ioutil.TempFile("", prefix)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := f.Write(content); err != nil {
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	return f.Name()
}
