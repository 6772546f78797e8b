package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"handsettle-server/pkg/handerr"
	"handsettle-server/pkg/settlement"
)

var file = flag.String("f", "", "read the hand as JSON from this file instead of stdin")
var verbose = flag.Bool("v", false, "log every action as it is replayed")

func main() {
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	req, err := readRequest()
	if err != nil {
		logger.WithError(err).Fatal("could not read hand")
	}

	result, err := settlement.Settle(logger, req)
	if err != nil {
		logger.WithError(err).WithField("kind", handerr.KindOf(err)).Fatal("could not settle hand")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logger.WithError(err).Fatal("could not write result")
	}
}

func readRequest() (settlement.Request, error) {
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			return settlement.Request{}, err
		}
		defer f.Close()

		return decodeRequest(f)
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return promptRequest(bufio.NewReader(os.Stdin))
	}

	return decodeRequest(os.Stdin)
}

func decodeRequest(r io.Reader) (settlement.Request, error) {
	var req settlement.Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return req, err
	}

	return req, nil
}

func promptRequest(reader *bufio.Reader) (settlement.Request, error) {
	req := settlement.Request{}

	stacks, err := getInput(reader, "Stacks", "1000 1000 1000 1000 1000 1000")
	if err != nil {
		return req, err
	}

	if req.Stacks, err = parseInts(stacks); err != nil {
		return req, err
	}

	for _, p := range []struct {
		question string
		def      string
		dst      *int
	}{
		{"Dealer position", "0", &req.DealerPosition},
		{"Small blind position", "1", &req.SmallBlindPosition},
		{"Big blind position", "2", &req.BigBlindPosition},
	} {
		answer, err := getInput(reader, p.question, p.def)
		if err != nil {
			return req, err
		}

		if *p.dst, err = strconv.Atoi(answer); err != nil {
			return req, fmt.Errorf("%s must be a number: got %q", strings.ToLower(p.question), answer)
		}
	}

	holeCards, err := getInput(reader, "Hole cards, i.e., AsKd QhQc ...", "")
	if err != nil {
		return req, err
	}
	req.HoleCards = strings.Fields(holeCards)

	if req.Actions, err = getInput(reader, "Actions", ""); err != nil {
		return req, err
	}

	if req.BoardCards, err = getInput(reader, "Board", ""); err != nil {
		return req, err
	}

	return req, nil
}

func parseInts(s string) ([]int, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	ints := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("expected a number: got %q", f)
		}

		ints[i] = n
	}

	return ints, nil
}

func getInput(reader *bufio.Reader, question, def string) (string, error) {
	if def != "" {
		fmt.Printf("%s [%s]: ", question, def)
	} else {
		fmt.Printf("%s: ", question)
	}

	str, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}

	str = strings.TrimRight(str, "\r\n")
	if str == "" {
		return def, nil
	}

	return str, nil
}
