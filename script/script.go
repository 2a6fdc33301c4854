// Package script implements a small line-oriented language for exercising a
// borrow cell: each line is one operation against a single cell holding an
// int64, with the guards obtained along the way accumulated on two stacks
// (read-only and read-write). Scripts drive the ecrin trace and check
// commands as well as the golden tests of this package.
//
// The syntax is one op per line, with blank lines and #-comments ignored:
//
//	borrow            probe a read-only borrow, keep the guard
//	borrowmut         probe a read-write borrow, keep the guard
//	clone             clone the most recent read-only guard
//	release           release the most recent read-only guard
//	releasemut        release the most recent read-write guard
//	set N             write N through the most recent read-write guard
//	get               read through the most recent read-only guard
//	expect STATE      assert the cell state: free, exclusive or shared(N)
//
// The formal grammar is in grammar.ebnf.
package script

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mna/ecrin/cell"
)

// Kind identifies a script operation.
type Kind int

const (
	Invalid Kind = iota
	Borrow
	BorrowMut
	Clone
	Release
	ReleaseMut
	Set
	Get
	Expect
)

var kindNames = [...]string{
	Invalid:    "invalid",
	Borrow:     "borrow",
	BorrowMut:  "borrowmut",
	Clone:      "clone",
	Release:    "release",
	ReleaseMut: "releasemut",
	Set:        "set",
	Get:        "get",
	Expect:     "expect",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// lookupKind returns the Kind named by s, Invalid if there is none.
func lookupKind(s string) Kind {
	for k, name := range kindNames {
		if Kind(k) != Invalid && name == s {
			return Kind(k)
		}
	}
	return Invalid
}

// Pos is the source position of an op.
type Pos struct {
	File string
	Line int
}

func (p Pos) String() string { return fmt.Sprintf("%s:%d", p.File, p.Line) }

// An Op is a single parsed script operation.
type Op struct {
	Kind Kind
	Arg  int64      // Set: the value to write
	Want cell.State // Expect: the asserted state
	Pos  Pos
}

func (o Op) String() string {
	switch o.Kind {
	case Set:
		return fmt.Sprintf("set %d", o.Arg)
	case Expect:
		return fmt.Sprintf("expect %s", o.Want)
	default:
		return o.Kind.String()
	}
}

// ParseFiles is a helper function that parses the script files and returns
// the ops grouped by the file at the same index, and produces any error
// encountered. The error, if non-nil, is guaranteed to implement
// Unwrap() []error.
func ParseFiles(ctx context.Context, files ...string) ([][]Op, error) {
	if len(files) == 0 {
		return nil, nil
	}

	opsByFile := make([][]Op, len(files))
	var errs []error
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		b, err := os.ReadFile(file)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", file, err))
			continue
		}
		ops, err := Parse(file, b)
		opsByFile[i] = ops
		if err != nil {
			errs = append(errs, err)
		}
	}
	return opsByFile, errors.Join(errs...)
}

// Parse parses the script in src, attributing positions to filename. It
// returns the valid ops even when some lines are invalid, along with an
// error that wraps one error per invalid line. The error, if non-nil, is
// guaranteed to implement Unwrap() []error.
func Parse(filename string, src []byte) ([]Op, error) {
	var (
		ops  []Op
		errs []error
		line int
	)

	sc := bufio.NewScanner(bytes.NewReader(src))
	for sc.Scan() {
		line++

		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		op, err := parseOp(Pos{File: filename, Line: line}, fields)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", filename, err))
	}
	return ops, errors.Join(errs...)
}

func parseOp(pos Pos, fields []string) (Op, error) {
	op := Op{Kind: lookupKind(fields[0]), Pos: pos}
	switch op.Kind {
	case Invalid:
		return op, fmt.Errorf("%s: unknown op: %s", pos, fields[0])

	case Set:
		if len(fields) != 2 {
			return op, fmt.Errorf("%s: set: want exactly one argument", pos)
		}
		n, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return op, fmt.Errorf("%s: set: invalid argument: %s", pos, fields[1])
		}
		op.Arg = n

	case Expect:
		if len(fields) != 2 {
			return op, fmt.Errorf("%s: expect: want exactly one argument", pos)
		}
		st, err := parseState(fields[1])
		if err != nil {
			return op, fmt.Errorf("%s: expect: %w", pos, err)
		}
		op.Want = st

	default:
		if len(fields) != 1 {
			return op, fmt.Errorf("%s: %s: unexpected argument", pos, fields[0])
		}
	}
	return op, nil
}

func parseState(s string) (cell.State, error) {
	switch {
	case s == "free":
		return cell.Free, nil
	case s == "exclusive":
		return cell.Exclusive, nil
	case strings.HasPrefix(s, "shared(") && strings.HasSuffix(s, ")"):
		n, err := strconv.Atoi(s[len("shared(") : len(s)-1])
		if err == nil && n >= 1 {
			return cell.Shared(n), nil
		}
	}
	return cell.Free, fmt.Errorf("invalid state: %s", s)
}
