package testtool

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"regexp"
	"runtime"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

var dumper = spew.ConfigState{Indent: "\t", DisablePointerAddresses: true, SortKeys: true}

// Assert fails the test if the condition is false.
func Assert(tb testing.TB, condition bool, v ...interface{}) {
	if !condition {
		_, file, line, _ := runtime.Caller(1)
		msg := ""
		if len(v) > 0 {
			msg, v = ": "+v[0].(string), v[1:]
		}
		fmt.Printf("\033[31m%s:%d"+msg+"\033[39m\n\n", append([]interface{}{filepath.Base(file), line}, v...)...)
		tb.FailNow()
	}
}

// Pattern fails the test if the input string does not match the supplied
// regular expression.
func Pattern(tb testing.TB, pattern string, in string) {
	ptn, _ := regexp.Compile(pattern)
	if !ptn.MatchString(in) {
		_, file, line, _ := runtime.Caller(1)
		fmt.Printf("\033[31m%s:%d:\n\n\tptn: %#v\n\n\tgot: %#v\033[39m\n\n",
			filepath.Base(file), line, pattern, in)
		tb.FailNow()
	}
}

// OK fails the test if an err is not nil.
func OK(tb testing.TB, err error) {
	if err != nil {
		_, file, line, _ := runtime.Caller(1)
		fmt.Printf("\033[31m%s:%d: unexpected error: %s\033[39m\n\n", filepath.Base(file), line, err.Error())
		tb.FailNow()
	}
}

// ErrIs fails the test if err does not match target according to errors.Is.
func ErrIs(tb testing.TB, err error, target error) {
	if !errors.Is(err, target) {
		_, file, line, _ := runtime.Caller(1)
		fmt.Printf("\033[31m%s:%d:\n\n\texp err: %v\n\n\tgot err: %v\033[39m\n\n", filepath.Base(file), line, target, err)
		tb.FailNow()
	}
}

// Equals fails the test if exp is not equal to act. Strings are printed
// quoted so that whitespace differences are visible; anything else is
// dumped.
func Equals(tb testing.TB, exp, act interface{}) {
	if !reflect.DeepEqual(exp, act) {
		_, file, line, _ := runtime.Caller(1)
		es, eok := exp.(string)
		as, aok := act.(string)
		if eok && aok {
			fmt.Printf("\033[31m%s:%d:\n\n\texp: %q\n\n\tgot: %q\033[39m\n\n", filepath.Base(file), line, es, as)
		} else {
			fmt.Printf("\033[31m%s:%d:\n\n\texp: %s\n\n\tgot: %s\033[39m\n\n", filepath.Base(file), line, dumper.Sdump(exp), dumper.Sdump(act))
		}
		tb.FailNow()
	}
}
