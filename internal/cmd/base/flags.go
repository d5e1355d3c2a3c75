package base

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"strings"
)

// FlagSet wraps a flag.FlagSet with help rendering and the repeatable flag
// kinds used by resource commands.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f. Parse errors are returned, not printed.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(io.Discard)
	return &FlagSet{FlagSet: f}
}

// Help renders the flags for a command's Help text.
func (f *FlagSet) Help() string {
	var buf bytes.Buffer
	first := true
	f.VisitAll(func(fl *flag.Flag) {
		if first {
			buf.WriteString("\n\nOptions:\n")
			first = false
		}
		fmt.Fprintf(&buf, "\n  -%s", fl.Name)
		if fl.DefValue != "" && fl.DefValue != "false" && fl.DefValue != "[]" {
			fmt.Fprintf(&buf, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&buf, "\n      %s\n", fl.Usage)
	})
	return strings.TrimRight(buf.String(), "\n")
}

// StringSliceVar defines a flag that may be repeated.
func (f *FlagSet) StringSliceVar(p *[]string, name, usage string) {
	f.Var((*stringSlice)(p), name, usage)
}

// KeyValueVar defines a repeatable key=value flag.
func (f *FlagSet) KeyValueVar(p *map[string]any, name, usage string) {
	f.Var(&keyValues{m: p}, name, usage)
}

type stringSlice []string

func (s *stringSlice) String() string {
	if s == nil {
		return "[]"
	}
	return "[" + strings.Join(*s, ",") + "]"
}

func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type keyValues struct {
	m *map[string]any
}

func (kv *keyValues) String() string {
	if kv == nil || kv.m == nil || *kv.m == nil {
		return ""
	}
	parts := make([]string, 0, len(*kv.m))
	for k, v := range *kv.m {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, ",")
}

func (kv *keyValues) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	if *kv.m == nil {
		*kv.m = map[string]any{}
	}
	(*kv.m)[key] = value
	return nil
}
