// Command vebctl builds a van Emde Boas tree from the command line, dumps
// its contents and structure, and can watch a tree's structural events live.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	veb "github.com/abhinvv1/Van-Emde-Boas-tree"
	"github.com/abhinvv1/Van-Emde-Boas-tree/events"
	"github.com/abhinvv1/Van-Emde-Boas-tree/node"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "dump":
		err = runDump(os.Args[2:])
	case "watch":
		err = runWatch(os.Args[2:])
	case "dot":
		err = runDot(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "vebctl: %s\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  vebctl dump  -universe N -keys 1,2,3
  vebctl dot   -universe N -keys 1,2,3
  vebctl watch -universe N`)
}

func parseKeys(s string) ([]uint64, error) {
	if s == "" {
		return nil, nil
	}
	var keys []uint64
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		k, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid key %q: %w", tok, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func buildTree(universe uint64, keys []uint64, opts ...veb.Option) (*veb.Tree, error) {
	tr, err := veb.New(veb.RoundUpUniverse(universe), opts...)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		if _, err := tr.Insert(k); err != nil {
			return nil, fmt.Errorf("insert %d: %w", k, err)
		}
	}
	return tr, nil
}

// colorEnabled decides whether to emit ANSI color: only when stdout is an
// actual terminal, matching color.NoColor's usual auto-detection but pinned
// explicitly so piping `vebctl dump | less` never leaks escape codes.
func colorEnabled() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func runDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	universe := fs.Uint64("universe", 16, "universe size (rounded up to a power of two)")
	keysFlag := fs.String("keys", "", "comma-separated keys to insert")
	if err := fs.Parse(args); err != nil {
		return err
	}
	keys, err := parseKeys(*keysFlag)
	if err != nil {
		return err
	}
	tr, err := buildTree(*universe, keys)
	if err != nil {
		return err
	}

	color.NoColor = !colorEnabled()
	present := color.New(color.FgGreen, color.Bold)
	header := color.New(color.FgCyan)

	header.Printf("universe=%d size=%d\n", tr.UniverseSize(), tr.Size())
	if tr.Empty() {
		fmt.Println("(empty)")
		return nil
	}
	min, _ := tr.Min()
	max, _ := tr.Max()
	header.Printf("min=%d max=%d\n", min, max)
	for k := range tr.Range() {
		present.Printf("%d ", k)
	}
	fmt.Println()
	return nil
}

func runDot(args []string) error {
	fs := flag.NewFlagSet("dot", flag.ExitOnError)
	universe := fs.Uint64("universe", 16, "universe size (rounded up to a power of two)")
	keysFlag := fs.String("keys", "", "comma-separated keys to insert")
	if err := fs.Parse(args); err != nil {
		return err
	}
	keys, err := parseKeys(*keysFlag)
	if err != nil {
		return err
	}
	tr, err := buildTree(*universe, keys)
	if err != nil {
		return err
	}
	return tr.Dot(os.Stdout)
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	universe := fs.Uint64("universe", 16, "universe size (rounded up to a power of two)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	color.NoColor = !colorEnabled()
	alloc := color.New(color.FgYellow)
	freed := color.New(color.FgRed)
	promoted := color.New(color.FgMagenta)

	feed := events.NewFeed()
	defer feed.Close()
	sub, err := feed.Subscribe()
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	defer sub.Unsub()

	tr, err := veb.New(veb.RoundUpUniverse(*universe), veb.WithEventFeed(feed))
	if err != nil {
		return err
	}
	fmt.Printf("watching universe=%d — insert/remove any key on stdin (or blank line to quit)\n", tr.UniverseSize())

	go printEvents(sub.C, alloc, freed, promoted)

	line := make([]byte, 0, 64)
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if n == 0 || err != nil {
			break
		}
		if buf[0] == '\n' {
			cmd := strings.TrimSpace(string(line))
			line = line[:0]
			if cmd == "" {
				break
			}
			handleWatchCommand(tr, cmd)
			continue
		}
		line = append(line, buf[0])
	}
	time.Sleep(10 * time.Millisecond) // let the last printed event flush before exit
	return nil
}

func printEvents(c <-chan interface{}, alloc, freed, promoted *color.Color) {
	for msg := range c {
		evt, ok := msg.(node.Event)
		if !ok {
			continue
		}
		switch evt.Kind {
		case node.EventClusterAllocated:
			alloc.Printf("+cluster universe=%d key=%d\n", evt.Universe, evt.Key)
		case node.EventClusterFreed:
			freed.Printf("-cluster universe=%d key=%d\n", evt.Universe, evt.Key)
		case node.EventMinPromoted:
			promoted.Printf("^min-promoted universe=%d key=%d\n", evt.Universe, evt.Key)
		}
	}
}

func handleWatchCommand(tr *veb.Tree, cmd string) {
	fields := strings.Fields(cmd)
	if len(fields) != 2 {
		fmt.Println("expected: insert <key> | remove <key>")
		return
	}
	k, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		fmt.Println("bad key:", err)
		return
	}
	switch fields[0] {
	case "insert":
		if _, err := tr.Insert(k); err != nil {
			fmt.Println("insert failed:", err)
		}
	case "remove":
		tr.Remove(k)
	default:
		fmt.Println("expected: insert <key> | remove <key>")
	}
}
