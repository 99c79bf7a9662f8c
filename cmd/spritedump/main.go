package main

import (
	"flag"
	"fmt"
	"os"

	"davinci-renderer/internal/sprite"
)

// spritedump decodes images the way the renderer does and prints what the
// atlas would store for each. Arguments are image files or, with -dir,
// sprite names looked up in that directory; with no arguments every sprite
// under -dir is dumped. With -manifest it also writes a manifest of -dir.
func main() {
	dir := flag.String("dir", "", "Sprite directory: resolves names, or dumps all sprites when no arguments are given")
	manifest := flag.String("manifest", "", "Write a name → path manifest of -dir to this file")
	flag.Parse()

	var idx *sprite.Index
	if *dir != "" {
		idx = sprite.BuildIndex(*dir)
	}

	errors := 0
	var entries []sprite.Entry
	for _, arg := range flag.Args() {
		if _, err := os.Stat(arg); err == nil {
			entries = append(entries, sprite.Entry{Name: sprite.StemName(arg), Path: arg})
			continue
		}
		if idx != nil {
			if p, ok := idx.ResolvePath(arg); ok {
				entries = append(entries, sprite.Entry{Name: sprite.StemName(arg), Path: p})
				continue
			}
		}
		fmt.Fprintf(os.Stderr, "ERR %s: no such file or sprite\n", arg)
		errors++
	}
	if flag.NArg() == 0 && idx != nil {
		entries = idx.Entries()
	}
	if len(entries) == 0 && errors == 0 {
		fmt.Fprintln(os.Stderr, "usage: spritedump [-dir DIR [-manifest OUT]] [FILE|NAME...]")
		os.Exit(2)
	}

	for _, e := range entries {
		raw, w, h, ch, err := sprite.Decode(e.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERR %s: %v\n", e.Path, err)
			errors++
			continue
		}
		s, err := sprite.FromRaw(raw, w, h, ch)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERR %s: %v\n", e.Path, err)
			errors++
			continue
		}
		c := s.At(0, 0)
		fmt.Printf("OK  %-20s %4dx%-4d  %d ch  first texel (%d,%d,%d)  %s\n",
			e.Name, w, h, ch, c.R, c.G, c.B, e.Path)
	}

	if *manifest != "" {
		if *dir == "" {
			fmt.Fprintln(os.Stderr, "ERR -manifest requires -dir")
			os.Exit(2)
		}
		if err := sprite.WriteManifest(*manifest, idx.Entries()); err != nil {
			fmt.Fprintf(os.Stderr, "ERR manifest: %v\n", err)
			errors++
		} else {
			fmt.Printf("Manifest: %s\n", *manifest)
		}
	}

	if errors > 0 {
		fmt.Printf("\nDone with %d error(s).\n", errors)
		os.Exit(1)
	}
}
