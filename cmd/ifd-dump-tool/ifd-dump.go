package main

import (
	"fmt"
	"io"
	"os"

	"github.com/simonhull/photometa/internal/binary"
	"github.com/simonhull/photometa/internal/catalog"
	"github.com/simonhull/photometa/internal/ifd"
	"github.com/simonhull/photometa/internal/types"
)

// Useful test tool to confirm what we're able to actually read from the TIFF directories.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ifd-dump <photo.jpg> [max entries per section]")
		os.Exit(1)
	}

	limit := 5
	if len(os.Args) > 2 {
		if _, err := fmt.Sscanf(os.Args[2], "%d", &limit); err != nil {
			fmt.Printf("Error: bad limit %q\n", os.Args[2])
			os.Exit(1)
		}
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := dump(os.Stdout, f, stat.Size(), os.Args[1], limit); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func dump(w io.Writer, r io.ReaderAt, size int64, path string, limit int) error {
	sr := binary.NewSafeReader(r, size, path)
	start, length, err := ifd.Locate(sr)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "TIFF header at offset %d\n", start)

	sections, err := ifd.Walk(binary.NewSafeReader(io.NewSectionReader(r, start, length), length, path))
	if err != nil {
		return err
	}

	for _, name := range sections.Names() {
		dict := sections.Section(name)
		fmt.Fprintf(w, "%s (entries: %d)\n", name, dict.Len())

		for i, key := range dict.Keys() {
			if i == limit {
				fmt.Fprintf(w, "  ... %d more\n", dict.Len()-limit)
				break
			}
			v, _ := dict.Get(key)
			fmt.Fprintf(w, "  %s %s: %s = %s\n", key, label(name, key), v.Kind(), v)
		}
	}
	return nil
}

func label(section string, key types.Key) string {
	id, ok := key.Numeric()
	if !ok {
		return key.String()
	}
	if section == types.SectionGPS {
		return catalog.GPS.Name(id)
	}
	return catalog.General.Name(id)
}
