// Command jerseygen generates a parametric jersey sign design and writes one
// binary STL per region, plus an optional merged mesh for display checks.
// All region files share the frame origin so independently sliced parts
// register against each other.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	jersey "github.com/KJLJon/Custom-3d-printer-designs"
	"github.com/KJLJon/Custom-3d-printer-designs/render"
)

func main() {
	var (
		designID   = flag.String("design", "jersey", "design identifier used in export file names")
		name       = flag.String("name", "", "player name line")
		number     = flag.String("number", "23", "jersey number line")
		style      = flag.String("style", "College", "jersey style: Retro, NBA Modern or College")
		trim       = flag.Bool("trim", true, "carve the trim ring region")
		nameSize   = flag.Float64("name-size", jersey.DefaultNameSize, "name glyph size, mm")
		numberSize = flag.Float64("number-size", jersey.DefaultNumberSize, "number glyph size, mm")
		fontPath   = flag.String("font", "", "TTF font file; empty uses the embedded default")
		outDir     = flag.String("o", ".", "output directory")
		merged     = flag.String("merged", "", "also write a single merged STL with this file name")
	)
	flag.Parse()

	var ttf []byte
	if *fontPath != "" {
		var err error
		ttf, err = os.ReadFile(*fontPath)
		if err != nil {
			log.Fatal("reading font: ", err)
		}
	}
	pipe, err := jersey.NewPipeline(ttf)
	if err != nil {
		log.Fatal(err)
	}

	// The flag surface mirrors the field map the web form hands the core.
	design := jersey.DesignFromFields(map[string]any{
		"name":       *name,
		"number":     *number,
		"style":      *style,
		"trim":       *trim,
		"nameSize":   *nameSize,
		"numberSize": *numberSize,
	})
	result, err := pipe.Generate(design)
	if err != nil {
		log.Fatal(err)
	}

	for i := range result.Regions {
		reg := &result.Regions[i]
		if reg.Err != nil {
			log.Printf("region %s unavailable: %v", reg.ID, reg.Err)
			continue
		}
		if !reg.Present() {
			continue // No geometry for this region; no file either.
		}
		fname := filepath.Join(*outDir, render.ExportFilename(*designID, reg.ID))
		if err := writeSTL(fname, reg); err != nil {
			log.Fatal(err)
		}
	}
	if *merged != "" {
		mesh := render.MergeSolids(render.ShadingFlat, result.Solids()...)
		fp, err := os.Create(filepath.Join(*outDir, *merged))
		if err != nil {
			log.Fatal(err)
		}
		defer fp.Close()
		n, err := render.WriteMeshSTL(fp, mesh)
		if err != nil {
			log.Fatal("writing merged STL: ", err)
		}
		log.Printf("wrote %s (%d triangles, %d bytes)", fp.Name(), mesh.TriangleCount(), n)
	}
}

func writeSTL(fname string, reg *jersey.Region) error {
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer fp.Close()
	n, err := render.WriteSolidsSTL(fp, reg.Solid)
	if err != nil {
		return fmt.Errorf("writing %s: %w", fname, err)
	}
	log.Printf("wrote %s (color %s, %d bytes)", fname, reg.Color, n)
	return nil
}
