// Command coursecheck loads a course set and builds every hole at the
// configured playfield size, reporting the first malformed hole.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/playmatatu/minigolf/internal/config"
	"github.com/playmatatu/minigolf/internal/course"
	"github.com/playmatatu/minigolf/internal/game"
	"github.com/playmatatu/minigolf/internal/logging"
)

func main() {
	cfg := config.Load()

	dir := flag.String("dir", cfg.CoursesDir, "course directory (empty for the built-in set)")
	width := flag.Float64("width", cfg.FieldWidth, "playfield width in pixels")
	height := flag.Float64("height", cfg.FieldHeight, "playfield height in pixels")
	flag.Parse()

	if err := logging.Init(cfg.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()
	log := logging.S()

	set, err := course.Load(*dir)
	if err != nil {
		log.Fatalf("Failed to load courses: %v", err)
	}

	field := game.Size{Width: *width, Height: *height}
	for i, h := range set.Holes {
		c, err := game.NewCourse(i, h, field)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Printf("%2d  %-20s par %d  obstacles %d  fairway regions %d\n",
			i+1, c.Name, c.Par, len(c.Obstacles), len(c.Fairway))
	}
	fmt.Printf("%d holes, total par %d, fingerprint %s\n", set.Len(), set.TotalPar(), set.Fingerprint())
}
