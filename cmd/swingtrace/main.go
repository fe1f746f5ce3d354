// Command swingtrace runs one hook ability in the arena without a window and
// writes a per-frame CSV trace of the hook and player.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/milk9111/grapplinghook/scene"
	"github.com/milk9111/grapplinghook/telemetry"
)

const dt = 1.0 / 60.0

func main() {
	abilityName := flag.String("ability", "swing", "ability to activate (name in prefabs/abilities.yaml)")
	targetName := flag.String("target", "bar_left", "hookable to aim at (name in prefabs/arena.yaml)")
	frames := flag.Int("frames", 600, "number of frames to simulate")
	jump := flag.Bool("jump", true, "jump before activating, for airborne-only abilities")
	delay := flag.Int("delay", 20, "frames to wait before the first activation attempt")
	outPath := flag.String("o", "", "CSV output path (default stdout)")
	flag.Parse()

	sc, err := scene.Load()
	if err != nil {
		log.Fatal(err)
	}
	target, ok := sc.TargetID(*targetName)
	if !ok {
		log.Fatalf("swingtrace: unknown target %q", *targetName)
	}
	if _, ok := sc.Abilities.Get(*abilityName); !ok {
		log.Fatalf("swingtrace: unknown ability %q", *abilityName)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	trace := telemetry.NewTraceWriter(out)

	// settle on the ground first so the jump is allowed
	for i := 0; i < 30; i++ {
		sc.Step(dt)
	}
	if *jump && !sc.Jump() {
		log.Printf("swingtrace: jump refused at %v", sc.Player.Position())
	}

	activated := false
	for i := 0; i < *frames; i++ {
		if !activated && i >= *delay {
			if activated = sc.Activate(*abilityName, target); activated {
				log.Printf("swingtrace: %s on %s at frame %d", *abilityName, *targetName, sc.Frame)
			}
		}
		sc.Step(dt)
		if err := trace.Write(sc.Sample()); err != nil {
			log.Fatal(err)
		}
	}
	if err := trace.Flush(); err != nil {
		log.Fatal(err)
	}
	if !activated {
		log.Printf("swingtrace: %s never activated on %s", *abilityName, *targetName)
	}
	log.Printf("swingtrace: wrote %d samples", trace.Written())
}
