package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/1broseidon/tilewm/internal/ipc"
)

func printShellUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  tilewm shell background --output ID --surface ID [--x N --y N]")
	fmt.Fprintln(os.Stderr, "  tilewm shell panel --output ID --surface ID")
	fmt.Fprintln(os.Stderr, "  tilewm shell configure --output ID --surface ID --x N --y N")
	fmt.Fprintln(os.Stderr, "  tilewm shell reserve --output ID --side top|bottom|left|right [--width N] [--height N]")
	fmt.Fprintln(os.Stderr, "  tilewm shell gamma --output ID --red V,V,... --green V,... --blue V,...")
	fmt.Fprintln(os.Stderr, "  tilewm shell focus --output ID")
	fmt.Fprintln(os.Stderr, "  tilewm shell run <command>")
}

func runShell(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printShellUsage()
		return 2
	}

	client := ipc.NewClient()
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = printShellUsage
	output := fs.Uint("output", 0, "Output id")
	surface := fs.Uint("surface", 0, "Surface (window) id")
	x := fs.Int("x", 0, "X offset from the output origin")
	y := fs.Int("y", 0, "Y offset from the output origin")

	var err error
	switch args[0] {
	case "background":
		if code, ok := parseNoArgs(fs, args[1:]); !ok {
			return code
		}
		err = client.AddBackground(uint32(*output), uint32(*surface), *x, *y)

	case "panel":
		if code, ok := parseNoArgs(fs, args[1:]); !ok {
			return code
		}
		err = client.AddPanel(uint32(*output), uint32(*surface))

	case "configure":
		if code, ok := parseNoArgs(fs, args[1:]); !ok {
			return code
		}
		err = client.ConfigurePanel(uint32(*output), uint32(*surface), *x, *y)

	case "reserve":
		side := fs.String("side", "", "Edge to reserve: top, bottom, left or right")
		width := fs.Int("width", 0, "Reserved width (left/right)")
		height := fs.Int("height", 0, "Reserved height (top/bottom)")
		if code, ok := parseNoArgs(fs, args[1:]); !ok {
			return code
		}
		err = client.ReserveWorkarea(uint32(*output), *side, *width, *height)

	case "gamma":
		red := fs.String("red", "", "Comma-separated red ramp")
		green := fs.String("green", "", "Comma-separated green ramp")
		blue := fs.String("blue", "", "Comma-separated blue ramp")
		if code, ok := parseNoArgs(fs, args[1:]); !ok {
			return code
		}
		var r, g, b []uint16
		if r, err = parseRamp(*red); err == nil {
			if g, err = parseRamp(*green); err == nil {
				b, err = parseRamp(*blue)
			}
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		err = client.SetColorGamma(uint32(*output), r, g, b)

	case "focus":
		if code, ok := parseNoArgs(fs, args[1:]); !ok {
			return code
		}
		err = client.FocusOutput(uint32(*output))

	case "run":
		command := strings.TrimSpace(strings.Join(args[1:], " "))
		if command == "" {
			fmt.Fprintln(os.Stderr, "run requires a command")
			return 2
		}
		err = client.Run(command)

	default:
		fmt.Fprintf(os.Stderr, "Unknown shell command: %s\n\n", args[0])
		printShellUsage()
		return 2
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func parseRamp(s string) ([]uint16, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ramp := make([]uint16, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid ramp value %q: %w", p, err)
		}
		ramp[i] = uint16(v)
	}
	return ramp, nil
}
