// mkicon renders a single preview icon with the default style.
// Usage: go run ./cmd/mkicon [--size N] [--supersample K] <output.png>
package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"strconv"

	xdraw "golang.org/x/image/draw"

	"github.com/Mavwarf/iconset/internal/icon"
	"github.com/Mavwarf/iconset/internal/paths"
)

func main() {
	size, ss := 256, 1
	var out string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--size", "-s", "--supersample":
			if i+1 >= len(args) {
				fail(fmt.Errorf("%s requires a value", args[i]))
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n <= 0 {
				fail(fmt.Errorf("%s must be a positive integer", args[i]))
			}
			if args[i] == "--supersample" {
				ss = n
			} else {
				size = n
			}
			i++
		default:
			out = args[i]
		}
	}
	if out == "" {
		fmt.Fprintln(os.Stderr, "Usage: mkicon [--size N] [--supersample K] <output.png>")
		os.Exit(1)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, render(size, ss)); err != nil {
		fail(err)
	}
	if err := paths.AtomicWrite(out, buf.Bytes()); err != nil {
		fail(err)
	}
}

// render draws the icon at size×ss and, when ss > 1, scales it down to
// size with Catmull-Rom filtering.
func render(size, ss int) image.Image {
	if ss <= 1 {
		return icon.Draw(size)
	}
	big := icon.Draw(size * ss)
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), big, big.Bounds(), xdraw.Src, nil)
	return dst
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
