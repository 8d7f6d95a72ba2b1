package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/wbrown/asciify"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("asciify: ")

	inputFile := flag.String("input", "",
		"Path to the input image file (required)")
	outputFile := flag.String("output", "",
		"Path to save the output (if not specified, prints to stdout)")
	targetWidth := flag.Int("width", asciify.DefaultWidth,
		"Target width in characters")
	style := flag.String("style", asciify.DefaultStyle,
		"Glyph ramp: "+strings.Join(asciify.Styles(), ", "))
	colorMode := flag.String("color", "none",
		"Color mode: none, color (sampled) or rainbow")
	effect := flag.String("effect", asciify.DefaultEffect,
		"Rainbow effect: "+strings.Join(asciify.Effects(), ", "))
	invert := flag.Bool("invert", false,
		"Invert brightness for light-on-dark output")
	enhance := flag.Bool("enhance", false,
		"Stretch contrast before sampling")
	presetName := flag.String("preset", "",
		"Start from a preset: classic, color, inverted, detailed")
	format := flag.String("format", "",
		"Output format: plain, ansi, html, email, message or png "+
			"(default: from the output extension)")
	profileName := flag.String("profile", "auto",
		"ANSI color profile: auto, truecolor, ansi256, ansi or ascii")
	border := flag.String("border", "none",
		"Frame the art: none, single, double, block or round")
	sampling := flag.String("sampling", "area",
		"Sampling: area, nearest, bilinear or lanczos")
	aspect := flag.Float64("aspect", 0.5,
		"Rows per column of source height (0.5 suits terminal cells)")
	fontPath := flag.String("font", "",
		"TrueType font for PNG output (default: built-in 7x13 bitmap font)")
	fontSize := flag.Float64("fontsize", asciify.DefaultFontSize,
		"Font size in points for PNG output with -font")
	glyphs := flag.String("glyphs", "",
		"Custom glyph ramp, emptiest first; selected as style \"custom\"")
	maxBytes := flag.Int64("maxbytes", 10<<20,
		"Maximum encoded image size in bytes (0 for no limit)")
	maxPixels := flag.Int64("maxpixels", 40_000_000,
		"Maximum decoded width*height (0 for no limit)")
	maxRows := flag.Int("maxrows", asciify.DefaultMaxRows,
		"Maximum number of output rows")
	seed := flag.Uint64("seed", 0,
		"Seed for random effects such as matrix (0 for a random seed)")
	list := flag.Bool("list", false,
		"List styles, effects and presets, then exit")
	flag.Parse()

	if *list {
		printLists()
		return
	}

	// Validate required flags
	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Please provide the image using the -input flag")
		flag.PrintDefaults()
		os.Exit(2)
	}

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	var opts asciify.ProcessOptions
	if *presetName != "" {
		preset, ok := asciify.LookupPreset(*presetName)
		if !ok {
			log.Fatalf("unknown preset %q", *presetName)
		}
		opts = preset.Options
		log.Printf("preset %s: %s", preset.Name, preset.Vibe)
	}
	if *presetName == "" || explicit["width"] {
		opts.Width = *targetWidth
	}
	if *presetName == "" || explicit["style"] {
		opts.Style = *style
	}
	if *glyphs != "" && !explicit["style"] {
		opts.Style = "custom"
	}
	if *presetName == "" || explicit["invert"] {
		opts.Invert = *invert
	}
	if *presetName == "" || explicit["enhance"] {
		opts.Enhance = *enhance
	}
	if *presetName == "" || explicit["color"] {
		switch strings.ToLower(*colorMode) {
		case "none":
			opts.UseColor, opts.Rainbow = false, false
		case "color":
			opts.UseColor, opts.Rainbow = true, false
		case "rainbow":
			opts.UseColor, opts.Rainbow = false, true
		default:
			log.Fatalf("invalid color mode %q, options are none, color or rainbow", *colorMode)
		}
	}
	opts.Effect = *effect

	mode, err := asciify.ParseSampleMode(*sampling)
	if err != nil {
		log.Fatal(err)
	}
	opts.Sampling = mode

	if *seed != 0 {
		opts.Jitter = rand.New(rand.NewPCG(*seed, *seed))
	}

	frame, err := asciify.ParseBorderStyle(*border)
	if err != nil {
		log.Fatal(err)
	}

	outFormat := resolveFormat(*format, *outputFile, opts)

	profile := termenv.TrueColor
	if *profileName == "auto" {
		if *outputFile == "" {
			profile = termenv.EnvColorProfile()
		}
	} else if profile, err = asciify.ParseProfile(*profileName); err != nil {
		log.Fatal(err)
	}

	convOpts := []asciify.ConverterOption{
		asciify.WithCellAspect(*aspect),
		asciify.WithMaxBytes(*maxBytes),
		asciify.WithMaxPixels(*maxPixels),
		asciify.WithMaxRows(*maxRows),
	}
	if *glyphs != "" {
		convOpts = append(convOpts, asciify.WithRamp("custom", *glyphs))
	}
	conv := asciify.NewConverter(convOpts...)
	if err := conv.Err(); err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	buf, err := conv.LoadImageFile(*inputFile)
	if err != nil {
		log.Fatal(err)
	}
	endDecode := time.Now()

	res, err := conv.Convert(buf, opts)
	if err != nil {
		log.Fatal(err)
	}
	res = asciify.Frame(res, frame)
	endComputation := time.Now()

	if outFormat == "png" {
		if *outputFile == "" {
			log.Fatal("png output requires -output")
		}
		pngOpts := asciify.PNGOptions{FontSize: *fontSize}
		if *fontPath != "" {
			ttf, err := asciify.LoadFont(*fontPath)
			if err != nil {
				log.Printf("error loading font, using built-in font: %v", err)
			} else {
				pngOpts.Font = ttf
			}
		}
		if err := asciify.SavePNG(res, *outputFile, pngOpts); err != nil {
			log.Fatalf("error writing PNG: %v", err)
		}
		log.Printf("PNG output written to %s", *outputFile)
	} else {
		var out string
		if outFormat == string(asciify.EncodingANSI) {
			out = res.ANSIProfile(profile)
		} else if out, err = res.Format(asciify.Encoding(outFormat)); err != nil {
			log.Fatal(err)
		}

		if *outputFile != "" {
			if err := os.WriteFile(*outputFile, []byte(out+"\n"), 0644); err != nil {
				log.Fatalf("error writing to file: %v", err)
			}
			log.Printf("output written to %s", *outputFile)
		} else {
			fmt.Println(out)
		}
	}

	log.Printf("image: %dx%d, grid: %dx%d, format: %s",
		buf.Width(), buf.Height(), res.Cols(), res.Rows(), outFormat)
	log.Printf("decode time: %v, conversion time: %v",
		endDecode.Sub(start), endComputation.Sub(endDecode))
}

// resolveFormat picks the output format from -format, the output file
// extension, or whether the art is colored.
func resolveFormat(format, output string, opts asciify.ProcessOptions) string {
	if format != "" {
		return strings.ToLower(format)
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".png":
		return "png"
	case ".html", ".htm":
		return string(asciify.EncodingHTML)
	case ".ans", ".ansi":
		return string(asciify.EncodingANSI)
	case ".txt":
		return string(asciify.EncodingPlain)
	}
	if opts.UseColor || opts.Rainbow {
		return string(asciify.EncodingANSI)
	}
	return string(asciify.EncodingPlain)
}

func printLists() {
	fmt.Println("styles:")
	for _, name := range asciify.Styles() {
		fmt.Printf("  %-10s %s\n", name, asciify.LookupRamp(name))
	}
	fmt.Println("effects:")
	for _, name := range asciify.Effects() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("presets:")
	for _, p := range asciify.Presets() {
		fmt.Printf("  %-10s %s\n", p.Name, p.Vibe)
	}
}
