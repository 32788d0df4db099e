// Command pdfink applies highlight annotations to a PDF from the
// command line and exports the flattened result.
//
// Box highlights are given in normalized page coordinates, freehand
// strokes as device pixel polylines:
//
//	pdfink -in doc.pdf -out marked.pdf \
//	    -box '0:0.1,0.35,0.6,0.04' -color '#ffeb3b' \
//	    -stroke '1:40,100 220,104 400,99'
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pdfink/pdfink"
	"github.com/pdfink/pdfink/renderer/fitz"
	"github.com/pdfink/pdfink/writer/fpdfw"
)

type stringList []string

func (l *stringList) String() string { return strings.Join(*l, "; ") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	var (
		in        = flag.String("in", "", "input PDF")
		out       = flag.String("out", "annotated.pdf", "output PDF")
		colorHex  = flag.String("color", "#ffeb3b", "highlight color")
		opacity   = flag.Float64("opacity", 0.25, "highlight opacity")
		thickness = flag.Float64("thickness", 12, "brush thickness / minimum box height in pixels")
		zoom      = flag.Float64("zoom", 1, "render zoom factor")
		dpr       = flag.Float64("dpr", 2, "device pixel ratio for the overlay resolution")
		verbose   = flag.Bool("v", false, "verbose logging")
	)
	var boxes, strokes stringList
	flag.Var(&boxes, "box", "box highlight 'page:x,y,w,h' in normalized coordinates (repeatable)")
	flag.Var(&strokes, "stroke", "freehand stroke 'page:x,y x,y ...' in device pixels (repeatable)")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		pdfink.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("read %s: %v", *in, err)
	}

	ctx := context.Background()
	sess := pdfink.NewSession(fitz.New(), pdfink.WithDPR(*dpr))
	defer sess.Close()

	if err := sess.Open(ctx, data); err != nil {
		log.Fatalf("open document: %v", err)
	}
	if *zoom != 1 {
		if err := sess.SetZoom(ctx, *zoom); err != nil {
			log.Fatalf("zoom: %v", err)
		}
	}

	tool := pdfink.Tool{
		Color:     pdfink.Hex(*colorHex),
		Opacity:   *opacity,
		Thickness: *thickness,
	}
	eng := pdfink.NewEngine(sess, func() pdfink.Tool { return tool })

	for _, arg := range boxes {
		if err := applyBox(sess, &tool, eng, arg); err != nil {
			log.Fatalf("box %q: %v", arg, err)
		}
	}
	for _, arg := range strokes {
		if err := applyStroke(&tool, eng, arg); err != nil {
			log.Fatalf("stroke %q: %v", arg, err)
		}
	}

	result, err := pdfink.Export(ctx, sess, data, fpdfw.New())
	if err != nil {
		log.Fatalf("export: %v", err)
	}
	if err := os.WriteFile(*out, result, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	log.Printf("wrote %s (%d pages, %d bytes)", *out, sess.PageCount(), len(result))
}

// applyBox drags out one box highlight described as 'page:x,y,w,h'.
func applyBox(sess *pdfink.Session, tool *pdfink.Tool, eng *pdfink.Engine, arg string) error {
	page, rest, err := splitPage(arg)
	if err != nil {
		return err
	}
	nums, err := parseFloats(rest, ",", 4)
	if err != nil {
		return err
	}
	geom, ok := sess.PageGeometry(page)
	if !ok {
		return fmt.Errorf("page %d not rendered", page)
	}

	tool.Kind = pdfink.ToolBox
	tl := pdfink.ToDevice(pdfink.NormPt(nums[0], nums[1]), geom, sess.DPR())
	br := pdfink.ToDevice(pdfink.NormPt(nums[0]+nums[2], nums[1]+nums[3]), geom, sess.DPR())
	eng.PointerDown(page, tl)
	eng.PointerMove(page, br)
	eng.PointerUp(page, br)
	return nil
}

// applyStroke draws one freehand polyline described as 'page:x,y x,y ...'.
func applyStroke(tool *pdfink.Tool, eng *pdfink.Engine, arg string) error {
	page, rest, err := splitPage(arg)
	if err != nil {
		return err
	}
	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return fmt.Errorf("want at least 2 points, got %d", len(fields))
	}

	tool.Kind = pdfink.ToolFreehand
	for i, f := range fields {
		nums, err := parseFloats(f, ",", 2)
		if err != nil {
			return err
		}
		p := pdfink.DevPt(nums[0], nums[1])
		switch i {
		case 0:
			eng.PointerDown(page, p)
		case len(fields) - 1:
			eng.PointerUp(page, p)
		default:
			eng.PointerMove(page, p)
		}
	}
	return nil
}

// splitPage splits a 'page:rest' argument.
func splitPage(arg string) (int, string, error) {
	page, rest, ok := strings.Cut(arg, ":")
	if !ok {
		return 0, "", fmt.Errorf("missing 'page:' prefix")
	}
	n, err := strconv.Atoi(page)
	if err != nil || n < 0 {
		return 0, "", fmt.Errorf("bad page %q", page)
	}
	return n, rest, nil
}

// parseFloats parses exactly n separator-delimited floats.
func parseFloats(s, sep string, n int) ([]float64, error) {
	parts := strings.Split(s, sep)
	if len(parts) != n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", p)
		}
		out[i] = v
	}
	return out, nil
}
