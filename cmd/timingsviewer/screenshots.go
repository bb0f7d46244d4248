package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/iafilius/BuildTimings/src/graph"
	"github.com/iafilius/BuildTimings/src/logging"
	"github.com/iafilius/BuildTimings/src/timings"
)

// RunScreenshotsMode renders both graphs headlessly and writes them as PNGs under
// outDir: pipeline.png, pipeline_highlight.png (the longest drawn unit hovered) and
// timing.png. Graphs skipped for lack of data are not written.
func RunScreenshotsMode(filePath, outDir string, controls graph.Controls, showHints bool) ([]string, error) {
	tr, err := timings.Load(filePath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create out dir: %w", err)
	}
	e := graph.NewEngine(tr, controls)
	if err := e.Load(); err != nil {
		return nil, err
	}

	var written []string
	write := func(name string, img image.Image) error {
		outPath := filepath.Join(outDir, name)
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return fmt.Errorf("png encode %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		written = append(written, outPath)
		return nil
	}

	if g := e.Pipeline(); g != nil {
		content, err := g.Content.Image()
		if err != nil {
			return written, err
		}
		base := content
		if showHints {
			base = drawHint(content, pipelineHint, g.Content.Ratio())
		}
		if err := write("pipeline.png", base); err != nil {
			return written, err
		}
		if box, ok := longestBox(tr, g.Layout); ok {
			if _, err := e.PointerMove((box.X+box.X2)/2, (box.Y+box.Y2)/2); err != nil {
				return written, err
			}
			overlay, err := g.Overlay.Image()
			if err != nil {
				return written, err
			}
			if err := write("pipeline_highlight.png", composite(content, overlay)); err != nil {
				return written, err
			}
		}
	} else {
		logging.Infof("no units in %s; pipeline graph skipped", filePath)
	}

	if s := e.Timing(); s != nil {
		img, err := s.Image()
		if err != nil {
			return written, err
		}
		if err := write("timing.png", img); err != nil {
			return written, err
		}
	} else {
		logging.Infof("no concurrency samples in %s; timing graph skipped", filePath)
	}
	return written, nil
}

// longestBox picks the hit-box of the longest unit that got a row.
func longestBox(tr *timings.Trace, l *graph.PipelineLayout) (graph.HitBox, bool) {
	if len(l.HitBoxes) == 0 {
		return graph.HitBox{}, false
	}
	boxes := append([]graph.HitBox(nil), l.HitBoxes...)
	dur := func(b graph.HitBox) float64 {
		u, _ := tr.Unit(b.Index)
		return u.Duration
	}
	sort.SliceStable(boxes, func(i, j int) bool { return dur(boxes[i]) > dur(boxes[j]) })
	return boxes[0], true
}
