package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/user/xcandb/pkg/canvas"
	"github.com/user/xcandb/pkg/geometry"
	"github.com/user/xcandb/pkg/pixbuf"
	"github.com/user/xcandb/pkg/ports"
)

// EditStage applies operations to a copy of the input buffer.
type EditStage struct {
	blur   geometry.Blurrer
	logger ports.Logger
}

// NewEditStage creates an EditStage running blur passes on workers row bands.
func NewEditStage(workers int, logger ports.Logger) *EditStage {
	return &EditStage{
		blur:   geometry.Blurrer{Workers: max(workers, 1)},
		logger: logger.WithComponent("edit"),
	}
}

// Execute applies in.Ops in order. Operations that clamp to nothing are
// skipped without error; the context is checked between operations.
func (s *EditStage) Execute(ctx context.Context, in EditInput) (EditResult, error) {
	if in.Buffer == nil {
		return EditResult{}, errors.New("pipeline: no input buffer")
	}

	buf := in.Buffer.Clone()
	var origin image.Point // Offset of buf inside the input buffer
	var marks []ports.Mark

	for _, op := range in.Ops {
		if err := ctx.Err(); err != nil {
			return EditResult{}, err
		}

		r := geometry.Clamp(op.Rect, buf.Width, buf.Height)
		if r.Empty() {
			s.logger.Debug("Skipping %s: nothing left after clamping", op)
			continue
		}
		mark := r.Image().Add(origin)

		switch op.Kind {
		case OpCrop:
			dst, ok := geometry.Crop(buf, op.Rect)
			if !ok {
				s.logger.Debug("Skipping %s: covers the whole image", op)
				continue
			}
			buf = dst
			origin = origin.Add(image.Pt(r.X, r.Y))
			marks = append(marks, ports.Mark{Kind: ports.MarkCrop, Rect: mark})
			s.logger.Debug("Cropped to %dx%d", buf.Width, buf.Height)
		case OpBlur:
			s.blur.Blur(buf, op.Rect, op.Strength)
			marks = append(marks, ports.Mark{Kind: ports.MarkBlur, Rect: mark})
			s.logger.Debug("Blurred %dx%d at (%d,%d), %d passes", r.Width, r.Height, r.X, r.Y, op.Strength)
		default:
			return EditResult{}, fmt.Errorf("%w: %s", ErrInvalidOp, op)
		}
	}

	return EditResult{Buffer: buf, Marks: marks}, nil
}

// Request describes one headless edit.
type Request struct {
	Input        string
	Output       string // Empty skips writing the edited image
	Ops          []Op
	PreviewPath  string // Empty skips the preview
	PreviewWidth int    // Zero keeps the input width
}

// Result summarizes a finished edit.
type Result struct {
	Width   int
	Height  int
	Applied int
}

// Editor loads an image, runs the edit stage and writes the outputs.
type Editor struct {
	edit      Stage[EditInput, EditResult]
	fs        ports.FileSystem
	codec     ports.ImageCodec
	previewer ports.Previewer
	logger    ports.Logger
}

// NewEditor creates a new Editor. previewer may be nil when previews are
// never requested.
func NewEditor(
	edit Stage[EditInput, EditResult],
	fs ports.FileSystem,
	codec ports.ImageCodec,
	previewer ports.Previewer,
	logger ports.Logger,
) *Editor {
	return &Editor{
		edit:      edit,
		fs:        fs,
		codec:     codec,
		previewer: previewer,
		logger:    logger,
	}
}

// Run executes the request.
func (e *Editor) Run(ctx context.Context, req Request) (Result, error) {
	img, err := canvas.ReadImage(e.fs, e.codec, req.Input)
	if err != nil {
		return Result{}, err
	}
	bounds := img.Bounds()
	src := pixbuf.New(bounds.Dx(), bounds.Dy())
	if err := pixbuf.Decode(img, src); err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", canvas.ErrDecodeFailed, req.Input, err)
	}
	e.logger.Info("Loaded %s: %dx%d", req.Input, src.Width, src.Height)

	res, err := e.edit.Execute(ctx, EditInput{Buffer: src, Ops: req.Ops})
	if err != nil {
		return Result{}, fmt.Errorf("edit stage: %w", err)
	}
	e.logger.Info("Applied %d of %d operations", len(res.Marks), len(req.Ops))

	if req.Output != "" {
		if err := canvas.WriteBuffer(e.fs, e.codec, res.Buffer, req.Output); err != nil {
			return Result{}, err
		}
		e.logger.Info("Saved %s", req.Output)
	}

	if req.PreviewPath != "" {
		if err := e.writePreview(src, res.Marks, req); err != nil {
			return Result{}, err
		}
		e.logger.Info("Preview written to %s", req.PreviewPath)
	}

	return Result{
		Width:   res.Buffer.Width,
		Height:  res.Buffer.Height,
		Applied: len(res.Marks),
	}, nil
}

func (e *Editor) writePreview(src *pixbuf.Buffer, marks []ports.Mark, req Request) error {
	if e.previewer == nil {
		return errors.New("pipeline: no previewer configured")
	}
	img := e.previewer.Preview(src.Image(), marks, req.PreviewWidth)
	data, err := e.codec.EncodeImage(img, ports.FormatFromPath(req.PreviewPath))
	if err != nil {
		return fmt.Errorf("%w: preview %s: %v", canvas.ErrEncodeFailed, req.PreviewPath, err)
	}
	if err := e.fs.WriteFile(req.PreviewPath, data); err != nil {
		return fmt.Errorf("write preview %s: %w", req.PreviewPath, err)
	}
	return nil
}

// Ensure EditStage implements Stage
var _ Stage[EditInput, EditResult] = (*EditStage)(nil)
