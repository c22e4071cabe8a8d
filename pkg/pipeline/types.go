package pipeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/user/xcandb/pkg/geometry"
	"github.com/user/xcandb/pkg/pixbuf"
	"github.com/user/xcandb/pkg/ports"
)

// ErrInvalidOp is returned by ParseOp for malformed operations.
var ErrInvalidOp = errors.New("pipeline: invalid operation")

// OpKind identifies an edit.
type OpKind int

const (
	OpCrop OpKind = iota
	OpBlur
)

func (k OpKind) String() string {
	switch k {
	case OpCrop:
		return "crop"
	case OpBlur:
		return "blur"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Op is one edit in canvas coordinates of the image it is applied to.
type Op struct {
	Kind     OpKind
	Rect     geometry.Rect
	Strength int // Blur passes; ignored by crop
}

func (o Op) String() string {
	s := fmt.Sprintf("%s:%d,%d,%d,%d", o.Kind, o.Rect.X, o.Rect.Y, o.Rect.Width, o.Rect.Height)
	if o.Kind == OpBlur {
		s += ":" + strconv.Itoa(o.Strength)
	}
	return s
}

// ParseOp parses "crop:x,y,w,h" or "blur:x,y,w,h[:strength]".
// A blur without a strength uses defaultStrength.
func ParseOp(s string, defaultStrength int) (Op, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return Op{}, fmt.Errorf("%w: %q", ErrInvalidOp, s)
	}

	var op Op
	switch parts[0] {
	case "crop":
		if len(parts) != 2 {
			return Op{}, fmt.Errorf("%w: %q: crop takes no strength", ErrInvalidOp, s)
		}
		op.Kind = OpCrop
	case "blur":
		if len(parts) > 3 {
			return Op{}, fmt.Errorf("%w: %q", ErrInvalidOp, s)
		}
		op.Kind = OpBlur
		op.Strength = defaultStrength
		if len(parts) == 3 {
			n, err := strconv.Atoi(parts[2])
			if err != nil || n < 0 {
				return Op{}, fmt.Errorf("%w: %q: bad strength", ErrInvalidOp, s)
			}
			op.Strength = n
		}
	default:
		return Op{}, fmt.Errorf("%w: %q: unknown kind %q", ErrInvalidOp, s, parts[0])
	}

	fields := strings.Split(parts[1], ",")
	if len(fields) != 4 {
		return Op{}, fmt.Errorf("%w: %q: want x,y,w,h", ErrInvalidOp, s)
	}
	var v [4]int
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Op{}, fmt.Errorf("%w: %q: %v", ErrInvalidOp, s, err)
		}
		v[i] = n
	}
	op.Rect = geometry.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
	return op, nil
}

// ParseOps parses each string with ParseOp.
func ParseOps(specs []string, defaultStrength int) ([]Op, error) {
	ops := make([]Op, 0, len(specs))
	for _, s := range specs {
		op, err := ParseOp(s, defaultStrength)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// =============================================================================
// Edit Stage Types
// =============================================================================

// EditInput contains the buffer to edit and the operations to apply in order.
type EditInput struct {
	Buffer *pixbuf.Buffer
	Ops    []Op
}

// EditResult contains the edited buffer and, for each operation that
// changed something, its clamped rectangle in the coordinates of the
// input buffer.
type EditResult struct {
	Buffer *pixbuf.Buffer
	Marks  []ports.Mark
}
