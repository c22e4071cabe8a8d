package pipeline

import (
	"errors"
	"testing"

	"github.com/user/xcandb/pkg/geometry"
)

func TestParseOp(t *testing.T) {
	tests := []struct {
		in   string
		want Op
	}{
		{"crop:2,2,5,5", Op{Kind: OpCrop, Rect: geometry.Rect{X: 2, Y: 2, Width: 5, Height: 5}}},
		{"crop:-3,0,10,4", Op{Kind: OpCrop, Rect: geometry.Rect{X: -3, Width: 10, Height: 4}}},
		{"blur:0,0,8,8", Op{Kind: OpBlur, Rect: geometry.Rect{Width: 8, Height: 8}, Strength: 10}},
		{"blur:1, 2, 3, 4:0", Op{Kind: OpBlur, Rect: geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4}}},
		{" blur:1,2,3,4:25 ", Op{Kind: OpBlur, Rect: geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4}, Strength: 25}},
	}
	for _, tt := range tests {
		got, err := ParseOp(tt.in, 10)
		if err != nil {
			t.Errorf("ParseOp(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOp(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseOp_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"crop",
		"crop:1,2,3",
		"crop:1,2,3,4:5",
		"crop:a,2,3,4",
		"blur:1,2,3,4:-1",
		"blur:1,2,3,4:x",
		"blur:1,2,3,4:1:2",
		"rotate:1,2,3,4",
	} {
		if _, err := ParseOp(in, 10); !errors.Is(err, ErrInvalidOp) {
			t.Errorf("ParseOp(%q) error = %v, want ErrInvalidOp", in, err)
		}
	}
}

func TestParseOps(t *testing.T) {
	ops, err := ParseOps([]string{"crop:0,0,4,4", "blur:0,0,2,2"}, 3)
	if err != nil {
		t.Fatalf("ParseOps() error = %v", err)
	}
	if len(ops) != 2 || ops[1].Strength != 3 {
		t.Errorf("ParseOps() = %+v", ops)
	}

	if _, err := ParseOps([]string{"crop:0,0,4,4", "bad"}, 3); !errors.Is(err, ErrInvalidOp) {
		t.Errorf("ParseOps() error = %v, want ErrInvalidOp", err)
	}
}

func TestOp_String(t *testing.T) {
	for _, in := range []string{"crop:-1,2,3,4", "blur:0,0,5,6:7"} {
		op, err := ParseOp(in, 10)
		if err != nil {
			t.Fatal(err)
		}
		if got := op.String(); got != in {
			t.Errorf("String() = %q, want %q", got, in)
		}
	}
}
