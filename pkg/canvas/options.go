package canvas

import (
	"runtime"

	"github.com/user/xcandb/pkg/surface"
)

// DefaultBlurStrength is the number of passes used by interactive blurs.
const DefaultBlurStrength = 10

// Options tunes the engine.
type Options struct {
	ForceLocal        bool // Never use shared memory surfaces
	MaxLocalBufferMiB int  // Cap of the local surface buffer (default: 16)
	BlurWorkers       int  // Row-band workers per blur pass (1 = sequential)
	BlurStrength      int  // Passes used by BlurDefault (default: 10)
}

// OptionsBuilder provides a fluent interface for building Options.
type OptionsBuilder struct {
	opts Options
}

// NewOptionsBuilder creates a builder with the default options.
func NewOptionsBuilder() *OptionsBuilder {
	return &OptionsBuilder{opts: DefaultOptions()}
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxLocalBufferMiB: surface.DefaultMaxLocalBytes >> 20,
		BlurWorkers:       1,
		BlurStrength:      DefaultBlurStrength,
	}
}

// Build returns the final Options, applying constraints.
func (b *OptionsBuilder) Build() Options {
	opts := b.opts

	if opts.MaxLocalBufferMiB < 1 {
		opts.MaxLocalBufferMiB = surface.DefaultMaxLocalBytes >> 20
	}

	// Zero or less means one worker per CPU
	if opts.BlurWorkers < 1 {
		opts.BlurWorkers = runtime.GOMAXPROCS(0)
	}

	if opts.BlurStrength < 0 {
		opts.BlurStrength = 0
	}

	return opts
}

// WithForceLocal disables shared memory surfaces.
func (b *OptionsBuilder) WithForceLocal(force bool) *OptionsBuilder {
	b.opts.ForceLocal = force
	return b
}

// WithMaxLocalBufferMiB sets the local surface cap in MiB.
// Values below 1 fall back to the default.
func (b *OptionsBuilder) WithMaxLocalBufferMiB(mib int) *OptionsBuilder {
	b.opts.MaxLocalBufferMiB = mib
	return b
}

// WithBlurWorkers sets the number of row-band workers per blur pass.
// Values below 1 select one worker per CPU.
func (b *OptionsBuilder) WithBlurWorkers(n int) *OptionsBuilder {
	b.opts.BlurWorkers = n
	return b
}

// WithBlurStrength sets the number of passes used by BlurDefault.
func (b *OptionsBuilder) WithBlurStrength(passes int) *OptionsBuilder {
	b.opts.BlurStrength = passes
	return b
}

func (o Options) surfaceOptions() surface.Options {
	return surface.Options{
		ForceLocal:    o.ForceLocal,
		MaxLocalBytes: o.MaxLocalBufferMiB << 20,
	}
}
