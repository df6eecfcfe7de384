package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/go-drift/skpaint/cmd/skpaint/internal/config"
	"github.com/go-drift/skpaint/pkg/graphics"
	"github.com/go-drift/skpaint/pkg/skia"
)

func init() {
	RegisterCommand(&Command{
		Name:  "inspect",
		Short: "Validate a shader asset and print its uniforms",
		Long: `Parse a fragment shader asset and print its uniform layout.

The asset is resolved against shaders.asset_dir from skpaint.yaml unless it
is an absolute path or exists relative to the working directory.

With --instantiate the program is compiled on the recording engine, the
given uniform values are applied, and the shader is bound to a paint. The
native calls made along the way are printed.

Flags:
  --instantiate           Build a shader from the asset and show native calls
  --set NAME=VALUE        Set a float uniform (repeatable, implies --instantiate)
  --sampler NAME=PATH     Bind an image file to a sampler (repeatable, implies --instantiate)
  --quality Q             Sampler filter quality: none, low, medium, high (default low)`,
		Usage: "skpaint inspect [--instantiate] [--set NAME=VALUE] [--sampler NAME=PATH] <asset.json>",
		Run:   runInspect,
	})
}

type inspectOptions struct {
	asset       string
	instantiate bool
	floats      []assignment
	samplers    []assignment
	quality     graphics.FilterQuality
}

type assignment struct {
	name  string
	value string
}

func parseInspectArgs(args []string) (*inspectOptions, error) {
	opts := &inspectOptions{quality: graphics.FilterQualityLow}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--instantiate":
			opts.instantiate = true
		case "--set", "--sampler":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires NAME=VALUE", args[i])
			}
			name, value, ok := strings.Cut(args[i+1], "=")
			if !ok || name == "" {
				return nil, fmt.Errorf("%s: expected NAME=VALUE, got %q", args[i], args[i+1])
			}
			if args[i] == "--set" {
				opts.floats = append(opts.floats, assignment{name, value})
			} else {
				opts.samplers = append(opts.samplers, assignment{name, value})
			}
			opts.instantiate = true
			i++
		case "--quality":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--quality requires a value")
			}
			q, err := parseQuality(args[i+1])
			if err != nil {
				return nil, err
			}
			opts.quality = q
			i++
		default:
			if strings.HasPrefix(args[i], "--") {
				return nil, fmt.Errorf("unknown flag %q", args[i])
			}
			if opts.asset != "" {
				return nil, fmt.Errorf("only one asset may be inspected at a time")
			}
			opts.asset = args[i]
		}
	}
	if opts.asset == "" {
		return nil, fmt.Errorf("asset path is required\n\nUsage: skpaint inspect <asset.json>")
	}
	return opts, nil
}

func parseQuality(s string) (graphics.FilterQuality, error) {
	for q := graphics.FilterQualityNone; q <= graphics.FilterQualityHigh; q++ {
		if strings.EqualFold(s, q.String()) {
			return q, nil
		}
	}
	return 0, fmt.Errorf("unknown filter quality %q (use none, low, medium or high)", s)
}

func runInspect(args []string) error {
	opts, err := parseInspectArgs(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	path := resolveAsset(cfg, opts.asset)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read asset: %w", err)
	}
	asset, err := graphics.ParseShaderAsset(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	printLayout(path, asset)
	if !opts.instantiate {
		return nil
	}
	return instantiate(cfg, path, asset, opts)
}

// resolveAsset prefers a path that exists as given, then falls back to the
// configured asset directory.
func resolveAsset(cfg *config.Resolved, name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return cfg.AssetPath(name)
}

func printLayout(path string, asset *graphics.ShaderAsset) {
	layout := &asset.Layout
	fmt.Fprintf(stdout, "Asset:    %s\n", path)
	fmt.Fprintf(stdout, "SkSL:     %d bytes\n", len(asset.SkSL))
	fmt.Fprintf(stdout, "Floats:   %d\n", layout.FloatCount())
	fmt.Fprintf(stdout, "Textures: %d\n", layout.TextureCount())
	if layout.Len() == 0 {
		return
	}
	fmt.Fprintln(stdout)

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLOCATION\tTYPE\tBITS\tSLOT")
	for _, u := range layout.Uniforms() {
		slot := "-"
		if off, ok := layout.FloatOffset(u.Name); ok && u.FloatSlots() > 0 {
			slot = strconv.Itoa(off)
		} else if idx, ok := layout.SamplerIndex(u.Name); ok {
			slot = "tex" + strconv.Itoa(idx)
		}
		bits := "-"
		if u.Type != graphics.UniformSampledImage {
			bits = strconv.Itoa(u.BitWidth)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", u.Name, u.Location, u.Type, bits, slot)
	}
	tw.Flush()
}

// instantiate realizes the asset on a recording engine and prints the
// native calls.
func instantiate(cfg *config.Resolved, path string, asset *graphics.ShaderAsset, opts *inspectOptions) error {
	rec := skia.NewRecorder()
	if err := cfg.CheckEngine(rec.Version()); err != nil {
		return err
	}
	ctx := graphics.NewContext(rec, cfg.Options())
	defer ctx.Dispose()

	prog := ctx.LoadFragmentProgram(path, asset)
	defer prog.Dispose()
	fs := prog.FragmentShader()
	defer fs.Dispose()

	layout := prog.Layout()
	for _, a := range opts.floats {
		off, ok := layout.FloatOffset(a.name)
		if !ok {
			return fmt.Errorf("--set: %q is not a float uniform", a.name)
		}
		v, err := strconv.ParseFloat(a.value, 64)
		if err != nil {
			return fmt.Errorf("--set %s: %w", a.name, err)
		}
		if err := fs.SetFloat(off, v); err != nil {
			return err
		}
	}
	for _, a := range opts.samplers {
		idx, ok := layout.SamplerIndex(a.name)
		if !ok {
			return fmt.Errorf("--sampler: %q is not a sampler uniform", a.name)
		}
		data, err := os.ReadFile(a.value)
		if err != nil {
			return fmt.Errorf("--sampler %s: %w", a.name, err)
		}
		img, err := ctx.DecodeImageShader(data, graphics.TileModeClamp, graphics.TileModeClamp, opts.quality)
		if err != nil {
			return fmt.Errorf("--sampler %s: %w", a.name, err)
		}
		defer img.Dispose()
		if err := fs.SetSampler(idx, img); err != nil {
			return err
		}
	}

	paint := ctx.NewPaint()
	defer paint.Dispose()
	if _, err := paint.Handle(); err != nil {
		return err
	}
	if err := paint.SetShader(graphics.ShaderTemplate(fs)); err != nil {
		return err
	}

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "Uniforms: %v\n", fs.Floats())
	fmt.Fprintln(stdout, "Native calls:")
	for _, call := range rec.Calls() {
		fmt.Fprintf(stdout, "  %s\n", call)
	}
	return nil
}
