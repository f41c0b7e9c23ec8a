// Package render implements the render subcommand - it turns recipe documents
// into selector listings, stylesheets or JSON rule descriptions.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssb/config"
	"cssb/jsonutil"
	"cssb/misc"
	"cssb/recipe"
	"cssb/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input recipe has been specified")
	}

	dst := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	// command line beats configuration but bad values only downgrade to it
	format := env.Cfg.Render.Format
	if cmd.IsSet("to") {
		if f, er := config.ParseOutputFmt(cmd.String("to")); er != nil {
			log.Warn("Unknown output format requested, keeping configured one", zap.Stringer("format", format), zap.Error(er))
		} else {
			format = f
		}
	}
	order := env.Cfg.Render.Order
	if cmd.IsSet("order") {
		if o, er := config.ParseSortOrder(cmd.String("order")); er != nil {
			log.Warn("Unknown sort order requested, keeping configured one", zap.Stringer("order", order), zap.Error(er))
		} else {
			order = o
		}
	}
	lineTemplate := env.Cfg.Render.Template
	if cmd.IsSet("template") {
		lineTemplate = cmd.String("template")
	}

	env.Overwrite = cmd.Bool("overwrite")

	log.Info("Rendering starting", zap.String("source", src), zap.Stringer("format", format), zap.Stringer("order", order))
	defer func(start time.Time) {
		log.Info("Rendering completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	data, err := readSource(src)
	if err != nil {
		return fmt.Errorf("unable to read recipe (%s): %w", src, err)
	}
	env.Rpt.StoreData(fmt.Sprintf("recipe/%s", sourceName(src)), data)

	doc, err := recipe.Load(data)
	if err != nil {
		return fmt.Errorf("unable to load recipe (%s): %w", src, err)
	}

	compiled, err := doc.Compile(log)
	if err != nil {
		return fmt.Errorf("unable to compile recipe (%s): %w", src, err)
	}
	if order == config.SortOrderNatural {
		recipe.SortNatural(compiled)
	}

	out, err := emit(compiled, format, lineTemplate)
	if err != nil {
		return err
	}
	env.Rpt.StoreData("result"+format.Ext(), out)

	name, err := writeOutput(src, dst, format, out, env.Overwrite, log)
	if err != nil {
		return err
	}

	log.Debug("Output written", zap.String("destination", name), zap.Int("rules", len(compiled)))
	return nil
}

// readSource supports "-" for stdin, everything else is a file path.
func readSource(src string) ([]byte, error) {
	if src == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(src)
}

func sourceName(src string) string {
	if src == "-" {
		return "STDIN"
	}
	return filepath.Base(src)
}

func emit(compiled []recipe.Compiled, format config.OutputFmt, lineTemplate string) ([]byte, error) {
	switch format {
	case config.OutputFmtList:
		return emitList(compiled, lineTemplate)
	case config.OutputFmtCss:
		return emitCSS(compiled)
	case config.OutputFmtJson:
		return emitJSON(compiled)
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// emitList writes one selector per line, optionally shaped by a line template.
func emitList(compiled []recipe.Compiled, lineTemplate string) ([]byte, error) {
	buf := new(bytes.Buffer)
	for i, c := range compiled {
		line := c.CSS
		if len(lineTemplate) != 0 {
			var err error
			if line, err = recipe.ExpandTemplate(lineTemplate, c, i); err != nil {
				return nil, fmt.Errorf("unable to expand line template for selector '%s': %w", c.Name, err)
			}
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// emitCSS writes a stylesheet built from entries that carry declarations.
func emitCSS(compiled []recipe.Compiled) ([]byte, error) {
	buf := new(bytes.Buffer)
	if _, err := recipe.Stylesheet(compiled).WriteTo(buf); err != nil {
		return nil, fmt.Errorf("unable to write stylesheet: %w", err)
	}
	return buf.Bytes(), nil
}

// renderedRule is the shape of one rule in json output.
type renderedRule struct {
	Name         string            `json:"name"`
	CSS          string            `json:"css"`
	Declarations map[string]string `json:"declarations,omitempty"`
}

func emitJSON(compiled []recipe.Compiled) ([]byte, error) {
	rules := make([]renderedRule, 0, len(compiled))
	for _, c := range compiled {
		rules = append(rules, renderedRule{Name: c.Name, CSS: c.CSS, Declarations: c.Declarations})
	}
	text, err := jsonutil.ToText(rules)
	if err != nil {
		return nil, fmt.Errorf("unable to serialize rules: %w", err)
	}
	return append([]byte(text), '\n'), nil
}

// writeOutput sends data to stdout when no destination was given, otherwise
// to a file. A destination pointing to an existing directory gets a file name
// derived from the source and format. Returns the name data went to.
func writeOutput(src, dst string, format config.OutputFmt, data []byte, overwrite bool, log *zap.Logger) (string, error) {
	if len(dst) == 0 {
		if _, err := os.Stdout.Write(data); err != nil {
			return "", fmt.Errorf("unable to write output: %w", err)
		}
		return "STDOUT", nil
	}

	outputName, err := filepath.Abs(dst)
	if err != nil {
		return "", err
	}
	if fi, err := os.Stat(outputName); err == nil && fi.Mode().IsDir() {
		outputName = filepath.Join(outputName, defaultFileName(src, format))
	}

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !overwrite {
			return "", fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return "", err
		}
	} else if !os.IsNotExist(err) {
		return "", err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return "", fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := os.WriteFile(outputName, data, 0644); err != nil {
		return "", fmt.Errorf("unable to write output file '%s': %w", outputName, err)
	}
	return outputName, nil
}

func defaultFileName(src string, format config.OutputFmt) string {
	baseName := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if src == "-" {
		baseName = misc.GetAppName()
	}
	return config.CleanFileName(baseName) + format.Ext()
}
