package cli

import (
	"fmt"
	"io"

	"github.com/getmockd/mockigd/pkg/cli/internal/output"
)

// Output formats accepted by --format and --stream-format.
const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

func validateFormat(format string) error {
	switch format {
	case formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSON, formatYAML)
	}
}

func newEncoder(w io.Writer, format string) output.Encoder {
	if format == formatYAML {
		return output.NewYAMLEncoder(w)
	}
	return output.NewJSONEncoder(w)
}

// printResult writes data in the structured format, or calls textFn for
// the text format.
func printResult(w io.Writer, format string, data any, textFn func()) error {
	switch format {
	case formatJSON:
		return output.JSON(w, data)
	case formatYAML:
		return output.YAML(w, data)
	case formatText:
		textFn()
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
