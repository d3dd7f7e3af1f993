package scenario

import (
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/openfga/nodekit/internal/render"
)

// WriteText writes a human readable report: a header, one line per step
// and the values left in the structure.
func WriteText(w io.Writer, reports ...*Report) error {
	var sb strings.Builder
	for i, r := range reports {
		if i > 0 {
			sb.WriteByte('\n')
		}
		name := r.Name
		if name == "" {
			name = r.Structure
		}
		fmt.Fprintf(&sb, "== %s (%s)\n", name, r.Structure)
		for _, res := range r.Results {
			// multi-line output, such as a printed tree, starts on its own line
			if strings.Count(res.Output, "\n") > 1 {
				fmt.Fprintf(&sb, "%s:\n%s", res.Op, res.Output)
				continue
			}
			sb.WriteString(res.String())
			sb.WriteByte('\n')
		}
		sb.WriteString("final: ")
		if len(r.Final) == 0 {
			sb.WriteString(render.Empty)
		} else {
			sb.WriteString(strings.Join(r.Final, render.Separator))
		}
		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteYAML writes the reports as a YAML list.
func WriteYAML(w io.Writer, reports ...*Report) error {
	data, err := yaml.Marshal(reports)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
