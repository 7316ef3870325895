package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type palette struct {
	label, category, message func(a ...any) string
	usageLabel, usage        func(a ...any) string
	fix, bullet              func(a ...any) string
}

var colored = palette{
	label:      color.New(color.FgRed, color.Bold).SprintFunc(),
	category:   color.New(color.FgYellow).SprintFunc(),
	message:    color.New(color.FgRed).SprintFunc(),
	usageLabel: color.New(color.FgCyan, color.Bold).SprintFunc(),
	usage:      color.New(color.FgCyan).SprintFunc(),
	fix:        color.New(color.FgGreen, color.Bold).SprintFunc(),
	bullet:     color.New(color.FgGreen).SprintFunc(),
}

var plain = palette{
	label:      fmt.Sprint,
	category:   fmt.Sprint,
	message:    fmt.Sprint,
	usageLabel: fmt.Sprint,
	usage:      fmt.Sprint,
	fix:        fmt.Sprint,
	bullet:     fmt.Sprint,
}

// Format renders e as a terminal block: the categorized message, then the
// usage line and remediation steps when present. color.NoColor still
// applies when colorize is true.
func (e *CLIError) Format(colorize bool) string {
	p := plain
	if colorize {
		p = colored
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]: %s\n", p.label("Error"), p.category(e.Category.String()), p.message(e.Message))
	if e.Usage != "" {
		fmt.Fprintf(&b, "\n%s%s\n", p.usageLabel("Usage: "), p.usage(e.Usage))
	}
	if len(e.Remediation) > 0 {
		fmt.Fprintf(&b, "\n%s\n", p.fix("To fix this:"))
		for _, step := range e.Remediation {
			fmt.Fprintf(&b, "  %s %s\n", p.bullet("•"), step)
		}
	}
	return b.String()
}

// Fprint writes err to w in color. Errors without a CLIError in their chain
// are shown as Runtime errors.
func Fprint(w io.Writer, err error) {
	if err == nil {
		return
	}
	cliErr := From(err)
	if cliErr == nil {
		cliErr = Wrap(err, Runtime, "")
	}
	fmt.Fprint(w, cliErr.Format(true))
}
