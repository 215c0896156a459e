package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

// dateValue is a pflag.Value holding a calendar date in UTC.
type dateValue struct {
	t *time.Time
}

var _ pflag.Value = dateValue{}

func newDateValue(p *time.Time) dateValue {
	return dateValue{t: p}
}

func (d dateValue) String() string {
	if d.t == nil || d.t.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d dateValue) Set(s string) error {
	parsed, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	*d.t = parsed
	return nil
}

func (d dateValue) Type() string { return "date" }

// dateFlag registers a YYYY-MM-DD flag.
func dateFlag(fs *pflag.FlagSet, p *time.Time, name, usage string) {
	fs.Var(newDateValue(p), name, usage)
}

// changed returns p when the flag was set on the command line and nil
// otherwise, so untouched flags map to "keep the stored value".
func changed[T any](cmd *cobra.Command, name string, p *T) *T {
	if cmd.Flags().Changed(name) {
		return p
	}
	return nil
}

// optString maps an unset or empty flag to nil.
func optString(cmd *cobra.Command, name, v string) *string {
	if !cmd.Flags().Changed(name) || v == "" {
		return nil
	}
	return &v
}
