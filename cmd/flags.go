package cmd

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/theirongolddev/fincalc/internal/finance"
	"github.com/theirongolddev/fincalc/internal/scenario"
)

// resolveInput layers a calculator's input: base (config defaults), then the
// --input scenario file, then every flag set explicitly on the command line.
// bind must register the same flags the command registered.
func resolveInput[T any](cmd *cobra.Command, base T, inputPath string, bind func(*pflag.FlagSet, *T)) (T, error) {
	if inputPath != "" {
		if err := scenario.Load(inputPath, &base); err != nil {
			return base, err
		}
	}

	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	bind(fs, &base)

	var err error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		target := fs.Lookup(f.Name)
		if err != nil || target == nil {
			return
		}
		if src, ok := f.Value.(pflag.SliceValue); ok {
			if dst, ok := target.Value.(pflag.SliceValue); ok {
				err = dst.Replace(src.GetSlice())
				return
			}
		}
		if e := target.Value.Set(f.Value.String()); e != nil {
			err = eris.Wrapf(e, "flag --%s", f.Name)
		}
	})
	return base, err
}

// filingFlag binds a finance.FilingStatus, accepting the aliases
// ParseFilingStatus knows.
type filingFlag struct {
	status *finance.FilingStatus
}

func (f filingFlag) String() string {
	if f.status == nil {
		return ""
	}
	return string(*f.status)
}

func (f filingFlag) Set(raw string) error {
	fs, ok := finance.ParseFilingStatus(raw)
	if !ok {
		names := make([]string, 0, 4)
		for _, s := range finance.FilingStatuses() {
			names = append(names, string(s))
		}
		return eris.Errorf("unknown filing status %q (want one of %s)", raw, strings.Join(names, ", "))
	}
	*f.status = fs
	return nil
}

func (f filingFlag) Type() string { return "status" }
