package ui

import (
	"io"
	"os"

	"github.com/mitchellh/cli"
	"github.com/shaie/browze/pkg/constants"
	"github.com/spf13/viper"
)

// FromViper builds the terminal Ui, used with dig
func FromViper(v *viper.Viper) cli.Ui {
	return New(v, os.Stdin, os.Stdout, os.Stderr)
}

// New builds a Ui over the given streams, colored unless no-color is set or
// the output is not a terminal and force-color is not set.
func New(v *viper.Viper, in io.Reader, out, errOut io.Writer) cli.Ui {
	base := &cli.BasicUi{
		Reader:      in,
		Writer:      out,
		ErrorWriter: errOut,
	}

	if !isInteractive(out) && !v.GetBool(constants.FlagForceColor) {
		return base
	}

	if v.GetBool(constants.FlagNoColor) {
		return base
	}

	return &cli.ColoredUi{
		OutputColor: cli.UiColorNone,
		ErrorColor:  cli.UiColorRed,
		WarnColor:   cli.UiColorYellow,
		InfoColor:   cli.UiColorGreen,
		Ui:          base,
	}
}

func isInteractive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
