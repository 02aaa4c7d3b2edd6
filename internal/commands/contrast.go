package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/example/calendar-editor/internal/contrast"
)

// ContrastOptions configures the contrast subcommand.
type ContrastOptions struct {
	Prefer      string
	MinContrast float64
	WhiteBias   float64
	// Swatch renders a sample of each color pairing.
	Swatch bool
}

func addContrast(topLevel *cobra.Command) {
	co := &ContrastOptions{}
	cmd := &cobra.Command{
		Use:   "contrast COLOR...",
		Short: "Pick a readable text color for each background color.",
		Example: `
calendar-editor contrast '#3788d8' 'rgb(255, 200, 0)'
calendar-editor contrast --min-contrast 4.5 '#777'
calendar-editor contrast --prefer white '#fff'
`,
		Args: cobra.MinimumNArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			if !cmd.Flags().Changed("swatch") {
				co.Swatch = isTerminal(os.Stdout)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return co.Do(cmd.OutOrStdout(), args)
		},
	}

	cmd.Flags().StringVar(&co.Prefer, "prefer", "contrast", "One of 'contrast', 'black' or 'white'.")
	cmd.Flags().Float64Var(&co.MinContrast, "min-contrast", 0, "Report whether the pick reaches this ratio (1-21).")
	cmd.Flags().Float64Var(&co.WhiteBias, "white-bias", 0, "Favour white text by this amount in the contrast comparison.")
	cmd.Flags().BoolVar(&co.Swatch, "swatch", false, "Render a color sample (defaults to on for terminals).")

	topLevel.AddCommand(cmd)
}

// Do writes one table row per color. Invalid colors are reported in the table
// and cause a non-nil error once every row is written.
func (co *ContrastOptions) Do(w io.Writer, colors []string) error {
	prefer, err := contrast.ParsePreference(co.Prefer)
	if err != nil {
		return err
	}
	if co.MinContrast != 0 && (co.MinContrast < 1 || co.MinContrast > contrast.MaxContrast) {
		return fmt.Errorf("--min-contrast must be between 1 and %g", contrast.MaxContrast)
	}
	opts := contrast.Options{Prefer: prefer, WhiteBias: co.WhiteBias}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "

	header := []interface{}{bold.Sprint("BACKGROUND"), bold.Sprint("TEXT"), bold.Sprint("VS BLACK"), bold.Sprint("VS WHITE")}
	if co.MinContrast != 0 {
		header = append(header, bold.Sprint("MEETS"))
	}
	if co.Swatch {
		header = append(header, bold.Sprint("SAMPLE"))
	}
	tbl.AddRow(header...)

	invalid := 0
	for _, bg := range colors {
		minContrast := co.MinContrast
		if minContrast == 0 {
			minContrast = 1
		}
		res, err := contrast.PickForegroundColorReport(bg, minContrast, opts)
		if err != nil {
			invalid++
			tbl.AddRow(bg, color.RedString("invalid"), "-", "-")
			continue
		}

		row := []interface{}{bg, res.Color, ratio(res.ContrastWithBlack), ratio(res.ContrastWithWhite)}
		if co.MinContrast != 0 {
			row = append(row, meets(res.MeetsContrast))
		}
		if co.Swatch {
			row = append(row, swatch(bg, res.Color))
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(2)
	tbl.RightAlign(3)

	_, _ = fmt.Fprintln(w, tbl)
	if invalid > 0 {
		return fmt.Errorf("%d of %d colors could not be parsed: %w", invalid, len(colors), contrast.ErrInvalidColorFormat)
	}
	return nil
}

func ratio(v float64) string {
	return fmt.Sprintf("%.2f:1", v)
}

func meets(ok bool) string {
	if ok {
		return color.GreenString("yes")
	}
	return color.YellowString("no")
}

func swatch(background, foreground string) string {
	bg, err := contrast.ParseColor(background)
	if err != nil {
		return ""
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg.Hex())).
		Foreground(lipgloss.Color(foreground)).
		Padding(0, 1).
		Render("Sample")
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
