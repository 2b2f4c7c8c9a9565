package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/edp1096/toy-transport/pkg/analysis"
	"github.com/edp1096/toy-transport/pkg/system"
	"github.com/edp1096/toy-transport/pkg/term"
	"github.com/edp1096/toy-transport/pkg/transport"
	"github.com/edp1096/toy-transport/pkg/util"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
)

func printHeading(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render(title))
	fmt.Fprintln(w, strings.Repeat("=", lipgloss.Width(title)))
}

// printResults prints one row per sweep point, sweep variable first.
func printResults(w io.Writer, sweepKey string, columns []string, results map[string][]float64) {
	xs, ok := results[sweepKey]
	if !ok {
		fmt.Fprintln(w, "no results")
		return
	}

	names := []string{sweepKey}
	for _, name := range columns {
		if name != sweepKey {
			names = append(names, name)
		}
	}

	fmt.Fprintf(w, "\n%d points\n", len(xs))
	for _, name := range names {
		fmt.Fprintf(w, "%10s", name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 10*len(names)))

	for i := range xs {
		for _, name := range names {
			values := results[name]
			if i < len(values) {
				fmt.Fprintf(w, " %s", util.FormatMagnitude(values[i]))
			} else {
				fmt.Fprintf(w, " %9s", "")
			}
		}
		fmt.Fprintln(w)
	}
}

// printSummary adds SI values for single-point analyses.
func printSummary(w io.Writer, sys *system.System, an analysis.Analysis) {
	p, ok := an.(*analysis.Point)
	if !ok || p.Result == nil {
		return
	}
	res := p.Result

	fmt.Fprintln(w)
	if res.NumLeads() == 2 {
		g := res.Transmission(1, 0)
		fmt.Fprintf(w, "%s %s (%s e^2/h)\n", labelStyle.Render("conductance"),
			util.FormatValueFactor(transport.TwoTerminal(g), "S"), strings.TrimSpace(util.FormatMagnitude(g)))
		return
	}

	g := res.ConductanceMatrix()
	fmt.Fprintln(w, labelStyle.Render("conductance matrix (e^2/h)"))
	fmt.Fprint(w, g.String())
	if sys.NumLeads() == 4 {
		t := analysis.CrossTerminals()
		rh, err := g.Resistance(t.Source, t.Drain, t.HallPlus, t.HallMinus)
		if err != nil {
			fmt.Fprintf(w, "hall resistance: %v\n", err)
			return
		}
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("hall resistance"), util.FormatValueFactor(transport.Ohms(rh), "ohm"))
	}
}

func printChannels(w io.Writer, sys *system.System, energy float64, params term.Params) error {
	for i, lead := range sys.Leads() {
		n, err := lead.OpenChannels(energy, params)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "lead %d: %d channels (%d interface sites)\n", i, int(n+0.5), len(lead.InterfaceSites()))
	}
	return nil
}
