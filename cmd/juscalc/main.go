/*
main.go - juscalc, the case-file CLI

PURPOSE:
  Runs a single YAML case file through the matching engine and prints
  the practitioner-facing document: the execution memorandum for
  sentence cases, the arrears statement for alimony cases. The same
  case file shapes the HTTP API accepts as JSON.

USAGE:
  juscalc run caso.yaml
  juscalc run caso.yaml --as-of 2024-03-05
  juscalc run caso.yaml --json
  juscalc version

SEE ALSO:
  - config/casefile.go: case file format and validation
  - api/handlers.go: the HTTP twin of this surface
*/
package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/advocato/penal-engine/alimony"
	"github.com/advocato/penal-engine/config"
	"github.com/advocato/penal-engine/legaldate"
	"github.com/advocato/penal-engine/sentence"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagAsOf              string
	flagZone              string
	flagIncludeReleaseDay bool
	flagJSON              bool
)

var rootCmd = &cobra.Command{
	Use:   "juscalc",
	Short: "Sentence execution and alimony arrears calculator",
	Long:  "Calculates criminal sentence execution dates and alimony arrears from YAML case files",
}

var runCmd = &cobra.Command{
	Use:   "run [case-file]",
	Short: "Run a case file and print the resulting document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cf, err := config.Load(args[0])
		if err != nil {
			log.Fatal(err)
		}

		// Flags override the case file.
		if flagZone != "" {
			cf.Zone = flagZone
		}
		if flagAsOf != "" {
			cf.AsOf = flagAsOf
		}

		zone, err := cf.ResolveZone()
		if err != nil {
			log.Fatal(err)
		}
		asOf, err := cf.ResolveAsOf()
		if err != nil {
			log.Fatal(err)
		}
		if asOf.IsZero() {
			asOf = legaldate.Today(zone)
		}

		switch cf.Kind {
		case config.KindSentence:
			runSentence(cf, zone, asOf)
		case config.KindAlimony:
			runAlimony(cf, zone, asOf)
		}
	},
}

func runSentence(cf *config.CaseFile, zone legaldate.Zone, asOf legaldate.Date) {
	s, episodes, remissions, err := cf.Sentence.BuildSentence()
	if err != nil {
		log.Fatal(err)
	}

	includeReleaseDay := cf.Sentence.IncludeReleaseDay || flagIncludeReleaseDay
	res, err := sentence.Compute(s, episodes, remissions, asOf, sentence.Options{
		IncludeReleaseDay: includeReleaseDay,
		Zone:              zone,
	})
	if err != nil {
		log.Fatal(err)
	}

	if flagJSON {
		printJSON(res)
		return
	}
	fmt.Println(sentence.Memorandum(s, res))
}

func runAlimony(cf *config.CaseFile, zone legaldate.Zone, asOf legaldate.Date) {
	o, payments, err := cf.Alimony.BuildAlimony()
	if err != nil {
		log.Fatal(err)
	}

	res, err := alimony.Compute(o, payments, asOf, zone)
	if err != nil {
		log.Fatal(err)
	}

	if flagJSON {
		printJSON(res)
		return
	}
	fmt.Println(res.Report)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "juscalc %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func main() {
	runCmd.Flags().StringVar(&flagAsOf, "as-of", "", "reference date (yyyy-mm-dd), overrides the case file")
	runCmd.Flags().StringVar(&flagZone, "zone", "", "IANA timezone, overrides the case file")
	runCmd.Flags().BoolVar(&flagIncludeReleaseDay, "include-release-day", false, "count episode end dates as served days")
	runCmd.Flags().BoolVar(&flagJSON, "json", false, "print the raw result as JSON instead of the document")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
