package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nylac/internal/diag"
	"nylac/internal/orchestrator"
	"nylac/internal/project"
	"nylac/internal/report"
)

var buildCmd = &cobra.Command{
	Use:   "build [options] <src-dir>...",
	Short: "Compile one or more Nyla source directories into an executable",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("name", "program", "output executable name")
	buildCmd.Flags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	buildCmd.Flags().String("manifest", "", "path to the nyla.toml project manifest")
	buildCmd.Flags().Bool("print-file-hashes", false, "print a content hash for every discovered source file")
	buildCmd.Flags().Bool("verbose", false, "enable verbose diagnostic output")
	buildCmd.Flags().Bool("display-ast", false, "print the parsed AST for every unit")
	buildCmd.Flags().Bool("display-stages", false, "print each unit's phase as it advances")
	buildCmd.Flags().Bool("display-source-paths", false, "print the system path behind every internal path")
	buildCmd.Flags().Bool("display-llvm-ir", false, "print emitted IR for every function")
	buildCmd.Flags().Bool("display-times", false, "print per-phase timing")
}

func runBuild(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	colorFlag, _ := cmd.Flags().GetString("color")
	manifestPath, _ := cmd.Flags().GetString("manifest")
	printHashes, _ := cmd.Flags().GetBool("print-file-hashes")
	flags := readFlags(cmd)

	useColor := report.Resolve(report.ColorMode(colorFlag), os.Stdout)

	p, err := project.NewProgram(args)
	if err != nil {
		return fmt.Errorf("failed to read source directory: %w", err)
	}

	var manifest *project.Manifest
	if manifestPath == "" {
		if found, ok, findErr := project.FindManifest("."); findErr == nil && ok {
			manifestPath = found
		}
	}
	if manifestPath != "" {
		m, loadErr := project.LoadManifest(manifestPath)
		if loadErr != nil {
			return loadErr
		}
		manifest = m
		if manifest.ExecutableName != "" && !cmd.Flags().Changed("name") {
			name = manifest.ExecutableName
		}
	}

	if printHashes {
		hashes, hashErr := p.HashAll(cmd.Context())
		if hashErr != nil {
			return hashErr
		}
		for _, h := range hashes {
			fmt.Fprintf(cmd.OutOrStdout(), "%x  %s\n", h.Digest, h.InternalPath)
		}
	}

	o := orchestrator.New(p, newBackend(), flags)
	parser := newParser()

	ok, runErr := o.Run(parser, manifest)
	if runErr != nil {
		return runErr
	}

	diags := collectDiagnostics(p, o)
	if len(diags) > 0 {
		report.Pretty(cmd.OutOrStdout(), diags, report.Options{
			Color:          useColor,
			ShowContext:    true,
			DisplaySources: func(unit string) (string, bool) { return lookupSystemPath(p, unit) },
		})
	}

	if !ok {
		return fmt.Errorf("build failed")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "built %s\n", name)
	return nil
}

func readFlags(cmd *cobra.Command) orchestrator.Flags {
	var f orchestrator.Flags
	set := func(name string, bit orchestrator.Flags) {
		if v, _ := cmd.Flags().GetBool(name); v {
			f |= bit
		}
	}
	set("verbose", orchestrator.FlagVerbose)
	set("display-ast", orchestrator.FlagDisplayAST)
	set("display-stages", orchestrator.FlagDisplayStages)
	set("display-source-paths", orchestrator.FlagDisplaySourcePaths)
	set("display-llvm-ir", orchestrator.FlagDisplayLLVMIR)
	set("display-times", orchestrator.FlagDisplayTimes)
	return f
}

func lookupSystemPath(p *project.Program, internalPath string) (string, bool) {
	unit, ok := p.Lookup(internalPath)
	if !ok {
		return "", false
	}
	return p.SystemPath(unit), true
}

// collectDiagnostics gathers program-level diagnostics (main detection,
// structural failures) alongside every unit's own, in unit order, for
// printing after Run returns.
func collectDiagnostics(p *project.Program, o *orchestrator.Orchestrator) []diag.Diagnostic {
	out := append([]diag.Diagnostic{}, o.Diags.Items()...)
	for _, u := range p.Units() {
		out = append(out, u.Diags.Items()...)
	}
	return out
}
