// cmd/tools/catalog-check/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"franchise-estimator/internal/comparison"
	"franchise-estimator/internal/common/logger"
	"franchise-estimator/internal/estimator"
	"franchise-estimator/internal/reference"
	"franchise-estimator/pkg/catalog"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	estimateCmd := flag.NewFlagSet("estimate", flag.ExitOnError)

	validatePath := validateCmd.String("path", "configs/catalog.json", "Path to catalog file")

	exportPath := exportCmd.String("out", "configs/catalog.json", "Where to write the built-in catalog")

	estimatePath := estimateCmd.String("path", "", "Path to catalog file (empty for built-in tables)")
	franchise := estimateCmd.String("franchise", "", "Franchise key (required)")
	city := estimateCmd.String("city", string(reference.CityRegional), "City tier")
	area := estimateCmd.Float64("area", estimator.DefaultArea, "Area in square meters")
	employees := estimateCmd.Float64("employees", estimator.DefaultEmployees, "Employee count")
	contingency := estimateCmd.Float64("contingency", 10, "Contingency percent")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateCatalog(*validatePath); err != nil {
			fmt.Printf("Catalog validation failed: %v\n", err)
			os.Exit(1)
		}

	case "export":
		exportCmd.Parse(os.Args[2:])
		if err := exportCatalog(*exportPath); err != nil {
			fmt.Printf("Error exporting catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote built-in catalog to %s\n", *exportPath)

	case "estimate":
		estimateCmd.Parse(os.Args[2:])
		if *franchise == "" {
			fmt.Println("Error: franchise is required for estimate.")
			estimateCmd.Usage()
			os.Exit(1)
		}
		shared := comparison.SharedInputs{
			FranchiseKey:       *franchise,
			CityTier:           reference.CityTier(*city),
			Area:               estimator.SanitizeArea(*area),
			EmployeeCount:      estimator.SanitizeEmployees(*employees),
			ContingencyPercent: *contingency,
		}
		if err := printComparison(*estimatePath, shared); err != nil {
			fmt.Printf("Error computing estimate: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func validateCatalog(path string) error {
	c, err := catalog.Load(path)
	if err != nil {
		return err
	}
	if _, err := c.Reference(); err != nil {
		return err
	}
	fmt.Printf("Catalog validation passed. Found %d franchises, %d city tiers, %d presets.\n",
		len(c.Franchises), len(c.CityTiers), len(c.Presets))
	return nil
}

func exportCatalog(path string) error {
	data, err := json.MarshalIndent(catalog.FromReference(reference.Default()), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

// printComparison prints the three preset columns for the shared inputs.
func printComparison(path string, shared comparison.SharedInputs) error {
	ref, err := catalog.LoadReference(path)
	if err != nil {
		return err
	}

	calc := estimator.NewCalculator(ref)
	res, err := comparison.NewAssembler(calc, logger.NewNoOpLogger()).Compare(shared, nil)
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Printf("warning: %s\n", w.Message)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for _, col := range res.Columns {
		fmt.Fprintf(tw, "%s (%s)\t", col.Name, col.Preset)
	}
	fmt.Fprintln(tw)
	for _, row := range res.Rows {
		fmt.Fprintf(tw, "%s\t", row.Label)
		for _, v := range row.Values {
			fmt.Fprintf(tw, "%.0f\t", v)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func help() {
	fmt.Print(`
Usage: catalog-check <command> [flags]

Commands:
  validate  Validate a reference catalog file
  export    Write the built-in tables as a catalog file
  estimate  Print a basic/extended/premium comparison
  help      Show this help message

Examples:
  catalog-check validate -path configs/catalog.json
  catalog-check export -out configs/catalog.json
  catalog-check estimate -franchise "Coffee Shop" -city big -area 60 -employees 4

Use 'catalog-check <command> -h' for more information about a command.
` + "\n")
}
