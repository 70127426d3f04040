package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/executive-ops-api/internal/datastore"
	"github.com/vfg2006/executive-ops-api/internal/generator"
	"github.com/vfg2006/executive-ops-api/pkg/utils"
)

var rootCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Gera e valida o dataset sintético do painel executivo",
}

var generateArgs struct {
	scenarioPath string
	outDir       string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Gera as cinco tabelas CSV a partir de um cenário",
	RunE:  runGenerate,
}

var validateArgs struct {
	dir     string
	jsonOut bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Carrega o dataset do disco e confere a consistência",
	RunE:  runValidate,
}

func init() {
	generateCmd.Flags().StringVar(
		&generateArgs.scenarioPath,
		"scenario",
		"",
		"Arquivo YAML do cenário (vazio usa o cenário embutido)",
	)
	generateCmd.Flags().StringVar(
		&generateArgs.outDir,
		"out",
		"data",
		"Diretório de saída dos CSVs",
	)

	validateCmd.Flags().StringVar(
		&validateArgs.dir,
		"dir",
		"data",
		"Diretório com os CSVs do dataset",
	)
	validateCmd.Flags().BoolVar(
		&validateArgs.jsonOut,
		"json",
		false,
		"Imprime o relatório como JSON em vez do resumo de texto",
	)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	scenario, err := loadScenario()
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"year":  scenario.Year,
		"seed":  scenario.Seed,
		"units": len(scenario.Units),
	}).Info("Gerando dataset")

	dataset, err := generator.New(scenario).Generate()
	if err != nil {
		return err
	}

	if err := dataset.WriteDir(generateArgs.outDir); err != nil {
		return err
	}

	for _, table := range dataset.Tables() {
		logrus.WithFields(logrus.Fields{
			"table": table.Name,
			"rows":  len(table.Rows),
		}).Info("Tabela gravada")
	}

	logrus.WithField("dir", generateArgs.outDir).Info("Dataset gerado com sucesso")
	return nil
}

func loadScenario() (*generator.Scenario, error) {
	if generateArgs.scenarioPath == "" {
		return generator.DefaultScenario()
	}
	return generator.LoadScenario(generateArgs.scenarioPath)
}

func runValidate(cmd *cobra.Command, args []string) error {
	report, err := generator.ValidateDir(validateArgs.dir)
	if err != nil {
		fmt.Printf("\nVALIDATION FAILED: %v\n", err)
		return err
	}

	if validateArgs.jsonOut {
		fmt.Println(utils.PrettyJson(report))
		return nil
	}

	printReport(report)
	return nil
}

// printReport imprime o resumo no mesmo formato do smoke test que acompanha
// o dataset, para comparação lado a lado.
func printReport(report *generator.ValidationReport) {
	fmt.Println("======================================================================")
	fmt.Println("EXECUTIVE OPERATIONS DASHBOARD - VALIDATION")
	fmt.Println("======================================================================")

	fmt.Println("\nTest 1: Loading Data Files")
	for _, table := range []string{
		datastore.TableMonthlyPnL,
		datastore.TableOperationalMetrics,
		datastore.TableResourceAllocation,
		datastore.TableExecutiveAlerts,
		datastore.TableBusinessUnits,
	} {
		fmt.Printf("  - %s.csv: %d records loaded\n", table, report.RowCounts[table])
	}

	fmt.Println("\nTest 2: Corporate Performance Calculations")
	fmt.Printf("  - Latest month: %s\n", report.LatestPeriod)
	fmt.Printf("  - Total Revenue (Current Month): $%.1fM\n", report.TotalRevenue/1_000_000)
	fmt.Printf("  - Operating Income: $%.1fM\n", report.TotalOperatingIncome/1_000_000)
	fmt.Printf("  - Operating Margin: %.1f%%\n", report.OperatingMarginPct)
	fmt.Printf("  - Total Headcount: %d\n", report.TotalHeadcount)

	fmt.Println("\nTest 3: Unit Performance Summary")
	fmt.Printf("  - Top performer: %s (%.1f%% margin)\n", report.TopUnitName, report.TopUnitMarginPct)

	fmt.Println("\nTest 4: Executive Alerts")
	fmt.Printf("  - Total alerts: %d\n", report.CuratedAlerts)
	fmt.Printf("  - High severity alerts: %d\n", report.HighSeverity)
	fmt.Printf("  - Total financial impact: $%.1fM\n", report.TotalAlertImpact/1_000_000)

	fmt.Println("\nTest 5: Resource Allocation")
	fmt.Printf("  - Total corporate budget: $%.1fM\n", report.TotalAnnualBudget/1_000_000)
	fmt.Printf("  - Total headcount across units: %d\n", report.TotalPlannedHeadcount)

	fmt.Println("\n======================================================================")
	fmt.Println("ALL VALIDATION TESTS PASSED")
	fmt.Println("======================================================================")
}
