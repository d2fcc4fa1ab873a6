package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jensneuse/abstractlogger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wundergraph/descriptor-roundtrip/pkg/descriptor"
	"github.com/wundergraph/descriptor-roundtrip/pkg/descriptorcompare"
	"github.com/wundergraph/descriptor-roundtrip/pkg/descriptorloader"
	"github.com/wundergraph/descriptor-roundtrip/pkg/roundtripreport"
)

var errGraphsDiffer = errors.New("descriptor graphs differ")

type compareConfig struct {
	Namespace                  string
	Output                     string
	Trace                      bool
	StructuralTypeConstructors bool
	// Skip maps node kinds to additionally skipped properties, read from the config file.
	Skip map[string][]string
	// SkipProperties and CompareProperties are kind.property pairs added to or removed from the skip list.
	SkipProperties    []string
	CompareProperties []string
}

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:     "compare <before> <after>",
	Short:   "compare checks that two descriptor dumps describe the same declarations",
	Example: "descriptor-roundtrip compare frontend.yaml metadata.yaml --namespace test --output json",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, sync, err := newLogger(viper.GetString("log-level"))
		if err != nil {
			return err
		}
		defer sync()

		return runCompare(cmd.OutOrStdout(), logger, compareConfigFromViper(), args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().String("namespace", "", "compare a single root namespace instead of all of them")
	compareCmd.Flags().String("output", "text", "output format: text or json")
	compareCmd.Flags().Bool("trace", false, "print the comparison trace of every namespace")
	compareCmd.Flags().Bool("structural-type-constructors", false, "compare type constructors property by property instead of by name")
	compareCmd.Flags().StringSlice("skip", nil, "additionally skipped properties as kind.property, e.g. function.original")
	compareCmd.Flags().StringSlice("compare-property", nil, "properties removed from the skip list as kind.property, e.g. valueParameter.containingDeclaration")

	_ = viper.BindPFlag("namespace", compareCmd.Flags().Lookup("namespace"))
	_ = viper.BindPFlag("output", compareCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("trace", compareCmd.Flags().Lookup("trace"))
	_ = viper.BindPFlag("structural-type-constructors", compareCmd.Flags().Lookup("structural-type-constructors"))
	_ = viper.BindPFlag("skip-properties", compareCmd.Flags().Lookup("skip"))
	_ = viper.BindPFlag("compare-properties", compareCmd.Flags().Lookup("compare-property"))
}

func compareConfigFromViper() compareConfig {
	return compareConfig{
		Namespace:                  viper.GetString("namespace"),
		Output:                     viper.GetString("output"),
		Trace:                      viper.GetBool("trace"),
		StructuralTypeConstructors: viper.GetBool("structural-type-constructors"),
		Skip:                       viper.GetStringMapStringSlice("skip"),
		SkipProperties:             viper.GetStringSlice("skip-properties"),
		CompareProperties:          viper.GetStringSlice("compare-properties"),
	}
}

func (c compareConfig) options(logger abstractlogger.Logger) ([]descriptorcompare.Option, error) {
	options := []descriptorcompare.Option{descriptorcompare.WithLogger(logger)}
	if c.StructuralTypeConstructors {
		options = append(options, descriptorcompare.WithStructuralTypeConstructors())
	}

	skip := make(map[string][]string, len(c.Skip))
	for kind, properties := range c.Skip {
		skip[kind] = append(skip[kind], properties...)
	}
	if err := addKindProperties(skip, c.SkipProperties); err != nil {
		return nil, err
	}
	skipList, err := descriptorcompare.ParseSkipList(skip)
	if err != nil {
		return nil, err
	}
	for kind, properties := range skipList {
		for property := range properties {
			options = append(options, descriptorcompare.WithSkippedProperties(kind, property))
		}
	}

	compared := map[string][]string{}
	if err := addKindProperties(compared, c.CompareProperties); err != nil {
		return nil, err
	}
	comparedList, err := descriptorcompare.ParseSkipList(compared)
	if err != nil {
		return nil, err
	}
	for kind, properties := range comparedList {
		for property := range properties {
			options = append(options, descriptorcompare.WithComparedProperties(kind, property))
		}
	}
	return options, nil
}

func addKindProperties(out map[string][]string, pairs []string) error {
	for _, pair := range pairs {
		dot := strings.IndexByte(pair, '.')
		if dot <= 0 || dot == len(pair)-1 {
			return fmt.Errorf("%q is not a kind.property pair", pair)
		}
		out[pair[:dot]] = append(out[pair[:dot]], pair[dot+1:])
	}
	return nil
}

func runCompare(out io.Writer, logger abstractlogger.Logger, config compareConfig, beforePath, afterPath string) error {
	options, err := config.options(logger)
	if err != nil {
		return err
	}
	before, err := descriptorloader.LoadFile(beforePath)
	if err != nil {
		return err
	}
	after, err := descriptorloader.LoadFile(afterPath)
	if err != nil {
		return err
	}

	roots, err := rootNames(before, after, config.Namespace)
	if err != nil {
		return err
	}

	comparator := descriptorcompare.New(options...)
	report := roundtripreport.Report{}
	for _, root := range roots {
		result, err := comparator.CompareNamespaces(before, after, root)
		report.AddResult(root, err)
		if _, isMismatch := descriptorcompare.AsMismatch(err); err != nil && !isMismatch {
			logger.Error("comparing namespace failed",
				abstractlogger.String("namespace", root),
				abstractlogger.String("cause", roundtripreport.UnwrappedErrorMessage(err)),
			)
		}
		logger.Info("compared namespace",
			abstractlogger.String("namespace", root),
			abstractlogger.Int("visited", result.Visited),
			abstractlogger.Bool("equal", err == nil),
		)
		if config.Trace && config.Output != "json" {
			fmt.Fprint(out, result.Trace.String())
		}
	}

	switch config.Output {
	case "json":
		data, err := json.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case "text", "":
		printReport(out, &report)
	default:
		return fmt.Errorf("unknown output %q", config.Output)
	}

	if report.HasErrors() {
		return fmt.Errorf("%w: %w", errGraphsDiffer, report)
	}
	return nil
}

// summarizeReport is the message printed on exit for a report that has errors.
func summarizeReport(report *roundtripreport.Report) string {
	return fmt.Sprintf("%s: %d mismatched, %d failed, %d passed",
		errGraphsDiffer, len(report.Mismatches), len(report.InternalErrors), len(report.Passed))
}

// rootNames lists the root namespaces of before followed by those only after declares.
// A namespace asked for by name must be declared by at least one of the documents.
func rootNames(before, after *descriptor.Document, namespace string) ([]string, error) {
	if namespace != "" {
		_, inBefore := before.RootNamespace(namespace)
		_, inAfter := after.RootNamespace(namespace)
		if !inBefore && !inAfter {
			return nil, fmt.Errorf("namespace %q is not declared by either dump", namespace)
		}
		return []string{namespace}, nil
	}
	var names []string
	seen := map[string]struct{}{}
	for _, doc := range []*descriptor.Document{before, after} {
		for _, root := range doc.RootNodes {
			name := doc.NodeNameString(root)
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names, nil
}

func printReport(out io.Writer, report *roundtripreport.Report) {
	for _, root := range report.Passed {
		fmt.Fprintf(out, "%s %s\n", color.GreenString("ok"), root)
	}
	for _, mismatch := range report.Mismatches {
		fmt.Fprintf(out, "%s %s: %s at %s\n", color.RedString("mismatch"), mismatch.Root,
			mismatch.Mismatch.Kind, mismatch.Mismatch.Path.DotDelimitedString())
		fmt.Fprintf(out, "    left:  %s\n", mismatch.Mismatch.Left)
		fmt.Fprintf(out, "    right: %s\n", mismatch.Mismatch.Right)
	}
	for _, err := range report.InternalErrors {
		fmt.Fprintf(out, "%s %s\n", color.YellowString("error"), err)
	}
}
