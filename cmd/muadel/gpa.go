package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muadel/muadel/bootstrap"
	"github.com/muadel/muadel/domain/gpa"
)

var gpaCmd = &cobra.Command{
	Use:   "gpa",
	Short: "Compute semester and cumulative averages",
	Long: `Compute grade point averages on the active scale.

Courses are given as name:credit-hours:grade, e.g. "تفاضل:3:A".
Courses with no grade or zero hours are skipped.

Examples:
  muadel gpa compute -r "تفاضل:3:A" -r "فيزياء:4:B+" -r "لغة:2:C"
  muadel gpa cumulative
  muadel gpa cumulative --prev-gpa 4.2 --prev-hours 30 -r "برمجة:3:A"`,
}

var gpaComputeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute one semester's average and classification",
	RunE:  runGPACompute,
}

var gpaCumulativeCmd = &cobra.Command{
	Use:   "cumulative",
	Short: "Compute the cumulative average",
	Long: `Compute the cumulative average across the saved semester
history, or blend a manually entered prior record with a current course
list when --prev-hours is set.`,
	RunE: runGPACumulative,
}

var (
	gpaCourses   []string
	gpaPrevAvg   float64
	gpaPrevHours int
)

func init() {
	rootCmd.AddCommand(gpaCmd)

	gpaCmd.AddCommand(gpaComputeCmd)
	gpaCmd.AddCommand(gpaCumulativeCmd)

	gpaComputeCmd.Flags().StringArrayVarP(&gpaCourses, "course", "r", nil, "course as name:hours:grade (repeatable)")
	gpaCumulativeCmd.Flags().StringArrayVarP(&gpaCourses, "course", "r", nil, "course as name:hours:grade (repeatable)")
	gpaCumulativeCmd.Flags().Float64Var(&gpaPrevAvg, "prev-gpa", 0, "prior cumulative average")
	gpaCumulativeCmd.Flags().IntVar(&gpaPrevHours, "prev-hours", 0, "prior credit hours")
}

func parseCourses(specs []string) ([]gpa.CourseRecord, error) {
	courses := make([]gpa.CourseRecord, 0, len(specs))
	for _, s := range specs {
		parts := strings.Split(s, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid course %q, expected name:hours:grade", s)
		}
		hours, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid credit hours in %q: %w", s, err)
		}
		courses = append(courses, gpa.CourseRecord{
			Name:        strings.TrimSpace(parts[0]),
			CreditHours: hours,
			Grade:       strings.TrimSpace(parts[2]),
		})
	}
	return courses, nil
}

func runGPACompute(cmd *cobra.Command, args []string) error {
	courses, err := parseCourses(gpaCourses)
	if err != nil {
		return err
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Shutdown()

	res, ok := app.Calculator.SemesterAverage(courses)
	if !ok {
		return fmt.Errorf("no complete courses to average")
	}

	fmt.Printf("Scale:          %s\n", app.Calculator.Scale().ID)
	fmt.Printf("GPA:            %s\n", gpa.FormatAverage(res.Average))
	fmt.Printf("Classification: %s (%s)\n", res.Classification.Classification, res.Classification.Code)
	return nil
}

func runGPACumulative(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Shutdown()

	// Interactive mode: blend a manual prior record with new courses.
	if gpaPrevHours > 0 {
		courses, err := parseCourses(gpaCourses)
		if err != nil {
			return err
		}
		sum := app.Calculator.InteractiveCumulative(gpaPrevAvg, gpaPrevHours, courses)
		printSummary(app, sum)
		return nil
	}

	ctx := cmd.Context()
	sum, err := app.Calculator.Cumulative(ctx)
	if err != nil {
		return err
	}
	if sum.CreditHours == 0 {
		fmt.Println("No semesters recorded for the active scale.")
		return nil
	}
	printSummary(app, sum)
	return nil
}

func printSummary(app *bootstrap.App, sum gpa.Summary) {
	fmt.Printf("Cumulative GPA: %s over %d credit hours\n", gpa.FormatAverage(sum.Average), sum.CreditHours)
	band := app.Calculator.Scale().Classify(sum.Average)
	fmt.Printf("Classification: %s (%s)\n", band.Classification, band.Code)
}
