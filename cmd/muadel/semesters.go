package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/muadel/muadel/domain/gpa"
)

var semestersCmd = &cobra.Command{
	Use:   "semesters",
	Short: "Manage the saved semester history",
	Long: `Manage the semester history behind the cumulative average.

Examples:
  muadel semesters list
  muadel semesters add --label "الفصل الأول" -r "تفاضل:3:A" -r "فيزياء:4:B+"
  muadel semesters edit <id> --label "الفصل الأول" --gpa 4.5 --hours 12
  muadel semesters delete <id>`,
}

var semestersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved semesters",
	RunE:  runSemestersList,
}

var semestersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Finalize a semester and add it to the history",
	RunE:  runSemestersAdd,
}

var semestersEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a saved semester",
	Args:  cobra.ExactArgs(1),
	RunE:  runSemestersEdit,
}

var semestersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved semester",
	Args:  cobra.ExactArgs(1),
	RunE:  runSemestersDelete,
}

var (
	semesterLabel   string
	semesterCourses []string
	semesterGPA     float64
	semesterHours   int
)

func init() {
	rootCmd.AddCommand(semestersCmd)

	semestersCmd.AddCommand(semestersListCmd)
	semestersCmd.AddCommand(semestersAddCmd)
	semestersCmd.AddCommand(semestersEditCmd)
	semestersCmd.AddCommand(semestersDeleteCmd)

	semestersAddCmd.Flags().StringVar(&semesterLabel, "label", "", "semester label")
	semestersAddCmd.Flags().StringArrayVarP(&semesterCourses, "course", "r", nil, "course as name:hours:grade (repeatable)")

	semestersEditCmd.Flags().StringVar(&semesterLabel, "label", "", "new label")
	semestersEditCmd.Flags().Float64Var(&semesterGPA, "gpa", 0, "new GPA")
	semestersEditCmd.Flags().IntVar(&semesterHours, "hours", 0, "new credit hours")
}

func runSemestersList(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Shutdown()

	history, err := app.Calculator.Semesters(cmd.Context())
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("No semesters saved.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tSCALE\tGPA\tHOURS")
	for _, rec := range history {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			rec.ID, rec.Label, rec.ScaleID, gpa.FormatAverage(rec.GPA), rec.CreditHours)
	}
	return w.Flush()
}

func runSemestersAdd(cmd *cobra.Command, args []string) error {
	courses, err := parseCourses(semesterCourses)
	if err != nil {
		return err
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Shutdown()

	rec, err := app.Calculator.FinalizeSemester(cmd.Context(), semesterLabel, courses)
	if err != nil {
		return err
	}

	band := app.Calculator.Scale().Classify(rec.GPA)
	fmt.Printf("Saved semester %s\n", rec.ID)
	fmt.Printf("GPA:            %s over %d hours\n", gpa.FormatAverage(rec.GPA), rec.CreditHours)
	fmt.Printf("Classification: %s (%s)\n", band.Classification, band.Code)
	return nil
}

func runSemestersEdit(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Shutdown()

	if err := app.Calculator.EditSemester(cmd.Context(), args[0], semesterLabel, semesterGPA, semesterHours); err != nil {
		return err
	}
	fmt.Printf("Updated semester %s\n", args[0])
	return nil
}

func runSemestersDelete(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Shutdown()

	if err := app.Calculator.DeleteSemester(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted semester %s\n", args[0])
	return nil
}
