package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apidrift/apidrift/internal/infrastructure/persistence"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Manage stored analysis reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reports, newest first",
	RunE:  runReportsList,
}

var reportsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print a stored report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsShow,
}

var reportsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a stored report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsDelete,
}

func init() {
	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)
	reportsCmd.AddCommand(reportsDeleteCmd)
}

func openReportRepository() (*persistence.FileReportRepository, error) {
	return persistence.NewFileReportRepository(cfg.Storage.Path)
}

func runReportsList(cmd *cobra.Command, args []string) error {
	repo, err := openReportRepository()
	if err != nil {
		return err
	}

	reports, err := repo.List(cmd.Context())
	if err != nil {
		return err
	}

	if outputJSON {
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(reports) == 0 {
		printInfo("No stored reports")
		return nil
	}

	for _, stored := range reports {
		line := fmt.Sprintf("%s  %s  %s  bump=%s  breaking=%d",
			stored.ID,
			stored.CreatedAt.Format("2006-01-02 15:04"),
			stored.FilePath,
			stored.Report.SuggestedVersionBump,
			len(stored.Report.BreakingChanges))
		if stored.Report.HasBreakingChanges {
			fmt.Println(styles.Warning.Render(line))
		} else {
			fmt.Println(line)
		}
	}
	return nil
}

func runReportsShow(cmd *cobra.Command, args []string) error {
	repo, err := openReportRepository()
	if err != nil {
		return err
	}

	stored, err := repo.FindByID(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runReportsDelete(cmd *cobra.Command, args []string) error {
	repo, err := openReportRepository()
	if err != nil {
		return err
	}

	if err := repo.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	printSuccess("Deleted report " + args[0])
	return nil
}
