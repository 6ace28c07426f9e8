package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/feeportal/internal/payments"
	"github.com/zjrosen/feeportal/internal/ui/shared/table"
)

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List the accepted payment methods",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), renderMethods())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(methodsCmd)
}

func method(row any) payments.Method {
	m, _ := row.(payments.Method)
	return m
}

func renderMethods() string {
	t := table.New(table.TableConfig{
		ShowHeader: true,
		Columns: []table.ColumnConfig{
			{Key: "id", Header: "ID", Width: 14, Render: func(row any, _ string, _ int, _ bool) string {
				return string(method(row).ID)
			}},
			{Key: "title", Header: "Method", Width: 18, Render: func(row any, _ string, _ int, _ bool) string {
				return method(row).Title
			}},
			{Key: "description", Header: "Description", MinWidth: 20, Render: func(row any, _ string, _ int, _ bool) string {
				return method(row).Description
			}},
			{Key: "fees", Header: "Fees", Width: 20, Render: func(row any, _ string, _ int, _ bool) string {
				return method(row).Fees
			}},
		},
	})

	rows := make([]any, len(payments.Methods))
	for i, m := range payments.Methods {
		rows[i] = m
	}
	return t.SetRows(rows).SetWidth(100).View()
}
