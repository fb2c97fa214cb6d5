package cmd

import (
	"fmt"
	"os"
	"strings"

	"flyer/templates"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var templatesCategory string

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List flyer templates and their slots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := templates.Load(cfg.TemplatesFile)
		if err != nil {
			return err
		}

		list := store.All()
		if templatesCategory != "" {
			list = store.ByCategory(templatesCategory)
		}
		if len(list) == 0 {
			fmt.Fprintf(os.Stderr, "No templates in category %q. Categories: %s\n",
				templatesCategory, strings.Join(store.Categories(), ", "))
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Name", "Category", "Size", "Slots"})
		table.SetAutoWrapText(false)
		for _, t := range list {
			slots := make([]string, 0, len(t.Layout.Elements))
			for _, el := range t.Layout.Elements {
				slots = append(slots, el.ID)
			}
			table.Append([]string{
				t.ID,
				t.Name,
				t.Category,
				fmt.Sprintf("%dx%d", t.Layout.Width, t.Layout.Height),
				strings.Join(slots, ", "),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	templatesCmd.Flags().StringVar(&templatesCategory, "category", "", "only list templates of this category")
	RootCmd.AddCommand(templatesCmd)
}
