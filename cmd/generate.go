package cmd

import (
	"fmt"
	"os"
	"strings"

	"flyer/service"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	generateTemplate string
	generateType     string
	generateOut      string
)

var generateCmd = &cobra.Command{
	Use:   "generate [description]",
	Short: "Generate flyer copy for a template and print the filled slots",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", "real-estate-1", "template id")
	generateCmd.Flags().StringVar(&generateType, "type", "",
		fmt.Sprintf("flyer type: %s (defaults to the template category)", strings.Join(service.FlyerTypes(), ", ")))
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "write the plain-text export to this file")
	RootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	svc, err := newFlyerService()
	if err != nil {
		return err
	}

	flyerType := generateType
	if flyerType == "" {
		for _, t := range svc.Templates() {
			if t.ID == generateTemplate {
				flyerType = t.Category
				break
			}
		}
	}

	view, err := svc.CreateFlyer(cmd.Context(), strings.Join(args, " "), generateTemplate, flyerType)
	if err != nil {
		return err
	}

	label := color.New(color.FgCyan, color.Bold)
	meta := color.New(color.Faint)
	fmt.Println(meta.Sprintf("%s · %s · %s", view.Flyer.Template.Name, view.Flyer.FlyerType, view.Flyer.ID))
	for _, el := range view.Flyer.Template.Layout.Elements {
		fmt.Println(label.Sprint(strings.ToUpper(el.ID)))
		fmt.Println(view.Slots[el.ID])
		fmt.Println()
	}

	if generateOut != "" {
		text := service.ExportText(view.Flyer.Template.Layout.Elements, view.Slots)
		if err := os.WriteFile(generateOut, []byte(text), 0644); err != nil {
			return errors.Wrapf(err, "write %s", generateOut)
		}
		fmt.Println(color.GreenString("Saved %s", generateOut))
	}
	return nil
}
