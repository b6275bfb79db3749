package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"septic-canary/internal/apperrors"
	"septic-canary/internal/models"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// LookupService is the part of the property service the CLI needs.
type LookupService interface {
	LookupPropertyDetails(context.Context, models.LookupRequest) (*models.PropertyDetails, error)
}

func newLookupCmd(newService func() (LookupService, error)) *cobra.Command {
	var req models.LookupRequest

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Check whether a property uses a septic system",
		Long: `Looks up a single property with HouseCanary and prints whether it uses a septic system.

Either --zip or both --city and --state must be given.`,
		Example:       `  lookup --street "123 Main St" --zip 98765`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}

			details, err := svc.LookupPropertyDetails(cmd.Context(), req)
			if err != nil {
				appErr := apperrors.From(err)
				renderFailure(cmd.ErrOrStderr(), appErr)
				return appErr
			}

			renderDetails(cmd.OutOrStdout(), req, details)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Street, "street", "", "street address of the property")
	flags.StringVar(&req.Unit, "unit", "", "unit within the building")
	flags.StringVar(&req.City, "city", "", "city containing the property")
	flags.StringVar(&req.State, "state", "", "state containing the property")
	flags.StringVar(&req.Zip, "zip", "", "ZIP code containing the property")
	_ = cmd.MarkFlagRequired("street")

	return cmd
}

// execute runs cmd and reports errors raised before RunE, such as a missing required flag.
// Lookup failures are already rendered by RunE.
func execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
	}
	return err
}

func renderDetails(w io.Writer, req models.LookupRequest, details *models.PropertyDetails) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Address", "Septic System"})
	t.AppendRow(table.Row{formatAddress(req), yesNo(details.HasSepticSystem)})
	t.Render()
}

func renderFailure(w io.Writer, appErr *apperrors.AppError) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Status", "Code", "Detail"})
	row := table.Row{appErr.HTTPStatus, appErr.Code, appErr.Message}
	if appErr.HasRetryAfter {
		row[2] = fmt.Sprintf("%s (retry after %ds)", appErr.Message, appErr.RetryAfter)
	}
	t.AppendRow(row)
	t.Render()
}

func formatAddress(req models.LookupRequest) string {
	parts := []string{}
	for _, p := range []string{req.Street, req.Unit, req.City, req.State, req.Zip} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
