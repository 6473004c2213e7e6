/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"

	"dirpx.dev/dfault"
	"dirpx.dev/dfault/adapter"
	"dirpx.dev/dfault/apis"
	"dirpx.dev/dfault/handler"
	"dirpx.dev/dfault/mapper"
)

// taxonomies lists the fault taxonomies known to the command line.
func taxonomies() []*dfault.Taxonomy {
	return []*dfault.Taxonomy{dfault.ExceptableFault, dfault.StdFault, handler.HandlerFault, CLIFault}
}

func (a *app) faultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faults",
		Short: "List and look up built-in faults",
	}
	cmd.AddCommand(a.faultsListCmd(), a.faultsLookupCmd())
	return cmd
}

func (a *app) faultsListCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every built-in fault with its resolved statuses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds := adapter.ToDescriptors(mapper.Default(), taxonomies()...)
			a.logger.Debug("listing faults", "count", len(ds))
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(ds)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FAULT\tVARIANT\tHTTP\tGRPC")
			for _, d := range ds {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", d.Fault, d.Variant, d.HTTPStatus, codes.Code(d.GRPCCode))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print descriptors as JSON")
	return cmd
}

func (a *app) faultsLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup NAME",
		Short: "Describe one fault by its qualified name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := dfault.From(args[0], taxonomies()...)
			if err != nil {
				return fmt.Errorf("lookup %q: %w", args[0], err)
			}
			return printDescriptor(cmd, adapter.ToDescriptor(f, mapper.Default()))
		},
	}
}

func printDescriptor(cmd *cobra.Command, d apis.ErrorDescriptor) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 1, ' ', 0)
	fmt.Fprintf(w, "fault:\t%s\n", d.Fault)
	fmt.Fprintf(w, "variant:\t%s\n", d.Variant)
	fmt.Fprintf(w, "family:\t%s\n", d.Family)
	fmt.Fprintf(w, "http:\t%d\n", d.HTTPStatus)
	fmt.Fprintf(w, "grpc:\t%s\n", codes.Code(d.GRPCCode))
	fmt.Fprintf(w, "template:\t%s\n", d.Template)
	fmt.Fprintf(w, "message key:\t%s\n", d.MessageKey)
	return w.Flush()
}
