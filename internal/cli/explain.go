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
	"fmt"

	"github.com/spf13/cobra"

	"dirpx.dev/dfault/mapper"
	"dirpx.dev/dfault/name"
	"dirpx.dev/dfault/variant"
)

func (a *app) explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain VARIANT [NAME]",
		Short: "Explain how a variant and fault name resolve to HTTP and gRPC statuses",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := variant.Parse(args[0])
			if err != nil {
				return err
			}
			var n name.Name
			if len(args) == 2 {
				if n, err = name.Parse(args[1]); err != nil {
					return err
				}
			}
			a.logger.Debug("explaining mapping", "variant", v, "fault", n)
			fmt.Fprintln(cmd.OutOrStdout(), mapper.Default().Explain(v, n))
			return nil
		},
	}
}
