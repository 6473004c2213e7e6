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
	"io/fs"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dirpx.dev/dfault"
	"dirpx.dev/dfault/debuglog"
	"dirpx.dev/dfault/handler"
	"dirpx.dev/dfault/message"
	"dirpx.dev/dfault/variant"
)

// CLIFault describes failures of the command line itself.
var CLIFault = dfault.NewTaxonomy("dfault.cli.CLIFault")

var (
	bundleUnreadable = CLIFault.Case("BundleUnreadable", variant.RuntimeError, "cannot read bundle {file}")
	bundleInvalid    = CLIFault.Case("BundleInvalid", variant.InvalidArgument, "bundle {file} is malformed")
	badArgument      = CLIFault.Case("BadArgument", variant.InvalidArgument, "argument {arg} is not of the form key=value")
)

func (a *app) messagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Validate and render message bundles",
	}
	cmd.AddCommand(a.messagesCheckCmd(), a.messagesRenderCmd())
	return cmd
}

func (a *app) messagesCheckCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Check that bundle files parse into valid message keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			h := a.bundleLoader()
			failed := 0
			for _, path := range args {
				b, err := a.loadBundle(h, path)
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(out, "ok   %s: %d messages\n", path, b.Len())
				if !verbose {
					continue
				}
				for _, k := range b.Keys() {
					tmpl, _ := b.Lookup(k)
					fmt.Fprintf(out, "     %s {%s}\n", k, strings.Join(message.Tokens(tmpl), ", "))
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d bundles failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list every key with its tokens")
	return cmd
}

func (a *app) messagesRenderCmd() *cobra.Command {
	var (
		strict       bool
		namespaces   bool
		bundleLocale string
	)
	cmd := &cobra.Command{
		Use:   "render FILE KEY [NAME=VALUE...]",
		Short: "Render one message of a bundle",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.loadBundle(a.bundleLoader(), args[0])
			if err != nil {
				return err
			}
			ctx, err := parseContext(args[2:])
			if err != nil {
				return err
			}

			opts := []message.RegistryOption{message.WithDefaultLocale(a.locale)}
			if strict {
				opts = append(opts, message.WithStrict())
			}
			if namespaces {
				opts = append(opts, message.WithNamespaceFallback())
			}
			reg := message.NewRegistry(opts...)
			if err := reg.Register(bundleLocale, b); err != nil {
				return err
			}
			text, err := reg.Resolve(args[1], ctx, a.locale)
			if err != nil {
				return err
			}
			a.logger.Debug("rendered message", "key", args[1], "locale", a.locale, "bundle_locale", bundleLocale)
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when the context misses a token")
	cmd.Flags().BoolVar(&namespaces, "namespaces", false, "fall back to the nearest namespace template")
	cmd.Flags().StringVar(&bundleLocale, "bundle-locale", message.RootLocale, "locale the bundle file is registered under")
	return cmd
}

// bundleLoader classifies bundle loading failures. Failures are reported to
// the CLI logger.
func (a *app) bundleLoader() *handler.Handler {
	debug := handler.Off
	if a.debug {
		debug = handler.On
	}
	return handler.New(handler.Options{Debug: debug, Sink: debuglog.NewSlogSink(a.logger)}).
		Collect(bundleInvalid, message.ErrBadBundle).
		Collect(bundleUnreadable, handler.Type[*fs.PathError]())
}

// loadBundle reports a failed load as an Exceptable of the collected fault
// with the load error as its cause.
func (a *app) loadBundle(h *handler.Handler, path string) (*message.Bundle, error) {
	var cause error
	v, err := h.Try(func(args ...any) (any, error) {
		b, err := message.LoadBundle(args[0].(string))
		cause = err
		return b, err
	}, path)
	if err != nil {
		return nil, err
	}
	if f, ok := handler.FaultOf(v); ok {
		return nil, dfault.New(f, dfault.Context{"file": path}, cause)
	}
	return v.(*message.Bundle), nil
}

// parseContext turns NAME=VALUE arguments into a message context. Values
// are decoded as YAML scalars, so numbers and booleans keep their type.
func parseContext(args []string) (dfault.Context, error) {
	ctx := make(dfault.Context, len(args))
	for _, arg := range args {
		k, raw, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, dfault.New(badArgument, dfault.Context{"arg": arg}, nil)
		}
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
			v = raw
		}
		ctx[k] = v
	}
	return ctx, nil
}
