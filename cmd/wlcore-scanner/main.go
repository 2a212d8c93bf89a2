// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command wlcore-scanner reads a Wayland protocol XML schema and emits the
// Go source that decodes its requests and encodes its events, in the style
// demonstrated by hand in package protocol.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wlcore/wlcore/protocolgen"
)

var (
	outPath      string
	packageName  string
	parsePackage string
	corePackage  string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wlcore-scanner <protocol.xml>",
		Short: "Generate Go decoders and encoders from a Wayland protocol XML file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file path (default: stdout)")
	cmd.Flags().StringVar(&packageName, "package", "protocol", "generated package name")
	cmd.Flags().StringVar(&parsePackage, "parse-package", "github.com/wlcore/wlcore/parse", "import path of the parse package")
	cmd.Flags().StringVar(&corePackage, "core-package", "github.com/wlcore/wlcore", "import path of the core wire package")
	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("wlcore-scanner: read %s: %w", args[0], err)
	}

	proto, err := protocolgen.ParseProtocol(data)
	if err != nil {
		return err
	}

	src, err := protocolgen.Generate(proto, protocolgen.Options{
		PackageName:  packageName,
		ParsePackage: parsePackage,
		CorePackage:  corePackage,
	})
	if err != nil {
		return err
	}

	if outPath == "" {
		_, err := cmd.OutOrStdout().Write(src)
		return err
	}
	if err := os.WriteFile(outPath, src, 0o644); err != nil {
		return fmt.Errorf("wlcore-scanner: write %s: %w", outPath, err)
	}
	return nil
}
